package main

import (
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/listing-tracker/internal/diff"
	"github.com/sells-group/listing-tracker/internal/model"
	"github.com/sells-group/listing-tracker/internal/snapshot"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the two latest snapshots and append changes to the tracking sheet",
	Long:  "Reruns the diff step without scraping. Entries are dated today in the configured time zone.",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("diff"); err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		client, err := initSheets(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := client.Close(); cerr != nil && err == nil {
				err = eris.Wrap(cerr, "close sheets")
			}
		}()

		if _, err := snapshot.NewWriter(client, cfg.Sheets.TrackingTitle).EnsureTracking(ctx); err != nil {
			return err
		}
		engine := diff.NewEngine(snapshot.NewReader(client), client, cfg.Sheets.TrackingTitle)
		res, err := engine.Run(ctx, time.Now().In(loc).Format(model.DateLayout))
		if err != nil {
			return eris.Wrap(err, "diff")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
