package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listing-tracker/internal/diff"
	"github.com/sells-group/listing-tracker/internal/snapshot"
	"github.com/sells-group/listing-tracker/internal/tracker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape the brand listing, write today's snapshot and log changes",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("run"); err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		sc, err := initScraper()
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

		writer := snapshot.NewWriter(client, cfg.Sheets.TrackingTitle)
		engine := diff.NewEngine(snapshot.NewReader(client), client, cfg.Sheets.TrackingTitle)

		opts := []tracker.Option{tracker.WithLocation(loc)}
		if st != nil {
			opts = append(opts, tracker.WithStore(st))
		}
		t := tracker.New(cfg.Brand, sc, writer, engine, opts...)

		run, err := t.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "tracker run")
		}

		zap.L().Info("run complete",
			zap.String("run_id", run.ID),
			zap.String("status", string(run.Status)),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
