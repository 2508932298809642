package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the brand listing and print the records as JSON",
	Long:  "Runs the pagination loop for the configured brand without touching the spreadsheet or the run ledger.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("scrape"); err != nil {
			return err
		}

		sc, err := initScraper()
		if err != nil {
			return err
		}

		res, err := sc.Scrape(ctx, cfg.Brand)
		if err != nil {
			return eris.Wrap(err, "scrape")
		}

		zap.L().Info("scrape complete",
			zap.String("brand", cfg.Brand),
			zap.Int("pages", res.Pages),
			zap.Int("records", len(res.Records)),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res.Records)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
