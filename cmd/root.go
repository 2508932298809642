package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listing-tracker/internal/config"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "listing-tracker",
	Short: "Daily product listing snapshot and change tracker",
	Long: `Scrapes a retailer's brand listing, writes a dated snapshot sheet, and logs
products that appeared or disappeared since the previous snapshot.

Settings come from config.yaml (or --config) and TRACKER_* environment
variables, e.g. TRACKER_BRAND=Tudor or TRACKER_SHEETS_BACKEND=xlsx.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		zap.L().Debug("config loaded",
			zap.String("brand", cfg.Brand),
			zap.String("sheets_backend", cfg.Sheets.Backend),
			zap.String("store_driver", cfg.Store.Driver),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("listing-tracker failed", zap.Error(err))
		os.Exit(1)
	}
}
