package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Brand    string       `yaml:"brand" mapstructure:"brand"`
	Timezone string       `yaml:"timezone" mapstructure:"timezone"`
	Site     SiteConfig   `yaml:"site" mapstructure:"site"`
	Sheets   SheetsConfig `yaml:"sheets" mapstructure:"sheets"`
	Store    StoreConfig  `yaml:"store" mapstructure:"store"`
	Log      LogConfig    `yaml:"log" mapstructure:"log"`
}

// SiteConfig configures the listing site being scraped.
type SiteConfig struct {
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	AssetBaseURL      string  `yaml:"asset_base_url" mapstructure:"asset_base_url"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	Encoding          string  `yaml:"encoding" mapstructure:"encoding"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// SheetsConfig selects and configures the spreadsheet backend.
type SheetsConfig struct {
	Backend         string `yaml:"backend" mapstructure:"backend"`
	SpreadsheetID   string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
	XLSXPath        string `yaml:"xlsx_path" mapstructure:"xlsx_path"`
	TrackingTitle   string `yaml:"tracking_title" mapstructure:"tracking_title"`
}

// StoreConfig configures the run ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path looks
// for an optional config.yaml in the working directory; a non-empty path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("brand", "Rolex")
	v.SetDefault("timezone", "Asia/Taipei")
	v.SetDefault("site.base_url", "https://www.egps.com.tw/products.asp")
	v.SetDefault("site.asset_base_url", "https://www.egps.com.tw/")
	v.SetDefault("site.user_agent", "Mozilla/5.0")
	v.SetDefault("site.encoding", "big5")
	v.SetDefault("site.timeout_secs", 30)
	v.SetDefault("site.requests_per_second", 0)
	v.SetDefault("sheets.backend", "google")
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.credentials_file", "service_account.json")
	v.SetDefault("sheets.xlsx_path", "listing-tracker.xlsx")
	v.SetDefault("sheets.tracking_title", "商品變動追蹤")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "listing-tracker.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Location returns the time zone used to compute the run date.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, eris.Wrapf(err, "config: load timezone %q", c.Timezone)
	}
	return loc, nil
}

// Timeout returns the site request timeout.
func (c SiteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Validate checks the settings a command mode needs. Modes: "run", "scrape",
// "diff", "runs".
func (c *Config) Validate(mode string) error {
	var errs []string

	needSite := mode == "run" || mode == "scrape"
	needSheets := mode == "run" || mode == "diff"
	needStore := mode == "run" || mode == "runs"

	switch mode {
	case "run", "scrape", "diff", "runs":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if needSite {
		if c.Brand == "" {
			errs = append(errs, "brand is required")
		}
		if c.Site.BaseURL == "" {
			errs = append(errs, "site.base_url is required")
		}
		if c.Site.TimeoutSecs <= 0 {
			errs = append(errs, "site.timeout_secs must be > 0")
		}
		if c.Site.RequestsPerSecond < 0 {
			errs = append(errs, "site.requests_per_second must be >= 0")
		}
	}

	if needSheets {
		switch c.Sheets.Backend {
		case "google":
			if c.Sheets.SpreadsheetID == "" {
				errs = append(errs, "sheets.spreadsheet_id is required for the google backend")
			}
		case "xlsx":
			if c.Sheets.XLSXPath == "" {
				errs = append(errs, "sheets.xlsx_path is required for the xlsx backend")
			}
		default:
			errs = append(errs, fmt.Sprintf("sheets.backend must be google or xlsx, got %q", c.Sheets.Backend))
		}
		if c.Sheets.TrackingTitle == "" {
			errs = append(errs, "sheets.tracking_title is required")
		}
	}

	if needStore {
		switch c.Store.Driver {
		case "none":
		case "sqlite", "postgres":
			if c.Store.DatabaseURL == "" {
				errs = append(errs, "store.database_url is required")
			}
		default:
			errs = append(errs, fmt.Sprintf("store.driver must be sqlite, postgres or none, got %q", c.Store.Driver))
		}
		if mode == "runs" && c.Store.Driver == "none" {
			errs = append(errs, "store.driver none keeps no run history")
		}
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("timezone %q is not a known location", c.Timezone))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
