package main

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"
	"google.golang.org/api/option"

	"github.com/sells-group/listing-tracker/internal/fetcher"
	"github.com/sells-group/listing-tracker/internal/scrape"
	"github.com/sells-group/listing-tracker/internal/store"
	"github.com/sells-group/listing-tracker/pkg/sheets"
)

// initStore opens and migrates the run ledger. It returns a nil Store when
// the driver is "none".
func initStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	switch cfg.Store.Driver {
	case "none":
		return nil, nil
	case "sqlite":
		s, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st = s
	case "postgres":
		s, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st = s
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initSheets opens the configured spreadsheet backend. Callers must Close
// the client; for the xlsx backend that is what saves the workbook.
func initSheets(ctx context.Context) (sheets.Client, error) {
	switch cfg.Sheets.Backend {
	case "google":
		c, err := sheets.NewGoogleClient(ctx, cfg.Sheets.SpreadsheetID,
			option.WithCredentialsFile(cfg.Sheets.CredentialsFile))
		if err != nil {
			return nil, err
		}
		return c, nil
	case "xlsx":
		c, err := sheets.OpenXLSX(cfg.Sheets.XLSXPath)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, eris.Errorf("unsupported sheets backend: %s", cfg.Sheets.Backend)
	}
}

// initScraper builds the listing scraper from the site settings.
func initScraper() (*scrape.Scraper, error) {
	f, err := fetcher.NewPageFetcher(fetcher.PageOptions{
		BaseURL:           cfg.Site.BaseURL,
		UserAgent:         cfg.Site.UserAgent,
		Encoding:          cfg.Site.Encoding,
		Timeout:           cfg.Site.Timeout(),
		RequestsPerSecond: cfg.Site.RequestsPerSecond,
	})
	if err != nil {
		return nil, err
	}

	assets, err := url.Parse(cfg.Site.AssetBaseURL)
	if err != nil {
		return nil, eris.Wrapf(err, "parse asset base url %q", cfg.Site.AssetBaseURL)
	}
	listing, err := scrape.ListingName(cfg.Site.BaseURL)
	if err != nil {
		return nil, err
	}
	return scrape.New(f, assets, listing), nil
}
