package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/listing-tracker/internal/config"
	"github.com/sells-group/listing-tracker/pkg/sheets"
)

func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestInitStore_None(t *testing.T) {
	withConfig(t, &config.Config{Store: config.StoreConfig{Driver: "none"}})

	st, err := initStore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestInitStore_SQLite(t *testing.T) {
	withConfig(t, &config.Config{Store: config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "runs.db"),
	}})

	st, err := initStore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, st)
	defer st.Close() //nolint:errcheck

	run, err := st.CreateRun(context.Background(), "Rolex", "2025-10-01")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
}

func TestInitStore_Unsupported(t *testing.T) {
	withConfig(t, &config.Config{Store: config.StoreConfig{Driver: "mysql"}})

	_, err := initStore(context.Background())
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestInitSheets_XLSX(t *testing.T) {
	withConfig(t, &config.Config{Sheets: config.SheetsConfig{
		Backend:  "xlsx",
		XLSXPath: filepath.Join(t.TempDir(), "out.xlsx"),
	}})

	c, err := initSheets(context.Background())
	require.NoError(t, err)
	_, ok := c.(*sheets.XLSXClient)
	assert.True(t, ok)
	assert.NoError(t, c.Close())
}

func TestInitSheets_GoogleRequiresID(t *testing.T) {
	withConfig(t, &config.Config{Sheets: config.SheetsConfig{Backend: "google"}})

	c, err := initSheets(context.Background())
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestInitSheets_Unsupported(t *testing.T) {
	withConfig(t, &config.Config{Sheets: config.SheetsConfig{Backend: "csv"}})

	_, err := initSheets(context.Background())
	assert.ErrorContains(t, err, "unsupported sheets backend")
}

func TestInitScraper(t *testing.T) {
	withConfig(t, &config.Config{Site: config.SiteConfig{
		BaseURL:      "https://www.egps.com.tw/products.asp",
		AssetBaseURL: "https://www.egps.com.tw/",
		Encoding:     "big5",
		TimeoutSecs:  5,
	}})

	sc, err := initScraper()
	require.NoError(t, err)
	assert.NotNil(t, sc)
}

func TestInitScraper_BadEncoding(t *testing.T) {
	withConfig(t, &config.Config{Site: config.SiteConfig{
		BaseURL:  "https://www.egps.com.tw/products.asp",
		Encoding: "klingon",
	}})

	_, err := initScraper()
	assert.ErrorContains(t, err, "unsupported encoding")
}
