package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"run", "scrape", "diff", "runs"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "listing-tracker", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag, "root should have a persistent --config flag")
	assert.Empty(t, flag.DefValue)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCommand_LoadsExplicitConfig(t *testing.T) {
	prevCfg, prevPath := cfg, configPath
	t.Cleanup(func() { cfg, configPath = prevCfg, prevPath })

	configPath = filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("brand: Tudor\nlog:\n  format: console\n"), 0644))

	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	assert.Equal(t, "Tudor", cfg.Brand)

	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	assert.ErrorContains(t, rootCmd.PersistentPreRunE(rootCmd, nil), "load config")
}

func TestRunCommand_HasNoBrandFlag(t *testing.T) {
	assert.Nil(t, runCmd.Flags().Lookup("brand"), "brand comes from configuration")
}

func TestRunsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range runsCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["show"])
}

func TestRunsListCommand_Flags(t *testing.T) {
	flag := runsListCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "runs list should have --limit flag")
	assert.Equal(t, "30", flag.DefValue)

	for _, name := range []string{"status", "brand"} {
		assert.NotNil(t, runsListCmd.Flags().Lookup(name), "runs list should have --%s flag", name)
	}
}
