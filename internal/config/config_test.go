package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "plain path", path: "/etc/leakpot.yaml", want: "/etc/leakpot.yaml"},
		{name: "tilde prefix", path: "~/config.yaml", want: filepath.Join(home, "config.yaml")},
		{name: "bare tilde", path: "~", want: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestExpandPathEnvVar(t *testing.T) {
	t.Setenv("LEAKPOT_TEST_DIR", "/opt/leakpot")
	assert.Equal(t, "/opt/leakpot/db", ExpandPath("$LEAKPOT_TEST_DIR/db"))
}

func TestLoadAPIConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("api.base_url", "https://api.example.com")

	config, err := LoadAPIConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", config.BaseURL)
	assert.Equal(t, 15*time.Second, config.Timeout)
}

func TestLoadAPIConfigMissingBaseURL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadAPIConfig()
	assert.Error(t, err)
}

func TestLoadSheetsConfigFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("sheets.client_id", "id")
	viper.Set("sheets.client_secret", "secret")
	viper.Set("sheets.refresh_token", "refresh")
	viper.Set("sheets.spreadsheet_id", "sheet-1")

	config, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "id", config.ClientID)
	assert.Equal(t, "sheet-1", config.SpreadsheetID)
	assert.Equal(t, "Leak Report", config.SpreadsheetName)
}

func TestLoadSheetsConfigEnvFallback(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "env-refresh")

	config, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-id", config.ClientID)
}

func TestLoadSheetsConfigMissingAuth(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadSheetsConfig()
	assert.Error(t, err)
}

func TestDatabasePathDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/leakpot/leakpot.db"), DatabasePath())
}

func TestDatabasePathOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("database.path", "/tmp/pot.db")
	assert.Equal(t, "/tmp/pot.db", DatabasePath())
}
