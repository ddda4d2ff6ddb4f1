package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dookkeobi/leakpot/internal/api"
	"github.com/dookkeobi/leakpot/internal/session"
	"github.com/dookkeobi/leakpot/internal/sheets"
	"github.com/spf13/viper"
)

// LoadAPIConfig loads the backend API client configuration from Viper.
func LoadAPIConfig() (api.Config, error) {
	config := api.Config{
		BaseURL: viper.GetString("api.base_url"),
		Timeout: viper.GetDuration("api.timeout"),
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	if err := config.Validate(); err != nil {
		return api.Config{}, fmt.Errorf("invalid api config: %w", err)
	}
	return config, nil
}

// LoadOAuthConfig loads the login flow configuration from Viper.
func LoadOAuthConfig() (session.OAuthConfig, error) {
	config := session.OAuthConfig{
		ClientID:     viper.GetString("auth.client_id"),
		ClientSecret: viper.GetString("auth.client_secret"),
		AuthURL:      viper.GetString("auth.auth_url"),
		TokenURL:     viper.GetString("auth.token_url"),
		ListenAddr:   viper.GetString("auth.listen_addr"),
	}

	if err := config.Validate(); err != nil {
		return session.OAuthConfig{}, fmt.Errorf("invalid auth config: %w", err)
	}
	return config, nil
}

// LoadSheetsConfig loads Google Sheets configuration from Viper and
// environment variables. Viper keys win; GOOGLE_SHEETS_* variables fill
// anything left unset.
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		config.SpreadsheetName = v
	}

	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if config.SpreadsheetName == "" {
		config.SpreadsheetName = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME")
	}
	if config.SpreadsheetName == "" {
		config.SpreadsheetName = "Leak Report"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// DatabasePath resolves the local cache database path, defaulting under
// the user's config directory.
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	return ExpandPath("~/.config/leakpot/leakpot.db")
}
