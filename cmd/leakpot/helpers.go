package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dookkeobi/leakpot/internal/api"
	"github.com/dookkeobi/leakpot/internal/common"
	"github.com/dookkeobi/leakpot/internal/config"
	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/dookkeobi/leakpot/internal/session"
	"github.com/dookkeobi/leakpot/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the local database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initClient wires storage, session, and API client together. The session
// restores any persisted token; callers that need authentication check
// Active themselves or let the backend's 401 handling surface it.
func initClient(ctx context.Context) (*api.Client, *session.Session, *storage.SQLiteStorage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	sess := session.New(ctx, store)

	apiCfg, err := config.LoadAPIConfig()
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, err
	}

	client, err := api.NewClient(apiCfg, sess)
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, err
	}

	return client, sess, store, nil
}

// requireLogin fails fast with a friendly message when no session exists.
func requireLogin(sess *session.Session) error {
	if !sess.Active() {
		return common.NewUserError("Not logged in. Run 'leakpot login' first", common.ErrLoginRequired)
	}
	return nil
}

// periodFromFlags reads --year/--month, defaulting to the current month.
func periodFromFlags(cmd *cobra.Command) (model.Period, error) {
	period := model.CurrentPeriod()

	if cmd.Flags().Changed("year") {
		year, err := cmd.Flags().GetInt("year")
		if err != nil {
			return model.Period{}, err
		}
		period.Year = year
	}
	if cmd.Flags().Changed("month") {
		month, err := cmd.Flags().GetInt("month")
		if err != nil {
			return model.Period{}, err
		}
		period.Month = month
	}

	if !period.Valid() {
		return model.Period{}, fmt.Errorf("invalid period %s", period)
	}
	return period, nil
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", 0, "year (default: current)")
	cmd.Flags().Int("month", 0, "month 1-12 (default: current)")
}

// commitWindow returns the debounce window for interactive editing. Zero
// selects the scheduler default.
func commitWindow() time.Duration {
	return viper.GetDuration("editor.commit_window")
}
