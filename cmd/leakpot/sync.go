package main

import (
	"fmt"
	"time"

	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the offline cache for a whole year",
		Long: `Fetch all twelve months of budgets plus the yearly leak summary into the
local cache, so the pot works without a network connection.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			year := time.Now().Year()
			if cmd.Flags().Changed("year") {
				y, err := cmd.Flags().GetInt("year")
				if err != nil {
					return err
				}
				year = y
			}

			client, sess, store, err := initClient(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireLogin(sess); err != nil {
				return err
			}

			summaries, err := client.GetYearlyBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch leak summary: %w", err)
			}
			if err := store.SaveLeakSummary(ctx, summaries); err != nil {
				return fmt.Errorf("failed to cache leak summary: %w", err)
			}

			bar := progressbar.NewOptions(12,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Syncing %d budgets...[reset]", year)),
			)

			synced := 0
			for month := 1; month <= 12; month++ {
				period := model.Period{Year: year, Month: month}

				categories, fetchErr := client.GetMonthlyBudgets(ctx, period)
				if fetchErr != nil {
					// Months without data are normal; keep going.
					_ = bar.Add(1)
					continue
				}

				if err := store.SaveBudgets(ctx, period, categories); err != nil {
					return fmt.Errorf("failed to cache %s: %w", period, err)
				}
				synced++
				_ = bar.Add(1)
			}
			fmt.Println()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced %d months for %d.", synced, year)))
			return nil
		},
	}

	cmd.Flags().Int("year", 0, "year to sync (default: current)")
	return cmd
}
