package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dookkeobi/leakpot/internal/budget"
	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/dookkeobi/leakpot/internal/config"
	"github.com/dookkeobi/leakpot/internal/leak"
	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/dookkeobi/leakpot/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a yearly leak report to Google Sheets",
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

			sheetsCfg, err := config.LoadSheetsConfig()
			if err != nil {
				return err
			}

			client, sess, store, err := initClient(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireLogin(sess); err != nil {
				return err
			}

			service := budget.NewCachedService(client, store)

			summaries, err := service.GetYearlyBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch leak summary: %w", err)
			}

			report := sheets.Report{Year: year, Summaries: summaries}
			for month := 1; month <= 12; month++ {
				period := model.Period{Year: year, Month: month}

				categories, fetchErr := service.GetMonthlyBudgets(ctx, period)
				if fetchErr != nil {
					continue
				}

				leaks, total := leak.Derive(categories)
				if len(leaks) == 0 {
					continue
				}

				report.Months = append(report.Months, sheets.MonthDetail{
					Period:    period,
					Leaks:     leaks,
					TotalLeak: total,
				})
			}

			writer, err := sheets.NewWriter(ctx, *sheetsCfg,
				slog.Default().With("component", "sheets"))
			if err != nil {
				return err
			}

			if err := writer.Write(ctx, report); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d leak report (%d leaking months).",
				year, len(report.Months))))
			return nil
		},
	}

	cmd.Flags().Int("year", 0, "year to export (default: current)")
	return cmd
}
