package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dookkeobi/leakpot/internal/budget"
	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/dookkeobi/leakpot/internal/leak"
	"github.com/dookkeobi/leakpot/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Inspect and edit budget thresholds",
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(setBudgetCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's categories with spending and thresholds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period, err := periodFromFlags(cmd)
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
			categories, err := service.GetMonthlyBudgets(ctx, period)
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("No budgets found for %s.", period)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Budgets %s", period)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCategory\tSpending\tThreshold\tLeak")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 14),
				strings.Repeat("-", 12),
				strings.Repeat("-", 12),
				strings.Repeat("-", 12))

			for _, cat := range categories {
				leakCol := "-"
				if cat.Leaking() {
					leakCol = cli.ErrorStyle.Render(viewmodel.FormatAmount(cat.LeakAmount()))
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					cat.ID,
					cat.Name,
					viewmodel.FormatAmount(cat.Spending),
					viewmodel.FormatAmount(cat.Threshold),
					leakCol)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			leaks, total := leak.Derive(categories)
			if len(leaks) == 0 {
				fmt.Println(cli.FormatSuccess("The pot is holding. No leaks."))
			} else {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%d categories leaking, %s total.",
					len(leaks), viewmodel.FormatAmount(total))))
			}

			return nil
		},
	}

	addPeriodFlags(cmd)
	return cmd
}

func setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <budget-id> <threshold>",
		Short: "Set one category's threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			budgetID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid budget id %q", args[0])
			}
			threshold, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || threshold < 0 {
				return fmt.Errorf("invalid threshold %q", args[1])
			}

			client, sess, store, err := initClient(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireLogin(sess); err != nil {
				return err
			}

			if err := client.UpdateBudget(ctx, budgetID, threshold); err != nil {
				return fmt.Errorf("failed to update budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Threshold for budget %d set to %s.",
				budgetID, viewmodel.FormatAmount(threshold))))
			return nil
		},
	}
}
