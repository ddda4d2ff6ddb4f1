package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/dookkeobi/leakpot/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Inspect transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(yearTransactionsCmd())
	cmd.AddCommand(recategorizeTransactionCmd())

	return cmd
}

func yearTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year",
		Short: "Show per-month spending totals for the year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, sess, store, err := initClient(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireLogin(sess); err != nil {
				return err
			}

			totals, err := client.GetYearTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch year totals: %w", err)
			}

			if len(totals) == 0 {
				fmt.Println(cli.FormatInfo("No spending recorded this year."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Month\tSpending\tLeaked")
			for _, month := range totals {
				leaked := "-"
				if month.Leaked {
					leaked = cli.ErrorStyle.Render("leaked")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					month.Date,
					viewmodel.FormatAmount(month.TotalAmount),
					leaked)
			}
			return w.Flush()
		},
	}
}

func listTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's transactions",
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

			transactions, err := client.GetMonthlyTransactions(ctx, period)
			if err != nil {
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("No transactions for %s.", period)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Transactions %s", period)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDate\tMerchant\tCategory\tAmount")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 6),
				strings.Repeat("-", 16),
				strings.Repeat("-", 20),
				strings.Repeat("-", 14),
				strings.Repeat("-", 12))

			var total int64
			for _, tx := range transactions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					tx.ID,
					tx.DateTime.Format("2006-01-02 15:04"),
					tx.MerchantName,
					tx.Category,
					viewmodel.FormatAmount(tx.Amount))
				total += tx.Amount
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d transactions, %s total",
				len(transactions), viewmodel.FormatAmount(total))))
			return nil
		},
	}

	addPeriodFlags(cmd)
	return cmd
}

func recategorizeTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recategorize <transaction-id> <category>",
		Short: "Move a transaction to another category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			transactionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}
			category := args[1]

			client, sess, store, err := initClient(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireLogin(sess); err != nil {
				return err
			}

			if err := client.UpdateTransactionCategory(ctx, transactionID, category); err != nil {
				return fmt.Errorf("failed to recategorize: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transaction %d moved to %s.", transactionID, category)))
			return nil
		},
	}
}
