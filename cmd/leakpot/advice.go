package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/dookkeobi/leakpot/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func adviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Show the AI advisor's spending outlook",
		Long: `Fetch the advisor's per-category prediction for a month: the expected
spending range, the current pace, and whether each category is on track.`,
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

			reports, err := client.GetAdvice(ctx, period)
			if err != nil {
				return fmt.Errorf("failed to fetch advice: %w", err)
			}

			if len(reports) == 0 {
				fmt.Println(cli.FormatInfo("No advice available yet."))
				return nil
			}

			for _, report := range reports {
				fmt.Println(cli.FormatTitle(fmt.Sprintf("Outlook %04d-%02d", report.Year, report.Month)))

				names := make([]string, 0, len(report.Predictions))
				for name := range report.Predictions {
					names = append(names, name)
				}
				sort.Strings(names)

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "Category\tExpected\tCurrent\tOn Track")
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					strings.Repeat("-", 14),
					strings.Repeat("-", 24),
					strings.Repeat("-", 12),
					strings.Repeat("-", 8))

				for _, name := range names {
					p := report.Predictions[name]

					verdict := cli.SuccessStyle.Render("yes")
					if !p.Result {
						verdict = cli.ErrorStyle.Render("no")
					}

					fmt.Fprintf(w, "%s\t%s ~ %s\t%s\t%s\n",
						name,
						viewmodel.FormatAmount(p.Min),
						viewmodel.FormatAmount(p.Max),
						viewmodel.FormatAmount(p.Current),
						verdict)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Println()
			}

			return nil
		},
	}

	addPeriodFlags(cmd)
	return cmd
}
