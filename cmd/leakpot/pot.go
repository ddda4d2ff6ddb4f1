package main

import (
	"github.com/dookkeobi/leakpot/internal/budget"
	"github.com/dookkeobi/leakpot/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func potCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pot",
		Short: "Open the interactive pot view",
		Long: `Open the pot for a month. Move between categories with j/k, slide the
selected threshold with h/l, and watch cracks open where spending exceeds
the threshold. Edits save automatically shortly after you stop sliding.

Works offline against the last synced data.`,
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

			return tui.Run(ctx, tui.Config{
				Service: budget.NewCachedService(client, store),
				Updater: client,
				Period:  period,
				Theme:   viper.GetString("tui.theme"),
				Window:  commitWindow(),
			})
		},
	}

	addPeriodFlags(cmd)
	return cmd
}
