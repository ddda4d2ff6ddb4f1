package main

import (
	"fmt"

	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/spf13/cobra"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
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

			user, err := client.GetUserInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch user info: %w", err)
			}

			fmt.Println(cli.RenderBox("Account", fmt.Sprintf("%s\n%s", user.Name, user.Email)))
			return nil
		},
	}
}
