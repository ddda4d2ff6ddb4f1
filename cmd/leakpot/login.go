package main

import (
	"fmt"

	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/dookkeobi/leakpot/internal/config"
	"github.com/dookkeobi/leakpot/internal/session"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in through the browser",
		Long: `Start the OAuth login flow. A browser window opens for the backend's
authorization page; the resulting token is stored locally and reused until
it expires or you log out.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			oauthCfg, err := config.LoadOAuthConfig()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sess := session.New(ctx, store)
			if err := sess.Login(ctx, oauthCfg); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Logged in."))
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sess := session.New(ctx, store)
			if !sess.Active() {
				fmt.Println(cli.FormatInfo("Not logged in."))
				return nil
			}

			if err := sess.Clear(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Logged out."))
			return nil
		},
	}
}
