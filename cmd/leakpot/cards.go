package main

import (
	"errors"
	"fmt"

	"github.com/dookkeobi/leakpot/internal/cli"
	"github.com/dookkeobi/leakpot/internal/common"
	"github.com/spf13/cobra"
)

func cardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage the card used for transaction ingestion",
	}

	cmd.AddCommand(showCardCmd())
	cmd.AddCommand(registerCardCmd())
	cmd.AddCommand(deleteCardCmd())

	return cmd
}

func showCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the registered card",
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

			card, err := client.GetCard(ctx)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					fmt.Println(cli.FormatInfo("No card registered. Run 'leakpot cards register'."))
					return nil
				}
				return fmt.Errorf("failed to fetch card: %w", err)
			}

			fmt.Println(cli.RenderBox("Card", maskAccount(card.Account)))
			return nil
		},
	}
}

func registerCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <card-number> <cvc>",
		Short: "Register a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, sess, store, err := initClient(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireLogin(sess); err != nil {
				return err
			}

			card, err := client.RegisterCard(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to register card: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered card %s.", maskAccount(card.Account))))
			return nil
		},
	}
}

func deleteCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the registered card",
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

			if err := client.DeleteCard(ctx); err != nil {
				return fmt.Errorf("failed to delete card: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Card removed."))
			return nil
		},
	}
}

// maskAccount hides all but the last four digits.
func maskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return fmt.Sprintf("****-%s", account[len(account)-4:])
}
