package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newValuationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "valuation",
		Short: "Player price commands",
	}

	cmd.AddCommand(newValuationSetCmd())
	cmd.AddCommand(newValuationGetCmd())

	return cmd
}

func newValuationSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <player> <price>",
		Short: "Set a player's price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}

			var result Valuation
			req := map[string]int64{"price": price}
			if err := client.Put(cmd.Context(), pathf("/api/v1/valuations/%s", args[0]), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newValuationGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player>",
		Short: "Show a player's price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Valuation
			if err := client.Get(cmd.Context(), pathf("/api/v1/valuations/%s", args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
