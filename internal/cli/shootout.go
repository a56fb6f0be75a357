package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShootoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shootout",
		Short: "Shootout commands",
	}

	cmd.AddCommand(newShootoutCreateCmd())
	cmd.AddCommand(newShootoutGetCmd())
	cmd.AddCommand(newShootoutKickCmd())
	cmd.AddCommand(newShootoutScoreCmd())
	cmd.AddCommand(newShootoutHistoryCmd())
	cmd.AddCommand(newShootoutDeleteCmd())

	return cmd
}

func newShootoutCreateCmd() *cobra.Command {
	var rounds, extendedAfter int

	cmd := &cobra.Command{
		Use:   "create <team-a> <team-b>",
		Short: "Start a shootout; team-a kicks first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"team_a": args[0],
				"team_b": args[1],
			}
			if rounds > 0 {
				req["regulation_rounds"] = rounds
			}
			if extendedAfter != 0 {
				req["extended_score_after_kicks"] = extendedAfter
			}

			var result Shootout
			if err := client.Post(cmd.Context(), "/api/v1/shootouts", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 0, "Regulation rounds per team (default: server default)")
	cmd.Flags().IntVar(&extendedAfter, "extended-after", 0, "Kicks before the priced score format; -1 disables (default: server default)")

	return cmd
}

func newShootoutGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show shootout state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Shootout
			if err := client.Get(cmd.Context(), pathf("/api/v1/shootouts/%s", args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newShootoutKickCmd() *cobra.Command {
	var player, team string

	cmd := &cobra.Command{
		Use:   "kick <id> <goal|miss>",
		Short: "Record a kick",
		Long: `Record a kick for the team whose turn it is.

With --player and --team the kick is attributed to a player, and the server
rejects it if that team is not due to kick.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			success, err := parseOutcome(args[1])
			if err != nil {
				return err
			}
			if (player == "") != (team == "") {
				return fmt.Errorf("--player and --team must be given together")
			}

			req := map[string]any{"success": success}
			if player != "" {
				req["player"] = player
				req["team"] = team
			}

			var result KickResult
			if err := client.Post(cmd.Context(), pathf("/api/v1/shootouts/%s/kicks", args[0]), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Kicking player")
	cmd.Flags().StringVar(&team, "team", "", "Team the player kicks for")

	return cmd
}

func newShootoutScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <id>",
		Short: "Show the score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreResult
			if err := client.Get(cmd.Context(), pathf("/api/v1/shootouts/%s/score", args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newShootoutHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id> <player>",
		Short: "Show a player's kicks in a shootout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HistoryResult
			path := pathf("/api/v1/shootouts/%s/players/%s/history", args[0], args[1])
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newShootoutDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shootout you referee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), pathf("/api/v1/shootouts/%s", args[0])); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Deleted shootout %s", args[0]))
			return nil
		},
	}
}

func parseOutcome(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "goal", "scored", "g":
		return true, nil
	case "miss", "missed", "m":
		return false, nil
	default:
		return false, fmt.Errorf("invalid outcome %q: use goal or miss", s)
	}
}
