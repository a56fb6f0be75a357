package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefereeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referee",
		Short: "Referee account commands",
	}

	cmd.AddCommand(newRefereeRegisterCmd())
	cmd.AddCommand(newRefereeLoginCmd())
	cmd.AddCommand(newRefereeMeCmd())
	cmd.AddCommand(newRefereeLogoutCmd())

	return cmd
}

func newRefereeRegisterCmd() *cobra.Command {
	var name, user, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new referee account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"display_name": name,
				"username":     user,
				"password":     pass,
			}
			var result AuthResult

			if err := client.Post(cmd.Context(), "/api/v1/referees/register", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password, at least 8 characters (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newRefereeLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post(cmd.Context(), "/api/v1/referees/login", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newRefereeMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in referee",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Referee

			if err := client.Get(cmd.Context(), "/api/v1/referees/me", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRefereeLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(cmd.Context(), "/api/v1/referees/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			output(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}
