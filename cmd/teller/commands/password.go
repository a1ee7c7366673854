package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// passwd: change the logged-in user's password.
func passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd <usernameOrEmail>",
		Short: "Change your password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldPassword, err := promptLine(cmd, "current password: ")
			if err != nil {
				return err
			}
			newPassword, err := promptLine(cmd, "new password: ")
			if err != nil {
				return err
			}
			confirm, err := promptLine(cmd, "confirm new password: ")
			if err != nil {
				return err
			}
			if newPassword != confirm {
				return fmt.Errorf("passwords do not match")
			}
			message, err := wire.Sessions.UpdatePassword(cmd.Context(), args[0], oldPassword, newPassword)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

// forgot-password: request reset instructions.
func forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <usernameOrEmail>",
		Short: "Request password reset instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := wire.Sessions.ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

// reset-password: complete a reset with the emailed token.
func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Reset your password with a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newPassword, err := promptLine(cmd, "new password: ")
			if err != nil {
				return err
			}
			message, err := wire.Sessions.ResetPassword(cmd.Context(), args[0], newPassword)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}
