package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// login <usernameOrEmail>: authenticate and persist the session.
func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <usernameOrEmail>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptLine(cmd, "password: "); err != nil {
					return err
				}
			}
			session, err := wire.Sessions.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as customer %s\n", session.CustomerID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if omitted)")
	return cmd
}

// logout: drop the active and persisted session.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.Sessions.Logout()
			wire.Accounts.Invalidate()
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

// whoami: show the restored session, if any.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ok := wire.Creds.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			if session.Name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (customer %s)\n", session.Name, session.CustomerID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "customer %s\n", session.CustomerID)
			return nil
		},
	}
}
