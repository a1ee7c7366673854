package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"teller/internal/domain"
)

// register: sign up a new customer. The backend requires every field, so
// anything not given as a flag is prompted for.
func registerCmd() *cobra.Command {
	var reg domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Sign up a new customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := []struct {
				dst    *string
				prompt string
			}{
				{&reg.FirstName, "first name: "},
				{&reg.LastName, "last name: "},
				{&reg.Username, "username: "},
				{&reg.Email, "email: "},
				{&reg.PhoneNumber, "phone number: "},
				{&reg.NationalID, "national id: "},
				{&reg.DateOfBirth, "date of birth (YYYY-MM-DD): "},
				{&reg.Password, "password: "},
			}
			for _, f := range fields {
				if *f.dst != "" {
					continue
				}
				var err error
				if *f.dst, err = promptLine(cmd, f.prompt); err != nil {
					return err
				}
			}
			message, err := wire.Sessions.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.Username, "username", "", "username")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.PhoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVar(&reg.NationalID, "national-id", "", "national id")
	cmd.Flags().StringVar(&reg.DateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "password (prompted if omitted)")
	return cmd
}
