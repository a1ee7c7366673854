package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// accounts: fetch and list the customer's accounts.
func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List your accounts and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := wire.Accounts.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no accounts")
				return nil
			}
			for _, a := range accounts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s  %s\n", a.AccountNumber, a.AccountType, a.Balance.StringFixed(2))
			}
			return nil
		},
	}
}

// types: list the account types offered by the bank.
func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List available account types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accountTypes, err := wire.Accounts.AccountTypes(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range accountTypes {
				fmt.Fprintln(cmd.OutOrStdout(), t.Name)
			}
			return nil
		},
	}
}

// open <type>: open a new account of the given type.
func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <accountType>",
		Short: "Open a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := wire.Accounts.CreateAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "opened %s account %s\n", account.AccountType, account.AccountNumber)
			return nil
		},
	}
}

// statement <account>: print the transaction statement for an account.
func statementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statement <accountNumber>",
		Short: "Show an account's transaction statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := wire.Accounts.Statement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no transactions")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s  %-10s  %s\n", e.Date, e.TransactionType, e.Amount.StringFixed(2))
			}
			return nil
		},
	}
}
