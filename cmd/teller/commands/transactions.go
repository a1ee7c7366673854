package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"teller/internal/domain"
)

// deposit <toAccount> <amount>: deposit into one of your accounts.
func depositCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "deposit <toAccount> <amount>",
		Short: "Deposit funds into one of your accounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return domain.ValidationError(fmt.Sprintf("invalid amount %q", args[1]))
			}
			return runFlow(cmd, domain.TransactionDraft{
				Kind:      domain.KindDeposit,
				ToAccount: args[0],
				Amount:    amount,
			}, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// withdraw <fromAccount> <amount>: withdraw from one of your accounts.
func withdrawCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "withdraw <fromAccount> <amount>",
		Short: "Withdraw funds from one of your accounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return domain.ValidationError(fmt.Sprintf("invalid amount %q", args[1]))
			}
			return runFlow(cmd, domain.TransactionDraft{
				Kind:        domain.KindWithdraw,
				FromAccount: args[0],
				Amount:      amount,
			}, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// transfer <fromAccount> <toAccount> <amount>: move funds between accounts.
func transferCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "transfer <fromAccount> <toAccount> <amount>",
		Short: "Transfer funds to another account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return domain.ValidationError(fmt.Sprintf("invalid amount %q", args[2]))
			}
			return runFlow(cmd, domain.TransactionDraft{
				Kind:        domain.KindTransfer,
				FromAccount: args[0],
				ToAccount:   args[1],
				Amount:      amount,
			}, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// runFlow drives one confirm-then-commit cycle: refresh the account view so
// validation sees current accounts, draft, show the quote, then confirm or
// cancel on the user's answer.
func runFlow(cmd *cobra.Command, draft domain.TransactionDraft, yes bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if _, err := wire.Accounts.Refresh(ctx); err != nil {
		return err
	}

	flow, err := wire.Executor.Begin(ctx, draft)
	if err != nil {
		return err
	}

	quote := flow.Quote()
	fmt.Fprintf(out, "amount: %s\n", quote.Amount.StringFixed(2))
	fmt.Fprintf(out, "fee:    %s", quote.Fee.StringFixed(2))
	if quote.Degraded {
		fmt.Fprint(out, " (estimate unavailable, actual fee may differ)")
	}
	fmt.Fprintf(out, "\ntotal:  %s\n", quote.Total.StringFixed(2))

	if !yes {
		answer, err := promptLine(cmd, "confirm? [y/N] ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			result := flow.Cancel()
			fmt.Fprintln(out, result.Message)
			return nil
		}
	}

	result := flow.Confirm(ctx)
	switch result.Outcome {
	case domain.OutcomeSucceeded:
		fmt.Fprintln(out, result.Message)
		for _, a := range result.RefreshedAccounts {
			fmt.Fprintf(out, "%s  %-12s  %s\n", a.AccountNumber, a.AccountType, a.Balance.StringFixed(2))
		}
		return nil
	default:
		if result.Cause != nil {
			return result.Cause
		}
		return fmt.Errorf("%s", result.Message)
	}
}
