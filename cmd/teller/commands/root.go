package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teller/internal/app"
)

var (
	home    string
	apiURL  string
	verbose bool

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "teller",
		Short:         "Command-line client for the bank's online banking API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(home, apiURL, verbose)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg)
			if err != nil {
				return err
			}
			// Pick up a session from a previous run, if one survives.
			if session, ok := wire.Sessions.Restore(); ok {
				wire.Log.Debug().Str("customer", session.CustomerID).Msg("session restored")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.teller)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "banking API base URL (default $TELLER_API_URL)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		registerCmd(), loginCmd(), logoutCmd(), whoamiCmd(),
		accountsCmd(), typesCmd(), openCmd(), statementCmd(),
		depositCmd(), withdrawCmd(), transferCmd(),
		passwdCmd(), forgotPasswordCmd(), resetPasswordCmd(),
	)
	return root.Execute()
}

// stdin is shared across prompts so consecutive reads don't drop buffered
// input.
var stdin *bufio.Reader

// promptLine reads one line from the command's stdin, trimmed.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	if stdin == nil {
		stdin = bufio.NewReader(cmd.InOrStdin())
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
