package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/overtone-dev/overtone/internal/tokens"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <token>",
	Short: "Resolve a token through the precedence chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		value, source, err := mgr.ResolveProvenance(tokens.Token(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  (from %s)\n", value, source)
		return nil
	},
}
