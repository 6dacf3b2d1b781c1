package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/overtone-dev/overtone/internal/tokens"
)

var (
	setAppLayer bool
	setPersist  bool
)

func init() {
	setCmd.Flags().BoolVar(&setAppLayer, "app", false, "write to the app branding layer instead of the user layer")
	setCmd.Flags().BoolVar(&setPersist, "persist", false, "save the user layer after applying")
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
	rootCmd.AddCommand(saveCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <token> <value>",
	Short: "Apply an override for a token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		token := tokens.Token(args[0])
		value := tokens.Color(args[1])

		if setAppLayer {
			if err := mgr.SetAppOverride(token, value); err != nil {
				return err
			}
		} else {
			if err := mgr.SetUserOverride(cmd.Context(), token, value, setPersist); err != nil {
				return err
			}
		}

		resolved, source, err := mgr.ResolveProvenance(token)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s  (from %s)\n", token, resolved, source)
		return nil
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <token>",
	Short: "Remove a user override without touching the saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		token := tokens.Token(args[0])
		if err := mgr.RemoveUserOverride(token); err != nil {
			return err
		}

		resolved, source, err := mgr.ResolveProvenance(token)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s  (from %s)\n", token, resolved, source)
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the current user layer as a complete snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := mgr.SaveUserPreferences(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %d user overrides\n", len(mgr.UserOverrides()))
		return nil
	},
}
