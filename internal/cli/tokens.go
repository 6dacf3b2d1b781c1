package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/overtone-dev/overtone/internal/manager"
)

func init() {
	rootCmd.AddCommand(tokensCmd)
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List registered tokens with their effective values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		reg := mgr.Registry()
		for _, cat := range reg.Categories() {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", cat)
			for _, def := range reg.ByCategory(cat) {
				value, source, err := mgr.ResolveProvenance(def.Key)
				if err != nil {
					return err
				}
				marker := ""
				if source != manager.SourceTheme && source != manager.SourceDefault {
					marker = fmt.Sprintf("  (%s override)", source)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-36s %s%s\n", def.Key, value, marker)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}
