package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/overtone-dev/overtone/internal/theme"
)

func init() {
	rootCmd.AddCommand(themesCmd)
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List builtin themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		active := viper.GetString("theme")
		for _, name := range theme.Names() {
			marker := " "
			if name == active {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d tokens)\n", marker, name, theme.Builtin[name].Len())
		}
		return nil
	},
}
