package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List keyboards with their configurations and keymaps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range registry.Names() {
			kb, err := registry.Keyboard(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%gx%g)\n", kb.Name, kb.Size.X, kb.Size.Y)
			for _, cfg := range kb.ConfigurationNames() {
				fmt.Fprintf(out, "  configuration: %s (%d keys)\n", cfg, len(kb.Configurations[cfg]))
			}
			if keymaps := registry.Keymaps(name); len(keymaps) > 0 {
				fmt.Fprintf(out, "  keymaps: %s\n", strings.Join(keymaps, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
