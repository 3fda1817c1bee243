package commands

import (
	"github.com/spf13/cobra"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/printer"
)

var validatePrint bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a YAML layout table",
	Long: `Load a layout table and check every keyboard and keymap in it: key ids
unique across "all" and each configuration, key sizes positive, positions
inside the keyboard and labels no longer than 32 characters. Keymap labels
for keys the keyboard does not define are reported as warnings.

With --print each keyboard is written back as a normalised YAML document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.Step("checking %s\n", args[0])
		registry, err := keyboard.LoadFile(args[0])
		if err != nil {
			return printer.Error("Invalid layout table", err, nil)
		}
		for _, name := range registry.Names() {
			kb, err := registry.Keyboard(name)
			if err != nil {
				return err
			}
			for _, cfg := range kb.ConfigurationNames() {
				layout, err := kb.Resolve(cfg)
				if err != nil {
					return printer.Error("Invalid layout table", err, nil)
				}
				printer.Info("  %s / %s: %d keys\n", name, cfg, len(layout.Keys))
			}
			for _, kmName := range registry.Keymaps(name) {
				km, err := registry.Keymap(name, kmName)
				if err != nil {
					return err
				}
				if unknown := km.UnknownKeys(kb); len(unknown) > 0 {
					printer.Warning("keymap %q labels keys %s does not define: %v\n", kmName, name, unknown)
				}
			}
			printer.Success("%s: %d configurations, %d keymaps\n", name, len(kb.ConfigurationNames()), len(registry.Keymaps(name)))

			if validatePrint {
				data, err := keyboard.Marshal(kb)
				if err != nil {
					return printer.Error("Cannot print layout table", err, nil)
				}
				out := cmd.OutOrStdout()
				if _, err := out.Write(append([]byte("---\n"), data...)); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validatePrint, "print", false, "write each keyboard as normalised YAML to stdout")
	rootCmd.AddCommand(validateCmd)
}
