package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rook-computer/keyviz/internal/app"
	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/printer"
	"github.com/rook-computer/keyviz/internal/render"
	"github.com/rook-computer/keyviz/internal/state"
)

// Flags shared by every command that draws a keyboard.
var (
	layoutsPath   string
	keyboardName  string
	configuration string
	keymapName    string
	themeName     string
	targetWidth   float64
	outputPath    string
)

var rootCmd = &cobra.Command{
	Use:   "keyviz-export",
	Short: "Export keyboard layouts as SVG, PNG or terminal previews",
	Long: `keyviz-export draws a keyboard configuration from the bundled layout
table (or a YAML table given with --layouts) without starting the viewer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command.
func Execute() error {
	// Errors are printed by the printer package.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&layoutsPath, "layouts", "", "extra YAML layout table")
}

// addDrawFlags registers the flags that pick and style a scene.
func addDrawFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&keyboardName, "keyboard", "k", app.DefaultKeyboard, "keyboard name")
	cmd.Flags().StringVarP(&configuration, "configuration", "c", app.DefaultConfiguration, "configuration name")
	cmd.Flags().StringVarP(&keymapName, "keymap", "m", "", "label keymap (optional)")
	cmd.Flags().StringVar(&themeName, "theme", "", "colour theme")
	cmd.Flags().Float64Var(&targetWidth, "width", render.DefaultTargetWidth, "drawing width in pixels")
}

func loadRegistry() (*keyboard.Registry, error) {
	registry, err := app.LoadRegistry(layoutsPath)
	if err != nil {
		return nil, printer.Error("Failed to load layouts", err, []string{
			"Check the file given with --layouts",
		})
	}
	return registry, nil
}

// drawScene resolves and draws the selected keyboard configuration.
func drawScene() (*render.Scene, error) {
	registry, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	store := state.NewStore(registry, render.Options{TargetWidth: targetWidth, Theme: themeName})
	session := state.Session{Keyboard: keyboardName, Configuration: configuration, Keymap: keymapName}
	if err := store.Open(session); err != nil {
		return nil, explain(err, registry)
	}
	return store.Snapshot().Scene, nil
}

func explain(err error, registry *keyboard.Registry) error {
	switch {
	case errors.Is(err, keyboard.ErrNotFound):
		suggestions := []string{"Run 'keyviz-export list' to see what is available"}
		if registry == nil {
			return printer.Error("Not found", err, suggestions)
		}
		if kb, kbErr := registry.Keyboard(keyboardName); kbErr == nil {
			suggestions = append(suggestions, fmt.Sprintf("Configurations of %s: %v", kb.Name, kb.ConfigurationNames()))
		}
		return printer.Error("Not found", err, suggestions)
	case errors.Is(err, keyboard.ErrInvalid):
		return printer.Error("Invalid input", err, nil)
	default:
		return printer.Error("Drawing failed", err, nil)
	}
}

// writeOutput writes to --output, or to the command's stdout when it is
// empty or "-".
func writeOutput(cmd *cobra.Command, write func(w io.Writer) error) error {
	if outputPath == "" || outputPath == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return printer.Error("Cannot create output file", err, nil)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return printer.Error("Export failed", err, nil)
	}
	if err := f.Close(); err != nil {
		return printer.Error("Export failed", err, nil)
	}
	printer.Success("wrote %s\n", outputPath)
	return nil
}
