package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rook-computer/keyviz/internal/render"
)

var svgCmd = &cobra.Command{
	Use:   "svg",
	Short: "Draw a configuration as an SVG document",
	Example: `  keyviz-export svg -c "Long Thumbs" -m QWERTY -o ergodox.svg
  keyviz-export svg --theme solarized-dark > ergodox.svg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := drawScene()
		if err != nil {
			return err
		}
		return writeOutput(cmd, func(w io.Writer) error { return render.EncodeSVG(w, scene) })
	},
}

var pngCmd = &cobra.Command{
	Use:   "png",
	Short: "Draw a configuration as a PNG image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := drawScene()
		if err != nil {
			return err
		}
		rasterizer := render.NewRasterizer()
		return writeOutput(cmd, func(w io.Writer) error { return rasterizer.EncodePNG(w, scene) })
	},
}

func init() {
	for _, cmd := range []*cobra.Command{svgCmd, pngCmd} {
		addDrawFlags(cmd)
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
		rootCmd.AddCommand(cmd)
	}
}
