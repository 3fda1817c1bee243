package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rook-computer/keyviz/internal/preview"
)

var (
	previewColumns int
	previewRows    int
	previewPress   []string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a configuration as a coloured grid in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := drawScene()
		if err != nil {
			return err
		}
		for _, id := range previewPress {
			if err := scene.PointerRelease(id); err != nil {
				return explain(err, nil)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), preview.Render(scene, preview.Options{
			ColumnsPerUnit: previewColumns,
			RowsPerUnit:    previewRows,
		}))
		return nil
	},
}

func init() {
	addDrawFlags(previewCmd)
	previewCmd.Flags().IntVar(&previewColumns, "columns", preview.DefaultColumnsPerUnit, "characters per key width")
	previewCmd.Flags().IntVar(&previewRows, "rows", preview.DefaultRowsPerUnit, "lines per key height")
	previewCmd.Flags().StringSliceVar(&previewPress, "press", nil, "key ids to show highlighted")
	rootCmd.AddCommand(previewCmd)
}
