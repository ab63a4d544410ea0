package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var planFlags commonFlags

func init() {
	planFlags.register(planCmd)
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan <chordmap.json>",
	Short: "Prints the resolved block stream as JSON",
	Long:  `Prints the resolved block stream as JSON without rendering any MIDI, for inspecting what each part would play.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, _, blocks, err := planFlags.loadAll(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(blocks)
	},
}
