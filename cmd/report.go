package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinoshitayoshihiro/haru/render"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <file.mid>",
	Short: "Reports on a rendered MIDI file",
	Long:  `Reads a rendered MIDI file back and prints per-track note counts, for sanity-checking output.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := render.ReadSMF(args[0])
		if err != nil {
			return err
		}
		stats := render.Stats(s)
		for _, t := range stats.Tracks {
			fmt.Printf("%-12s notes=%-6d lastTicks=%d\n", t.Name, t.Notes, t.LastTicks)
		}
		fmt.Printf("total notes: %d\n", stats.Notes)
		return nil
	},
}
