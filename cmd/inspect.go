package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinoshitayoshihiro/haru/rhythm"
)

var inspectFlags struct {
	library string
	list    bool
	show    string
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFlags.library, "rhythm-library", "data/rhythm_library.yml", "rhythm pattern library file")
	inspectCmd.Flags().BoolVar(&inspectFlags.list, "list", false, "list pattern keys per family")
	inspectCmd.Flags().StringVar(&inspectFlags.show, "show", "", "print one resolved pattern, family/key")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects the rhythm library",
	Long:  `Inspects the rhythm library`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := rhythm.Load(inspectFlags.library)
		if err != nil {
			return err
		}
		if inspectFlags.show != "" {
			return showPattern(lib, inspectFlags.show)
		}
		for _, fam := range lib.Families() {
			fmt.Printf("%s:\n", fam)
			for _, key := range lib.Keys(fam) {
				fmt.Printf("  %s\n", key)
			}
		}
		return nil
	},
}

func showPattern(lib *rhythm.Library, spec string) error {
	i := strings.IndexByte(spec, '/')
	if i <= 0 || i == len(spec)-1 {
		return fmt.Errorf("--show wants family/key, got %q", spec)
	}
	fam, key := spec[:i], spec[i+1:]
	pat, ok := lib.Lookup(fam, key)
	if !ok {
		return &rhythm.NotFoundError{Family: fam, Key: key}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pat)
}
