package cmd

import (
	"ferry/internal/fsys"
	"fmt"

	"github.com/spf13/cobra"
)

var ftypeCmd = &cobra.Command{
	Use:   "ftype <path>...",
	Short: "Show what lives at each path",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := fsys.NewOS()
		for _, path := range args {
			t, err := f.FType(path)
			if err != nil {
				return err
			}

			link := ""
			if t.Symlink {
				link = " (symlink)"
			}
			_, _ = pathColor.Print(path)
			fmt.Printf(": %s%s %s\n", t.Kind, link, t.MIME)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ftypeCmd)
}
