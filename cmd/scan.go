package cmd

import (
	"ferry/internal/scan"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	scanFlat      bool
	scanNoIgnore  bool
	globDirsOnly  bool
	globFilesOnly bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "List directories and files under root",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		var filter scan.Filter
		if !scanNoIgnore {
			filter = scan.Ignore(cfg.IgnoreList)
		}

		dirs, files, err := scan.Scan(root, filter, !scanFlat)
		if err != nil {
			return err
		}

		for _, d := range dirs {
			_, _ = pathColor.Println(d + "/")
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	},
}

var globCmd = &cobra.Command{
	Use:   "glob <root> [pattern]",
	Short: "List paths under root matching a ** pattern",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := scan.DefaultPattern
		if len(args) == 2 {
			pattern = args[1]
		}

		matches, err := scan.Glob(args[0], pattern, !globFilesOnly, !globDirsOnly)
		if err != nil {
			return err
		}

		for _, m := range matches {
			fmt.Println(m)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanFlat, "flat", false, "only list direct children")
	scanCmd.Flags().BoolVar(&scanNoIgnore, "all", false, "do not apply the ignore list")
	globCmd.Flags().BoolVarP(&globDirsOnly, "dirs", "d", false, "only directories")
	globCmd.Flags().BoolVarP(&globFilesOnly, "files", "F", false, "only files")

	rootCmd.AddCommand(scanCmd, globCmd)
}
