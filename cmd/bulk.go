package cmd

import (
	"encoding/hex"
	"ferry/internal/bulk"
	"ferry/internal/fsys"
	"ferry/internal/model"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var (
	renameRegex  string
	replaceRegex bool
	replaceHex   bool
)

var renameCmd = &cobra.Command{
	Use:   "rename <name> <path>...",
	Short: "Give paths a new base name, optionally through a regexp",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pattern *regexp.Regexp
		if renameRegex != "" {
			var err error
			pattern, err = regexp.Compile(renameRegex)
			if err != nil {
				return fmt.Errorf("failed to compile pattern: %w", err)
			}
		}

		renamed, res, err := bulk.Rename(fsys.NewOS(), args[1:], args[0], pattern)
		if err == nil {
			for i, path := range renamed {
				if path != args[1+i] {
					fmt.Printf("%s -> ", args[1+i])
					_, _ = pathColor.Println(path)
				}
			}
		}
		return report(model.OpRename, strings.Join(args[1:], ","), args[0], res, err)
	},
}

var replaceCmd = &cobra.Command{
	Use:   "replace <old> <new> <path>...",
	Short: "Replace content in files",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := replacer(args[0], args[1])
		if err != nil {
			return err
		}

		res := bulk.Replace(fsys.NewOS(), args[2:], r)
		return report(model.OpReplace, strings.Join(args[2:], ","), "", res, nil)
	},
}

func replacer(old, new string) (bulk.Replacer, error) {
	switch {
	case replaceRegex && replaceHex:
		return bulk.Replacer{}, fmt.Errorf("--regex and --hex are exclusive")
	case replaceRegex:
		pattern, err := regexp.Compile(old)
		if err != nil {
			return bulk.Replacer{}, fmt.Errorf("failed to compile pattern: %w", err)
		}
		return bulk.Regexp(pattern, new), nil
	case replaceHex:
		oldBytes, err := hex.DecodeString(old)
		if err != nil {
			return bulk.Replacer{}, fmt.Errorf("failed to decode old: %w", err)
		}
		newBytes, err := hex.DecodeString(new)
		if err != nil {
			return bulk.Replacer{}, fmt.Errorf("failed to decode new: %w", err)
		}
		return bulk.Bytes(oldBytes, newBytes), nil
	default:
		return bulk.String(old, new), nil
	}
}

func init() {
	renameCmd.Flags().StringVarP(&renameRegex, "regex", "r", "", "only rename names fully matching this pattern")
	replaceCmd.Flags().BoolVarP(&replaceRegex, "regex", "r", false, "treat old as a regexp")
	replaceCmd.Flags().BoolVarP(&replaceHex, "hex", "x", false, "old and new are hex encoded bytes")

	rootCmd.AddCommand(renameCmd, replaceCmd)
}
