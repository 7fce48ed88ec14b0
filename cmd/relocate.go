package cmd

import (
	"ferry/internal/model"
	"ferry/internal/relocate"
	"strings"

	"github.com/spf13/cobra"
)

var (
	mergeMove bool
	cloneInto bool
	moveInto  bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <src> <dst>",
	Short: "Merge the contents of one directory into another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []relocate.Option
		if mergeMove {
			opts = append(opts, relocate.Moving())
		}

		res, err := engine.Merge(args[0], args[1], opts...)
		return report(model.OpMerge, args[0], args[1], res, err)
	},
}

var cloneCmd = &cobra.Command{
	Use:   "clone <src> <dst>",
	Short: "Copy a file or directory, merging into an existing directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []relocate.Option
		if cloneInto {
			opts = append(opts, relocate.Into())
		}

		res, err := engine.Clone(args[0], args[1], opts...)
		return report(model.OpClone, args[0], args[1], res, err)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <src> <dst>",
	Short: "Move a file or directory, merging into an existing directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []relocate.Option
		if moveInto {
			opts = append(opts, relocate.Into())
		}

		res, err := engine.Move(args[0], args[1], opts...)
		return report(model.OpMove, args[0], args[1], res, err)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <path>...",
	Aliases: []string{"rm"},
	Short:   "Delete files and directories",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := engine.Delete(args...)
		return report(model.OpDelete, strings.Join(args, ","), "", res, nil)
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory and its parents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := engine.MakeDir(args[0])
		if err != nil {
			return err
		}
		if !created {
			_, _ = pathColor.Println(args[0], "already exists")
		}
		return nil
	},
}

var touchClear bool

var touchCmd = &cobra.Command{
	Use:   "touch <path>",
	Short: "Create an empty file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := engine.Touch(args[0], touchClear)
		return err
	},
}

func init() {
	mergeCmd.Flags().BoolVarP(&mergeMove, "move", "m", false, "move files instead of copying")
	cloneCmd.Flags().BoolVarP(&cloneInto, "into", "i", false, "place src inside dst")
	moveCmd.Flags().BoolVarP(&moveInto, "into", "i", false, "place src inside dst")
	touchCmd.Flags().BoolVar(&touchClear, "clear", false, "truncate an existing file")

	rootCmd.AddCommand(mergeCmd, cloneCmd, moveCmd, deleteCmd, mkdirCmd, touchCmd)
}
