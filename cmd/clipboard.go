package cmd

import (
	"ferry/internal/clipboard"
	"ferry/internal/model"
	"ferry/internal/repository"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	markAppend bool
	pasteRoot  string
)

func newBoard() *clipboard.Board {
	return clipboard.New(repository.NewMarkRepository(), engine)
}

var cutCmd = &cobra.Command{
	Use:   "cut <path>...",
	Short: "Mark paths to be moved by the next paste",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		board := newBoard()
		if markAppend {
			return board.AppendCut(args...)
		}
		return board.Cut(args...)
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <path>...",
	Short: "Mark paths to be cloned by the next paste",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		board := newBoard()
		if markAppend {
			return board.AppendCopy(args...)
		}
		return board.Copy(args...)
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark",
	Short: "Clear all marks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newBoard().Unmark()
	},
}

var marksCmd = &cobra.Command{
	Use:   "marks",
	Short: "List marked paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		marks, err := newBoard().Marks()
		if err != nil {
			return err
		}

		if len(marks) == 0 {
			fmt.Println("nothing marked")
			return nil
		}

		for _, m := range marks {
			fmt.Printf("%-5s ", m.Kind)
			_, _ = pathColor.Println(m.Path)
		}
		return nil
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste <dst>",
	Short: "Move cut paths and clone copied paths into dst",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newBoard().Paste(args[0], pasteRoot)
		return report(model.OpPaste, pasteRoot, args[0], res, err)
	},
}

func init() {
	cutCmd.Flags().BoolVarP(&markAppend, "append", "a", false, "keep existing marks")
	copyCmd.Flags().BoolVarP(&markAppend, "append", "a", false, "keep existing marks")
	pasteCmd.Flags().StringVar(&pasteRoot, "root", "", "keep paths relative to this directory")

	rootCmd.AddCommand(cutCmd, copyCmd, unmarkCmd, marksCmd, pasteCmd)
}
