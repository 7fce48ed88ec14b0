package cmd

import (
	"ferry/internal/model"
	"ferry/internal/repository"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyN      int
	historyFailed bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		histRepo := repository.NewHistoryRepository()

		var (
			histories []model.History
			err       error
		)
		if historyFailed {
			histories, err = histRepo.GetFailed()
		} else {
			histories, err = histRepo.GetRecent(historyN)
		}
		if err != nil {
			return err
		}

		if len(histories) == 0 {
			fmt.Println("no history yet")
			return nil
		}

		for _, h := range histories {
			mark := okColor.Sprint("✓")
			switch h.Status {
			case model.StatusPartial:
				mark = failColor.Sprintf("~%d", h.Failed)
			case model.StatusFailed:
				mark = failColor.Sprint("✗")
			}

			fmt.Printf("%s [%s] %-8s %s",
				mark,
				h.FinishedAt.Format("2006-01-02 15:04:05"),
				h.Operation,
				h.SrcPath,
			)
			if h.DstPath != "" {
				fmt.Printf(" -> %s", h.DstPath)
			}
			if h.ErrMsg != "" {
				fmt.Printf(" (%s)", h.ErrMsg)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of history entries to show")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "only show operations with failures")
	rootCmd.AddCommand(historyCmd)
}
