package cmd

import (
	"encoding/json"
	"ferry/internal/model"
	"ferry/internal/repository"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View daemon status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			StartedAt time.Time             `json:"started_at"`
			Force     bool                  `json:"force"`
			Inboxes   []model.InboxSnapshot `json:"inboxes"`
			History   repository.Stats      `json:"history"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		fmt.Printf("uptime: %s  force: %t  operations: %d (%d with failures)\n",
			time.Since(result.StartedAt).Round(time.Second),
			result.Force,
			result.History.Total,
			result.History.Failed)

		if len(result.Inboxes) == 0 {
			fmt.Println("no active inboxes")
			return nil
		}

		fmt.Printf("%-6s %-30s %-30s %-8s %-8s %s\n",
			"INBOX", "SRC", "DST", "MOVED", "FAILED", "LAST MOVE")

		for _, snap := range result.Inboxes {
			lastMove := "-"
			if snap.LastMove != nil {
				lastMove = snap.LastMove.Format("2006-01-02 15:04:05")
			}

			fmt.Printf("%-6d %-30s %-30s %-8d %-8d %s\n",
				snap.ID, snap.Src, snap.Dst, snap.Moved, snap.Failed, lastMove)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
