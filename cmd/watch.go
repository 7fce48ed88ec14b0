package cmd

import (
	"ferry/internal/logger"
	"ferry/internal/repository"
	"ferry/internal/watcher"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch <src> <dst>",
	Short: "Move everything that appears in src into dst",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		manager := watcher.NewManager(cfg, engine, repository.NewHistoryRepository())
		snap, err := manager.Start(args[0], args[1])
		if err != nil {
			return err
		}
		defer manager.StopAll()

		logger.Log.Info("inbox ready",
			zap.String("src", snap.Src),
			zap.String("dst", snap.Dst))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		logger.Log.Info("shutting down",
			zap.String("signal", sig.String()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
