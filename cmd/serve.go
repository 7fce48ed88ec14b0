package cmd

import (
	"context"
	"ferry/internal/clipboard"
	"ferry/internal/logger"
	"ferry/internal/repository"
	"ferry/internal/server"
	"ferry/internal/watcher"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		port := cfg.DaemonPort
		if servePort != 0 {
			port = servePort
		}

		histRepo := repository.NewHistoryRepository()
		board := clipboard.New(repository.NewMarkRepository(), engine)
		inboxes := watcher.NewManager(cfg, engine, histRepo)

		srv := server.NewServer(engine, board, inboxes, port)
		srv.Start()

		logger.Log.Info("ferry daemon started",
			zap.Int("port", port),
			zap.Bool("force", engine.ForceDefault()))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logger.Log.Info("shutting down",
				zap.String("signal", sig.String()))
		case <-srv.StopCh():
			logger.Log.Info("stop requested via API")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
