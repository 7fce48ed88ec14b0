package cmd

import (
	"ferry/internal/config"
	"ferry/internal/db"
	"ferry/internal/fsys"
	"ferry/internal/logger"
	"ferry/internal/relocate"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	engine *relocate.Engine
	debug  bool
	force  bool
)

var rootCmd = &cobra.Command{
	Use:           "ferry",
	Short:         "Merge, clone and move directory trees",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger.Init(debug)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		engine = relocate.New(fsys.NewOS(), fsys.UUIDNamer{}, cfg.Force || force)

		clientCmds := map[string]bool{
			"status": true, "stop": true,
			"ftype": true, "scan": true, "glob": true,
		}
		if !clientCmds[cmd.Name()] {
			if err := db.Init(cfg.DBPath); err != nil {
				return err
			}
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func daemonURL(path string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", cfg.DaemonPort, path)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "Replace whatever is in the way")
}
