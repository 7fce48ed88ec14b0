package cmd

import (
	"ferry/internal/archive"
	"ferry/internal/fsys"
	"ferry/internal/model"
	"ferry/internal/relocate"

	"github.com/spf13/cobra"
)

var (
	archiveFormat string
	archiveInto   bool
	archiveTemp   bool
)

var archiveCmd = &cobra.Command{
	Use:   "archive <src> <dst>",
	Short: "Pack a directory into an archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := archiveFormat
		if name == "" {
			name = cfg.ArchiveFormat
		}
		format, err := archive.ParseFormat(name)
		if err != nil {
			return err
		}

		out, err := archive.New(engine, fsys.UUIDNamer{}).Archive(args[0], args[1], format, archiveInto, archiveTemp)
		res := relocate.NewResult(out)
		return report(model.OpArchive, args[0], args[1], res, err)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <archive> <dst>",
	Short: "Unpack an archive, merging into dst",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := archive.New(engine, fsys.UUIDNamer{}).Extract(args[0], args[1], archiveTemp)
		return report(model.OpExtract, args[0], args[1], res, err)
	},
}

func init() {
	archiveCmd.Flags().StringVar(&archiveFormat, "format", "", "zip, tar, tar.gz, tar.zst or jar (default from config)")
	archiveCmd.Flags().BoolVarP(&archiveInto, "into", "i", false, "place the archive inside dst")
	archiveCmd.Flags().BoolVar(&archiveTemp, "temp", false, "delete src afterwards")
	extractCmd.Flags().BoolVar(&archiveTemp, "temp", false, "delete the archive afterwards")

	rootCmd.AddCommand(archiveCmd, extractCmd)
}
