package cmd

import (
	"ferry/internal/logger"
	"ferry/internal/model"
	"ferry/internal/relocate"
	"ferry/internal/repository"
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	pathColor = color.New(color.FgCyan)
)

func printError(err error) {
	_, _ = failColor.Fprintln(os.Stderr, "error:", err)
}

// report records the operation and prints its outcome. The hard error, if
// any, is returned so the command exits non-zero.
func report(op model.Operation, src, dst string, res *relocate.Result, err error) error {
	failed := 0
	if res != nil {
		failed = len(res.Failures)
	}

	if saveErr := repository.NewHistoryRepository().Save(op, src, dst, failed, err); saveErr != nil {
		logger.Log.Warn("failed to save history",
			zap.Error(saveErr))
	}

	if err != nil {
		return err
	}

	if res.OK() {
		_, _ = okColor.Printf("%s ok", op)
		if res.Path != "" {
			fmt.Print(": ")
			_, _ = pathColor.Print(res.Path)
		}
		fmt.Println()
		return nil
	}

	_, _ = failColor.Printf("%s finished with %d failure(s)\n", op, failed)
	for _, f := range res.Failures {
		kind := "file"
		if f.IsDir {
			kind = "dir "
		}
		fmt.Printf("  %s ", kind)
		_, _ = pathColor.Print(f.Path)
		fmt.Printf(": %v\n", f.Err)
	}

	return fmt.Errorf("%d failure(s)", failed)
}
