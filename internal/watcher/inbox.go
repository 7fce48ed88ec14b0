package watcher

import (
	"ferry/internal/fsys"
	"ferry/internal/logger"
	"ferry/internal/model"
	"ferry/internal/relocate"
	"ferry/internal/repository"
	"fmt"

	"go.uber.org/zap"
)

// Delivery is the outcome of moving one inbox entry.
type Delivery struct {
	Entry  string
	Result *relocate.Result
	Err    error
}

type Inbox struct {
	src     string
	dst     string
	engine  *relocate.Engine
	history *repository.HistoryRepository
}

// NewInbox prepares an inbox that moves entries of src into dst. dst is
// created if needed. history may be nil.
func NewInbox(src, dst string, engine *relocate.Engine, history *repository.HistoryRepository) (*Inbox, error) {
	absSrc := fsys.Abs(src)
	absDst := fsys.Abs(dst)

	if absSrc == absDst {
		return nil, fmt.Errorf("inbox and destination are the same directory: %s", absSrc)
	}
	if _, inside := fsys.Rel(absDst, absSrc); inside {
		return nil, fmt.Errorf("destination %s is inside inbox %s", absDst, absSrc)
	}

	if _, err := engine.MakeDir(absDst); err != nil {
		return nil, fmt.Errorf("failed to create dst dir: %w", err)
	}

	return &Inbox{
		src:     absSrc,
		dst:     absDst,
		engine:  engine,
		history: history,
	}, nil
}

// Run moves each entry named by inCh into dst. Events for entries that are
// already gone are skipped.
func (i *Inbox) Run(inCh <-chan model.FileEvent) <-chan Delivery {
	outCh := make(chan Delivery, cap(inCh))

	go func() {
		defer close(outCh)

		for event := range inCh {
			d, ok := i.handle(event)
			if !ok {
				continue
			}

			if d.Err != nil {
				logger.Log.Error("inbox move failed",
					zap.String("entry", d.Entry),
					zap.Error(d.Err))
			} else {
				logger.Log.Info("inbox entry moved",
					zap.String("entry", d.Entry),
					zap.String("dst", d.Result.Path),
					zap.Int("failed", len(d.Result.Failures)))
			}

			outCh <- d
		}
	}()

	return outCh
}

func (i *Inbox) handle(event model.FileEvent) (Delivery, bool) {
	// Already moved by an earlier event for the same entry.
	if !i.engine.FS().Exists(event.Path) {
		return Delivery{}, false
	}

	d := Delivery{Entry: event.Path}
	d.Result, d.Err = i.engine.Move(event.Path, i.dst, relocate.Into())

	if i.history != nil {
		failed := 0
		if d.Result != nil {
			failed = len(d.Result.Failures)
		}
		if err := i.history.Save(model.OpInbox, event.Path, i.dst, failed, d.Err); err != nil {
			logger.Log.Warn("failed to save history",
				zap.Error(err))
		}
	}

	return d, true
}
