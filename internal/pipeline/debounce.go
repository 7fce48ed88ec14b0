package pipeline

import (
	"ferry/internal/model"
	"sync"
	"time"
)

// Debounce holds each event until no newer event for the same path has
// arrived for delay, then emits the latest one.
func Debounce(inCh <-chan model.FileEvent, delay time.Duration) <-chan model.FileEvent {
	outCh := make(chan model.FileEvent, cap(inCh))

	go func() {
		var (
			mu     sync.Mutex
			wg     sync.WaitGroup
			timers = make(map[string]*time.Timer)
			events = make(map[string]model.FileEvent)
		)

		fire := func(path string) {
			defer wg.Done()

			mu.Lock()
			event, ok := events[path]
			delete(timers, path)
			delete(events, path)
			mu.Unlock()

			if ok {
				outCh <- event
			}
		}

		for event := range inCh {
			path := event.Path

			mu.Lock()
			if t, ok := timers[path]; ok && t.Stop() {
				wg.Done()
			}
			events[path] = event
			wg.Add(1)
			timers[path] = time.AfterFunc(delay, func() { fire(path) })
			mu.Unlock()
		}

		mu.Lock()
		for path, t := range timers {
			if t.Stop() {
				wg.Done()
				outCh <- events[path]
			}
		}
		mu.Unlock()

		wg.Wait()
		close(outCh)
	}()

	return outCh
}
