package pipeline

import (
	"ferry/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func collect(ch <-chan model.FileEvent) []model.FileEvent {
	var out []model.FileEvent
	for e := range ch {
		out = append(out, e)
	}
	return out
}

func TestIgnored(t *testing.T) {
	list := []string{".git", "*.tmp", ".DS_Store"}

	assert.True(t, Ignored("/inbox/.git/HEAD", list))
	assert.True(t, Ignored("/inbox/report.tmp", list))
	assert.True(t, Ignored("/inbox/sub/.DS_Store", list))
	assert.False(t, Ignored("/inbox/report.txt", list))
	assert.False(t, Ignored("/inbox/report.txt", nil))
}

func TestDebounceCollapsesBursts(t *testing.T) {
	in := make(chan model.FileEvent, 10)
	out := Debounce(in, 50*time.Millisecond)

	in <- model.FileEvent{Type: model.EventCreate, Path: "/a"}
	in <- model.FileEvent{Type: model.EventWrite, Path: "/a"}
	in <- model.FileEvent{Type: model.EventWrite, Path: "/a"}
	in <- model.FileEvent{Type: model.EventCreate, Path: "/b"}

	select {
	case <-out:
		t.Fatal("event emitted before delay")
	case <-time.After(10 * time.Millisecond):
	}

	close(in)
	got := collect(out)
	assert.Len(t, got, 2)

	byPath := map[string]model.EventType{}
	for _, e := range got {
		byPath[e.Path] = e.Type
	}
	assert.Equal(t, model.EventWrite, byPath["/a"])
	assert.Equal(t, model.EventCreate, byPath["/b"])
}

func TestDebounceEmitsAfterQuiet(t *testing.T) {
	in := make(chan model.FileEvent, 1)
	out := Debounce(in, 10*time.Millisecond)
	defer close(in)

	in <- model.FileEvent{Type: model.EventCreate, Path: "/a"}

	select {
	case e := <-out:
		assert.Equal(t, "/a", e.Path)
	case <-time.After(time.Second):
		t.Fatal("event not emitted")
	}
}
