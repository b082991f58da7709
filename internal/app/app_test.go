package app

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gomission/gomission/internal/backend"
	"github.com/gomission/gomission/internal/testutil"
	"github.com/muesli/termenv"
)

const waitFor = 3 * time.Second

// screen collects program output written from the renderer goroutine.
type screen struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *screen) Contains(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Contains(s.buf.String(), text)
}

func TestRunWithFetchFailureShowsPopupAndQuits(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	svc := testutil.NewFakeService(testutil.Torrents(2)...)
	svc.SetStatsErr(errors.New("daemon unreachable"))

	keys, typist := io.Pipe()
	t.Cleanup(func() { _ = typist.Close() })
	out := &screen{}

	cfg := Config{Intervals: backend.Intervals{Torrents: time.Hour, Stats: time.Hour, FreeSpace: time.Hour}}
	done := make(chan error, 1)
	go func() {
		done <- RunWith(svc, cfg, tea.WithInput(keys), tea.WithOutput(out), tea.WithoutSignalHandler())
	}()

	testutil.Eventually(t, waitFor, func() bool { return out.Contains("daemon unreachable") },
		"expected the fetch error popup to be rendered")

	if _, err := typist.Write([]byte("q")); err != nil {
		t.Fatalf("type q: %v", err)
	}
	select {
	case err := <-done:
		t.Fatalf("expected the first q to close only the popup, program exited with %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	if _, err := typist.Write([]byte("q")); err != nil {
		t.Fatalf("type q: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(waitFor):
		t.Fatalf("expected the second q to quit")
	}
}
