// Package termsize reports terminal dimensions and watches them for changes.
package termsize

import (
	"context"
	"os"
	"time"

	"golang.org/x/term"
)

// Cell dimensions used to map terminal cells onto chart pixels.
const (
	CellWidth    = 8.0
	CellHeight   = 16.0
	PollInterval = 250 * time.Millisecond
)

// Size is a terminal size in character cells.
type Size struct {
	Cols int
	Rows int
}

// Pixels maps the size onto a pixel viewport.
func (s Size) Pixels() (width, height float64) {
	return float64(s.Cols) * CellWidth, float64(s.Rows) * CellHeight
}

// GetSizeFunc matches term.GetSize.
type GetSizeFunc func(fd int) (width, height int, err error)

// Watcher polls a file descriptor for size changes.
type Watcher struct {
	fd       int
	interval time.Duration
	getSize  GetSizeFunc
}

// NewWatcher watches stdout with the default poll interval.
func NewWatcher() *Watcher {
	return &Watcher{fd: int(os.Stdout.Fd()), interval: PollInterval, getSize: term.GetSize}
}

// NewWatcherWith builds a watcher around a custom size source.
func NewWatcherWith(fd int, interval time.Duration, getSize GetSizeFunc) *Watcher {
	if interval <= 0 {
		interval = PollInterval
	}
	return &Watcher{fd: fd, interval: interval, getSize: getSize}
}

// Current returns the size now, or false when fd is not a terminal.
func (w *Watcher) Current() (Size, bool) {
	cols, rows, err := w.getSize(w.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return Size{}, false
	}
	return Size{Cols: cols, Rows: rows}, true
}

// Watch sends the current size and then every change until ctx is done.
// The channel is closed when watching stops.
func (w *Watcher) Watch(ctx context.Context) <-chan Size {
	out := make(chan Size, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		var last Size
		for {
			if s, ok := w.Current(); ok && s != last {
				last = s
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return out
}

// Width returns the terminal width of stdout, or fallback when unknown.
func Width(fallback int) int {
	if s, ok := NewWatcher().Current(); ok {
		return s.Cols
	}
	return fallback
}
