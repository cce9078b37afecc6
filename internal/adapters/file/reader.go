package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of file events to settle.
const DefaultDebounce = 100 * time.Millisecond

// Reader implements ports.GrammarReader and ports.Watchable on the local filesystem.
type Reader struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewReader creates a Reader with the default debounce window.
func NewReader() *Reader {
	return &Reader{Debounce: DefaultDebounce}
}

// ReadGrammar returns the content of the file at path.
func (r *Reader) ReadGrammar(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read grammar %s: %w", path, err)
	}
	return string(data), nil
}

// Watch emits the file content every time it settles on a new value.
// The parent directory is watched rather than the file itself so that editors replacing
// the file through a rename keep being followed. Identical content is not re-emitted.
func (r *Reader) Watch(ctx context.Context, path string) (<-chan string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	debounce := r.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	last, _ := r.ReadGrammar(ctx, abs)
	out := make(chan string, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				timerC = timer.C

			case <-timerC:
				timerC = nil
				text, err := r.ReadGrammar(ctx, abs)
				if err != nil {
					// Mid-rename the file may be briefly missing; the Create that follows retriggers.
					logger.Debug("grammar unreadable after change", "path", abs, "err", err)
					continue
				}
				if text == last {
					continue
				}
				last = text
				select {
				case out <- text:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("grammar watcher error", "path", abs, "err", err)
			}
		}
	}()

	return out, nil
}
