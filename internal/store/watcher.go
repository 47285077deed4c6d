package store

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reindexes the store when its sqlite file changes on disk, which
// happens when another process writes the database. Events are debounced
// because sqlite touches the file several times per transaction.
type Watcher struct {
	store        *Store
	watcher      *fsnotify.Watcher
	debounceTime time.Duration

	mu      sync.Mutex
	pending bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the store's database file.
func NewWatcher(s *Store) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		store:        s,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Start begins watching. The containing directory is watched rather than
// the file itself; sqlite swaps files during WAL checkpoints and a direct
// file watch would be dropped on the first swap.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.wg.Add(2)
	go w.eventLoop()
	go w.debounceLoop()
	return nil
}

// Stop stops the watcher and waits for its goroutines to exit.
func (w *Watcher) Stop() error {
	w.cancel()
	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	base := filepath.Base(w.store.Path())
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// The WAL and journal siblings count as database activity.
			name := filepath.Base(event.Name)
			if name != base && name != base+"-wal" && name != base+"-journal" {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.mu.Lock()
				w.pending = true
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounceTime)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			fire := w.pending
			w.pending = false
			w.mu.Unlock()

			if !fire {
				continue
			}
			if err := w.store.Reindex(w.ctx); err != nil {
				log.Printf("reindex after change failed: %v", err)
			}
		}
	}
}
