package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"aimea/internal/logging"
)

// Watcher reloads the config file on change and delivers the result on C.
// Editors replace files rather than writing in place, so the parent directory
// is watched and events are filtered by name.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
	C    chan Config
	done chan struct{}
}

// Watch starts watching the config file at path.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config dir: %w", err)
	}

	w := &Watcher{
		path: path,
		fsw:  fsw,
		C:    make(chan Config, 1),
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				logging.Boot("config reload failed: %v", err)
				continue
			}
			// keep only the latest reload if the consumer is slow
			select {
			case w.C <- cfg:
			default:
				select {
				case <-w.C:
				default:
				}
				w.C <- cfg
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Boot("config watcher error: %v", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
