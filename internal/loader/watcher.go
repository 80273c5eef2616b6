package loader

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ExportWatcher monitors a directory for freshly written CSV exports so an
// analysis run can be kicked off whenever a new history lands.
type ExportWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
}

// NewExportWatcher creates a watcher. With no extensions it watches .csv
// files.
func NewExportWatcher(extensions []string) (*ExportWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = []string{".csv"}
	}

	return &ExportWatcher{
		watcher:    w,
		extensions: extensions,
	}, nil
}

// Watch starts monitoring the directory and emits the path of every export
// that is created or modified there. Watch errors arrive on the second
// channel so callers can tell a dead watcher from a quiet directory. Both
// channels close when ctx is done or the watcher is stopped.
func (w *ExportWatcher) Watch(ctx context.Context, dir string) (<-chan string, <-chan error, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, nil, err
	}

	exports := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(exports)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}

				select {
				case exports <- event.Name:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return exports, errs, nil
}

// Stop stops the watcher.
func (w *ExportWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *ExportWatcher) isWatchedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
