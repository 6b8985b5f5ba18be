// Package browser backs the asset sidebar: it lists model files in a
// directory and watches for changes.
package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/rika-tools/vertexa/loader"
)

// Entry is one row of the directory listing.
type Entry struct {
	Name   string
	Path   string
	Dir    bool
	Format loader.Format
}

// List returns subdirectories and supported model files, directories
// first, each group sorted case-insensitively.
func List(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs, files []Entry
	for _, it := range items {
		name := it.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if it.IsDir() {
			dirs = append(dirs, Entry{Name: name, Path: filepath.Join(dir, name), Dir: true})
			continue
		}
		if f := loader.Detect(name); f != loader.FormatUnknown {
			files = append(files, Entry{Name: name, Path: filepath.Join(dir, name), Format: f})
		}
	}
	byName := func(entries []Entry) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
		}
	}
	sort.Slice(dirs, byName(dirs))
	sort.Slice(files, byName(files))
	return append(dirs, files...), nil
}

// Watcher reports changes in the browsed directory.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch calls onChange whenever dir gains, loses or rewrites an entry
// that the listing would show. onChange runs on the watcher goroutine.
func Watch(dir string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	go w.run(onChange)
	return w, nil
}

func (w *Watcher) run(onChange func()) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			onChange()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	// directory events have no extension to check; pass everything that
	// is not an unsupported file
	if loader.Detect(name) != loader.FormatUnknown {
		return true
	}
	info, err := os.Stat(ev.Name)
	if err != nil {
		// removed entries cannot be stat'ed, let the listing refresh
		return true
	}
	return info.IsDir()
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
