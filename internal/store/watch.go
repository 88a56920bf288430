package store

import (
	"github.com/fsnotify/fsnotify"

	"promptctl/internal/system"
)

// Watch fires onChange whenever a prompt file is created, written,
// removed or renamed in any of the data directories. The returned stop
// function closes the watcher.
func (s *Store) Watch(onChange func()) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := []string{s.promptsDir, s.archiveDir, s.foldersDir}
	if folders, ferr := s.Folders(); ferr == nil {
		for _, f := range folders {
			dirs = append(dirs, s.foldersDir+"/"+f)
		}
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange()
				}
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				system.Logger.Warn("watcher error", "err", werr)
			}
		}
	}()
	return func() { w.Close() }, nil
}
