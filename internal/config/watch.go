package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reads path whenever it is written or replaced and sends the
// result on configs. Read failures go to errs. The watcher stops when done
// is closed.
func Watch(path string, configs chan<- *Config, errs chan<- error, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("can't watch %s: %w", path, err)
	}
	go func() {
		// ignore close error
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// editors often replace the file, which shows up as a rename
				if event.Op&(fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if event.Op&fsnotify.Rename != 0 {
					// the old inode is gone; follow the new file at the same path
					_ = watcher.Remove(path)
					if err := watcher.Add(path); err != nil {
						if !send(errs, err, done) {
							return
						}
						continue
					}
				}
				c, err := Read(path)
				if err != nil {
					if !send(errs, err, done) {
						return
					}
					continue
				}
				if !send(configs, c, done) {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if !send(errs, err, done) {
					return
				}
			case <-done:
				return
			}
		}
	}()
	return nil
}

func send[T any](ch chan<- T, v T, done <-chan struct{}) bool {
	select {
	case ch <- v:
		return true
	case <-done:
		return false
	}
}
