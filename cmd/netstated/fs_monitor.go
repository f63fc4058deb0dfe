package main

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// fsMonitor watches the desired state file and triggers reconciliation on
// edits
type fsMonitor struct {
	watcher   *fsnotify.Watcher
	stateFile string
	logger    *logrus.Logger
	reconcile func()
	stopCh    chan struct{}
}

// newFSMonitor creates a monitor for the desired state file
func newFSMonitor(stateFile string, logger *logrus.Logger, reconcile func()) (*fsMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &fsMonitor{
		watcher:   watcher,
		stateFile: stateFile,
		logger:    logger,
		reconcile: reconcile,
		stopCh:    make(chan struct{}),
	}, nil
}

// start begins watching the state file's directory. Watching the directory
// instead of the file keeps the watch alive across editors that replace the
// file on save.
func (fm *fsMonitor) start() error {
	fm.logger.WithField("state_file", fm.stateFile).Info("watching desired state file")

	if err := fm.watcher.Add(filepath.Dir(fm.stateFile)); err != nil {
		return err
	}

	go fm.processEvents()
	return nil
}

// stop stops the file system monitoring
func (fm *fsMonitor) stop() {
	close(fm.stopCh)
	fm.watcher.Close()
}

// processEvents handles file system events
func (fm *fsMonitor) processEvents() {
	var debounce *time.Timer
	for {
		select {
		case event, ok := <-fm.watcher.Events:
			if !ok {
				return
			}
			if !fm.isStateFileEvent(event) {
				continue
			}
			fm.logger.WithField("op", event.Op.String()).Debug("desired state file changed")
			// Debounce to avoid reconciling on every partial write
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, fm.reconcile)
		case err, ok := <-fm.watcher.Errors:
			if !ok {
				return
			}
			fm.logger.WithError(err).Error("file system monitor error")
		case <-fm.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

// isStateFileEvent checks whether the event touches the desired state file
func (fm *fsMonitor) isStateFileEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(fm.stateFile) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
