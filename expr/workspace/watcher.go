package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileWatcher polls the workspace root and rescans expression files whose
// modification time changed. OnChange is called after every rescan or
// removal with the file's new state, or nil when it was removed.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration

	mu       sync.Mutex
	modTimes map[string]time.Time
	OnChange func(path string, f *File)
}

func NewFileWatcher(w *Workspace, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

// Stop ends polling and waits for the current scan to finish.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	<-fw.doneCh
}

func (fw *FileWatcher) run() {
	defer close(fw.doneCh)
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.Scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.Scan()
		}
	}
}

// Scan runs one polling pass synchronously. It is safe to call while the
// watcher is running; passes do not overlap.
func (fw *FileWatcher) Scan() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	currentFiles := make(map[string]bool)
	root := fw.workspace.RootDir()

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return skipHidden(root, path, info)
		}
		if filepath.Ext(path) != Ext {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			fw.modTimes[path] = info.ModTime()
			if fw.workspace.ScanFile(path) == nil {
				fw.notify(path, fw.workspace.GetFile(path))
			}
		}
		return nil
	})

	for path := range fw.modTimes {
		if !currentFiles[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			fw.notify(path, nil)
		}
	}
}

// skipHidden prunes dot-directories below root.
func skipHidden(root, path string, info os.FileInfo) error {
	if path != root && strings.HasPrefix(info.Name(), ".") {
		return filepath.SkipDir
	}
	return nil
}

func (fw *FileWatcher) notify(path string, f *File) {
	if fw.OnChange != nil {
		fw.OnChange(path, f)
	}
}
