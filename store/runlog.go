package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// RunLogName is the index file kept next to exported runs.
const RunLogName = "runs.log"

// RunLog records which runs have been exported and where. It is an
// append-only file with one "<run_id>\t<file>" line per run, read fully on
// open. Partial or malformed lines are skipped.
type RunLog struct {
	mu    sync.RWMutex
	path  string
	file  *os.File
	files map[string]string
}

func OpenRunLog(path string) (*RunLog, error) {
	if path == "" {
		return nil, fmt.Errorf("run log path is required")
	}
	files := make(map[string]string)

	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			id, file, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "\t")
			if !ok || id == "" || file == "" {
				continue
			}
			files[id] = file
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create run log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	return &RunLog{path: path, file: file, files: files}, nil
}

func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Lookup returns the file recorded for runID, relative to the log's dir.
func (l *RunLog) Lookup(runID string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.files[runID]
	return f, ok
}

func (l *RunLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.files)
}

// Add appends runID and syncs. Re-adding a known run is a no-op.
func (l *RunLog) Add(runID, file string) error {
	if runID == "" || file == "" {
		return fmt.Errorf("run id and file are required")
	}
	if strings.ContainsAny(runID+file, "\t\n") {
		return fmt.Errorf("run id %q or file %q contains a tab or newline", runID, file)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.files[runID]; ok {
		return nil
	}
	if l.file == nil {
		return fmt.Errorf("run log is closed")
	}
	if _, err := l.file.WriteString(runID + "\t" + file + "\n"); err != nil {
		return fmt.Errorf("append run log: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync run log: %w", err)
	}
	l.files[runID] = file
	return nil
}
