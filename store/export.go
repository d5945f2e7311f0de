// Package store exports run histories as parquet and keeps an index of the
// runs written to an export directory.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brensch/snakesaver/game"
)

// ExportRun writes history into dir and records it in the dir's run log.
// It returns the path of the parquet file.
func ExportRun(dir string, meta RunMeta, history []game.BoardState) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("export dir is required")
	}
	if len(history) == 0 {
		return "", fmt.Errorf("run %s has no history", meta.RunID)
	}

	name := HistoryFileName(meta.RunID)
	outPath := filepath.Join(dir, name)
	if err := WriteHistoryParquet(outPath, HistoryRows(meta, history)); err != nil {
		return "", err
	}

	log, err := OpenRunLog(filepath.Join(dir, RunLogName))
	if err != nil {
		return "", err
	}
	defer log.Close()
	if err := log.Add(meta.RunID, name); err != nil {
		return "", err
	}
	return outPath, nil
}

// Resolve turns a replay argument into a parquet path. ref may be a file
// path or a run ID recorded in dir's run log.
func Resolve(dir, ref string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}
	if dir == "" {
		return "", fmt.Errorf("%s: no such file and no export dir to look up run IDs", ref)
	}
	logPath := filepath.Join(dir, RunLogName)
	if _, err := os.Stat(logPath); err != nil {
		return "", fmt.Errorf("%s: no such file and no run log in %s", ref, dir)
	}
	log, err := OpenRunLog(logPath)
	if err != nil {
		return "", err
	}
	defer log.Close()

	name, ok := log.Lookup(ref)
	if !ok {
		return "", fmt.Errorf("%s: not a file or a run recorded in %s", ref, logPath)
	}
	return filepath.Join(dir, name), nil
}

// LoadRun reads an exported run back into board states.
func LoadRun(path string) ([]game.BoardState, RunMeta, error) {
	rows, err := ReadHistoryParquet(path)
	if err != nil {
		return nil, RunMeta{}, err
	}
	history, meta, err := RowsToHistory(rows)
	if err != nil {
		return nil, RunMeta{}, fmt.Errorf("%s: %w", path, err)
	}
	return history, meta, nil
}
