package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// FileWrite is one target of an atomic batch write.
type FileWrite struct {
	Path string
	Data []byte
}

// WriteFiles persists a batch of files all-or-nothing. Every target is first
// written to a temp file in its own directory and synced; only when every
// temp write has succeeded are the originals replaced. A failure during the
// temp phase removes all temps and leaves every original untouched.
func WriteFiles(writes []FileWrite) error {
	temps := make([]string, 0, len(writes))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}

	for _, w := range writes {
		tmp, err := writeTemp(w.Path, w.Data)
		if err != nil {
			cleanup()
			return &types.StorageError{Path: w.Path, Msg: "staging write", Err: err}
		}
		temps = append(temps, tmp)
	}

	for i, w := range writes {
		if err := os.Rename(temps[i], w.Path); err != nil {
			// Later temps are still unrenamed; drop them.
			for _, tmp := range temps[i:] {
				os.Remove(tmp)
			}
			return &types.StorageError{Path: w.Path, Msg: "replacing file", Err: err}
		}
	}
	return nil
}

// writeTemp writes data to a fresh temp file next to path using the
// temp-file, fsync, close sequence and returns the temp file name.
func writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".giantt-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return tmpName, nil
}
