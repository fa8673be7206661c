package vectorstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCorruptSnapshot marks a snapshot file that exists but cannot be read or
// parsed. The store logs it and starts empty; it is never fatal.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// snapshotFile is the JSON layout persisted to disk. Embeddings are derived
// state and never stored; they are recomputed from the documents on restore.
type snapshotFile struct {
	Documents []string            `json:"documents"`
	Metadatas []map[string]string `json:"metadatas"`
	IDs       []string            `json:"ids"`
	Timestamp string              `json:"timestamp"`
	Count     int                 `json:"count"`
}

// loadSnapshot reads the snapshot at path. A missing file is not an error and
// yields the empty snapshot. An unreadable or unparseable file yields the
// empty snapshot plus an error wrapping ErrCorruptSnapshot.
func loadSnapshot(path string) (snapshotFile, error) {
	var snap snapshotFile

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, nil
		}
		return snap, fmt.Errorf("%w: read %s: %v", ErrCorruptSnapshot, path, err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshotFile{}, fmt.Errorf("%w: parse %s: %v", ErrCorruptSnapshot, path, err)
	}

	if len(snap.Documents) != len(snap.Metadatas) || len(snap.Documents) != len(snap.IDs) {
		return snapshotFile{}, fmt.Errorf("%w: misaligned snapshot: %d documents, %d metadatas, %d ids",
			ErrCorruptSnapshot, len(snap.Documents), len(snap.Metadatas), len(snap.IDs))
	}

	return snap, nil
}

// writeSnapshot serializes snap to path.
func writeSnapshot(path string, snap snapshotFile) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}
