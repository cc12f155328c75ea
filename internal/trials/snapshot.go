package trials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot is the cached upstream response as served to clients. Data holds
// the ClinicalTrials.gov payload byte for byte so consumers see exactly what
// the registry returned.
type Snapshot struct {
	Data        json.RawMessage `json:"data"`
	LastUpdated string          `json:"last_updated"`
}

func readSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		// Callers check for fs.ErrNotExist to trigger a fetch.
		return nil, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return &snapshot, nil
}

func writeSnapshot(path string, snapshot Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	// Write-then-rename keeps concurrent readers off half-written files.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing snapshot %s: %w", path, err)
	}
	return nil
}
