package trialdb

import (
	"context"
	"database/sql"
	"errors"
)

// Keys tracked in the metadata table.
const (
	MetaClinicalTrialsLastUpdated = "clinicaltrials_last_updated"
	MetaEudractLastUpdated        = "eudract_last_updated"
)

// GetMetadata returns the stored value for a key, or an empty string when the
// key is absent.
func (q *Queries) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (q *Queries) SetMetadata(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, "INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", key, value)
	return err
}
