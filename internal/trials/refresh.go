package trials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"cohort.clinicaltrials.dev/internal/ctgov"
	"cohort.clinicaltrials.dev/internal/eudract"
	"cohort.clinicaltrials.dev/internal/logging"
	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/trialdb"

	"golang.org/x/sync/errgroup"
)

// RefreshNow fetches both registries and replaces the stored rows. Refreshes
// are serialized, so a manual refresh issued during a scheduled one waits its
// turn. A ClinicalTrials.gov failure fails the whole refresh; a missing or
// unreadable EudraCT export is logged and skipped so one registry cannot
// block the other.
func (manager *Manager) RefreshNow(ctx context.Context) (models.RefreshResult, error) {
	manager.refreshMutex.Lock()
	defer manager.refreshMutex.Unlock()

	started := time.Now()

	var (
		page       *ctgov.StudiesResponse
		rawStudies json.RawMessage
		records    []eudract.Record
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		page, rawStudies, err = manager.ctgovClient.FetchStudies(groupCtx)
		return err
	})
	group.Go(func() error {
		loaded, err := eudract.LoadFile(manager.config.EudractPath, manager.logger)
		if err != nil {
			logging.LogError(manager.logger, "skipping EudraCT load", err)
			return nil
		}
		records = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		return models.RefreshResult{}, fmt.Errorf("fetching studies: %w", err)
	}

	stamp := time.Now().UTC().Format(time.RFC3339)

	ctParams := make([]trialdb.UpsertClinicalTrialParams, 0, len(page.Studies))
	for _, study := range page.Studies {
		params, ok := clinicalTrialParams(study)
		if !ok {
			continue
		}
		ctParams = append(ctParams, params)
	}
	if err := manager.TrialsDB.StoreClinicalTrials(ctx, ctParams, stamp); err != nil {
		return models.RefreshResult{}, fmt.Errorf("storing studies: %w", err)
	}

	if records != nil {
		euParams := make([]trialdb.UpsertEudractTrialParams, 0, len(records))
		for _, record := range records {
			params, ok := eudractTrialParams(record)
			if !ok {
				continue
			}
			euParams = append(euParams, params)
		}
		if err := manager.TrialsDB.StoreEudractTrials(ctx, euParams, stamp); err != nil {
			return models.RefreshResult{}, fmt.Errorf("storing EudraCT records: %w", err)
		}
	}

	if err := writeSnapshot(manager.config.SnapshotPath, Snapshot{Data: rawStudies, LastUpdated: stamp}); err != nil {
		// The database is already current, so keep serving and retry the
		// snapshot on the next refresh.
		logging.LogError(manager.logger, "writing snapshot failed", err)
	}

	logging.LogOperation(manager.logger, "trial data refreshed",
		slog.Int("studies", len(page.Studies)),
		slog.Int("eudract_records", len(records)),
		slog.Duration("duration", time.Since(started)),
	)

	return models.RefreshResult{
		Status:       "Data refreshed",
		TotalRecords: len(page.Studies),
		LastUpdated:  stamp,
	}, nil
}

// ClinicalTrialsSnapshot returns the cached upstream response, fetching one
// first when no snapshot exists yet.
func (manager *Manager) ClinicalTrialsSnapshot(ctx context.Context) (*Snapshot, error) {
	snapshot, err := readSnapshot(manager.config.SnapshotPath)
	if errors.Is(err, fs.ErrNotExist) {
		if _, err := manager.RefreshNow(ctx); err != nil {
			return nil, err
		}
		return readSnapshot(manager.config.SnapshotPath)
	}
	return snapshot, err
}

// EudractRecords loads the register export fresh on every call, so a swapped
// file shows up without waiting for a refresh.
func (manager *Manager) EudractRecords() ([]eudract.Record, error) {
	return eudract.LoadFile(manager.config.EudractPath, manager.logger)
}
