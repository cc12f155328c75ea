package trials

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cohort.clinicaltrials.dev/internal/ctgov"
	"cohort.clinicaltrials.dev/internal/logging"
	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/trialdb"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Manager owns the cached trial registry data and keeps it fresh. It fetches
// ClinicalTrials.gov and the EudraCT register export on a schedule, stores
// the flattened rows, and answers queries from the database in between.
type Manager struct {
	config       Config
	ctgovClient  *ctgov.Client
	TrialsDB     *trialdb.Client
	logger       *slog.Logger
	refreshMutex sync.Mutex
	startedAt    time.Time
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitTrialManager builds the manager, runs one refresh up front, and starts
// the periodic refresh loop. A failed initial refresh is logged and startup
// continues: whatever data is already in the database keeps serving until an
// attempt succeeds.
func InitTrialManager(config Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbClient, err := trialdb.NewClient(trialdb.NewConfig(config.DBPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("error building trial database: %w", err)
	}

	manager := &Manager{
		config:       config,
		ctgovClient:  ctgov.NewClient(config.CTGovURL, config.CTGovPageSize, config.CTGovTimeout),
		TrialsDB:     dbClient,
		logger:       logger.With(slog.String("component", "trial_manager")),
		startedAt:    time.Now(),
		shutdownChan: make(chan struct{}),
	}

	if _, err := manager.RefreshNow(context.Background()); err != nil {
		logging.LogError(manager.logger, "initial data fetch failed, continuing server startup", err)
	}

	if config.refreshEnabled() {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// Shutdown gracefully stops the background refresh loop and closes the database.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		if manager.TrialsDB != nil {
			_ = manager.TrialsDB.Close()
		}
	})
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	// retryC fires once after a failed refresh so a flaky upstream is
	// retried sooner than the next scheduled tick.
	var retryC <-chan time.Time

	for {
		select {
		case <-ticker.C:
		case <-retryC:
			retryC = nil
		case <-manager.shutdownChan:
			logging.LogOperation(manager.logger, "stopping periodic trial refresh")
			return
		}

		if _, err := manager.RefreshNow(context.Background()); err != nil {
			logging.LogError(manager.logger, "scheduled refresh failed", err)
			if manager.config.RetryInterval > 0 {
				retryC = time.After(manager.config.RetryInterval)
			}
		}
	}
}

// StatusSummary reports service health: record counts and last-updated stamps
// per source, plus uptime.
func (manager *Manager) StatusSummary(ctx context.Context) (models.ServiceStatus, error) {
	queries := manager.TrialsDB.Queries

	ctCount, err := queries.CountClinicalTrials(ctx, trialdb.TrialFilter{})
	if err != nil {
		return models.ServiceStatus{}, err
	}
	ctUpdated, err := queries.GetMetadata(ctx, trialdb.MetaClinicalTrialsLastUpdated)
	if err != nil {
		return models.ServiceStatus{}, err
	}
	euCount, err := queries.CountEudractTrials(ctx, trialdb.TrialFilter{})
	if err != nil {
		return models.ServiceStatus{}, err
	}
	euUpdated, err := queries.GetMetadata(ctx, trialdb.MetaEudractLastUpdated)
	if err != nil {
		return models.ServiceStatus{}, err
	}

	return models.ServiceStatus{
		Status:        "ok",
		Env:           manager.config.Env.String(),
		UptimeSeconds: int64(time.Since(manager.startedAt).Seconds()),
		Sources: []models.SourceStatus{
			{Name: "clinicaltrials", Records: ctCount, LastUpdated: ctUpdated},
			{Name: "eudract", Records: euCount, LastUpdated: euUpdated},
		},
	}, nil
}
