package trialdb

import "context"

// StoreClinicalTrials upserts a batch of studies and records the refresh
// stamp in a single transaction.
func (c *Client) StoreClinicalTrials(ctx context.Context, trials []UpsertClinicalTrialParams, lastUpdated string) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	qtx := c.Queries.WithTx(tx)
	for _, params := range trials {
		if err := qtx.UpsertClinicalTrial(ctx, params); err != nil {
			return err
		}
	}
	if err := qtx.SetMetadata(ctx, MetaClinicalTrialsLastUpdated, lastUpdated); err != nil {
		return err
	}
	return tx.Commit()
}

// StoreEudractTrials upserts a batch of EudraCT trials and records the
// refresh stamp in a single transaction.
func (c *Client) StoreEudractTrials(ctx context.Context, trials []UpsertEudractTrialParams, lastUpdated string) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	qtx := c.Queries.WithTx(tx)
	for _, params := range trials {
		if err := qtx.UpsertEudractTrial(ctx, params); err != nil {
			return err
		}
	}
	if err := qtx.SetMetadata(ctx, MetaEudractLastUpdated, lastUpdated); err != nil {
		return err
	}
	return tx.Commit()
}
