package core

import "context"

// Store is the persistence boundary of the pipeline. The production
// implementation lives in internal/store; tests substitute in-memory fakes.
type Store interface {
	// InsertBatch persists every lead in a single transaction and returns
	// the storage-assigned identifiers in input order. If any insert fails
	// the whole batch rolls back and no lead from it is persisted.
	InsertBatch(ctx context.Context, leads []Lead) ([]string, error)

	// LeadsByUser returns all leads owned by userID, newest first.
	LeadsByUser(ctx context.Context, userID string) ([]Lead, error)
}
