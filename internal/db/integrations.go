package db

import (
	"context"
	"fmt"

	"github.com/jonathan/vendor-profiler/internal/types"
)

// ListIntegrations retrieves the canonical integration catalog, ordered by
// category then name. The returned names carry the catalog's canonical casing.
func (db *DB) ListIntegrations(ctx context.Context) ([]types.IntegrationRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, category FROM integrations ORDER BY category, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	defer rows.Close()

	var records []types.IntegrationRecord
	for rows.Next() {
		var record types.IntegrationRecord
		if err := rows.Scan(&record.Name, &record.Category); err != nil {
			return nil, fmt.Errorf("failed to scan integration: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
