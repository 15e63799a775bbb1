package repository

import (
	"context"
	"fmt"

	"facility-registry/internal/database"
)

// PayloadRepository reads the raw JSON blobs autocomplete is built from.
type PayloadRepository interface {
	MasterPayloads(ctx context.Context) ([]string, error)
	EditPayloads(ctx context.Context) ([]string, error)
}

type SQLPayloadRepository struct {
	db database.DB
}

func NewSQLPayloadRepository(db database.DB) *SQLPayloadRepository {
	return &SQLPayloadRepository{db: db}
}

func (r *SQLPayloadRepository) MasterPayloads(ctx context.Context) ([]string, error) {
	return r.payloads(ctx, `SELECT json_data FROM facilities_master ORDER BY id ASC`)
}

// EditPayloads returns every suggested edit that carries a payload, whatever its status.
func (r *SQLPayloadRepository) EditPayloads(ctx context.Context) ([]string, error) {
	return r.payloads(ctx,
		`SELECT edited_json_data FROM suggested_edits
		 WHERE edited_json_data IS NOT NULL AND edited_json_data <> ''
		 ORDER BY id ASC`,
	)
}

func (r *SQLPayloadRepository) payloads(ctx context.Context, query string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, database.ErrNilDB
	}
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query payloads: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan payload: %w", err)
		}
		if payload == "" {
			continue
		}
		out = append(out, payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read payloads: %w", err)
	}
	return out, nil
}
