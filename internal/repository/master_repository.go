package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"facility-registry/internal/database"
	"facility-registry/internal/domain/facility"
)

var ErrEmptyUniqueName = errors.New("empty unique name")

type MasterRepository interface {
	List(ctx context.Context) ([]facility.MasterRecord, error)
	Save(ctx context.Context, uniqueName string, jsonData string) error
	Delete(ctx context.Context, uniqueName string) (int64, error)
}

type SQLMasterRepository struct {
	db database.DB
}

func NewSQLMasterRepository(db database.DB) *SQLMasterRepository {
	return &SQLMasterRepository{db: db}
}

func (r *SQLMasterRepository) List(ctx context.Context) ([]facility.MasterRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, unique_name, json_data, CAST(updated_at AS TEXT)
		 FROM facilities_master
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]facility.MasterRecord, 0)
	for rows.Next() {
		var (
			rec  facility.MasterRecord
			name sql.NullString
		)
		if err := rows.Scan(&rec.ID, &name, &rec.JSONData, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		if name.Valid {
			rec.UniqueName = &name.String
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save inserts or replaces the record published under uniqueName.
func (r *SQLMasterRepository) Save(ctx context.Context, uniqueName string, jsonData string) error {
	return UpsertMaster(ctx, r.db, uniqueName, jsonData)
}

func (r *SQLMasterRepository) Delete(ctx context.Context, uniqueName string) (int64, error) {
	uniqueName = strings.TrimSpace(uniqueName)
	if uniqueName == "" {
		return 0, ErrEmptyUniqueName
	}
	return r.db.Exec(ctx, `DELETE FROM facilities_master WHERE unique_name = $1`, uniqueName)
}

// Execer is the write surface shared by database.DB and database.Tx.
type Execer interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// UpsertMaster writes jsonData under uniqueName, replacing any existing record.
func UpsertMaster(ctx context.Context, e Execer, uniqueName string, jsonData string) error {
	uniqueName = strings.TrimSpace(uniqueName)
	if uniqueName == "" {
		return ErrEmptyUniqueName
	}
	_, err := e.Exec(ctx,
		`INSERT INTO facilities_master (unique_name, json_data, updated_at)
		 VALUES ($1, $2, CURRENT_TIMESTAMP)
		 ON CONFLICT (unique_name) DO UPDATE SET
			json_data = excluded.json_data,
			updated_at = CURRENT_TIMESTAMP`,
		uniqueName,
		jsonData,
	)
	return err
}

func insertUnnamedMaster(ctx context.Context, e Execer, jsonData string) error {
	_, err := e.Exec(ctx, `INSERT INTO facilities_master (json_data) VALUES ($1)`, jsonData)
	return err
}
