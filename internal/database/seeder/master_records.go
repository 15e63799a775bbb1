package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"facility-registry/internal/database"
	"facility-registry/internal/repository"
)

// MasterRecord is one entry of a seed file: [{"unique_name": "...", "data": {...}}].
type MasterRecord struct {
	UniqueName string          `json:"unique_name"`
	Data       json.RawMessage `json:"data"`
}

// MasterRecordsSeeder upserts Records into facilities_master in one transaction.
type MasterRecordsSeeder struct {
	Records []MasterRecord
}

func LoadMasterRecords(path string) (MasterRecordsSeeder, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return MasterRecordsSeeder{}, err
	}
	var recs []MasterRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return MasterRecordsSeeder{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return MasterRecordsSeeder{Records: recs}, nil
}

func (MasterRecordsSeeder) Name() string { return "facilities_master" }

func (s MasterRecordsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "facilities_master", "id", "unique_name", "json_data", "updated_at"); err != nil {
		return err
	}

	for i, rec := range s.Records {
		if strings.TrimSpace(rec.UniqueName) == "" {
			return fmt.Errorf("record %d: missing unique_name", i)
		}
		raw := strings.TrimSpace(string(rec.Data))
		if raw == "" || raw == "null" || !json.Valid([]byte(raw)) {
			return fmt.Errorf("record %d (%s): data must be a JSON value", i, rec.UniqueName)
		}
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, rec := range s.Records {
		if err := repository.UpsertMaster(ctx, tx, rec.UniqueName, strings.TrimSpace(string(rec.Data))); err != nil {
			if errors.Is(err, repository.ErrEmptyUniqueName) {
				continue
			}
			return fmt.Errorf("upsert %s: %w", rec.UniqueName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
