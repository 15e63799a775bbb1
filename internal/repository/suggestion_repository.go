package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"facility-registry/internal/config"
	"facility-registry/internal/database"
	"facility-registry/internal/domain/facility"
)

var (
	ErrSuggestionNotPending = errors.New("suggestion not found or already processed")
	ErrSuggestionNoPayload  = errors.New("suggestion has no edited data")
)

type SuggestionRepository interface {
	Create(ctx context.Context, edit facility.SuggestedEdit) (int64, error)
	List(ctx context.Context, status facility.SuggestionStatus) ([]facility.SuggestedEdit, error)
	// Process applies action to a pending suggestion in one transaction and
	// returns the row as it was before the update.
	Process(ctx context.Context, id int64, action facility.ModerationAction) (facility.SuggestedEdit, error)
}

type SQLSuggestionRepository struct {
	db database.DB
}

func NewSQLSuggestionRepository(db database.DB) *SQLSuggestionRepository {
	return &SQLSuggestionRepository{db: db}
}

const suggestionColumns = `id, master_id, edited_json_data, reason, submitter_ip, status,
	CAST(created_at AS TEXT), CAST(reviewed_at AS TEXT)`

func (r *SQLSuggestionRepository) Create(ctx context.Context, edit facility.SuggestedEdit) (int64, error) {
	status := edit.Status
	if status == "" {
		status = facility.StatusPending
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO suggested_edits (master_id, edited_json_data, reason, submitter_ip, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		edit.MasterID,
		edit.EditedJSONData,
		edit.Reason,
		edit.SubmitterIP,
		string(status),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SQLSuggestionRepository) List(ctx context.Context, status facility.SuggestionStatus) ([]facility.SuggestedEdit, error) {
	var (
		rows database.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.Query(ctx,
			`SELECT `+suggestionColumns+` FROM suggested_edits ORDER BY created_at DESC, id DESC`,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+suggestionColumns+` FROM suggested_edits WHERE status = $1 ORDER BY created_at DESC, id DESC`,
			string(status),
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]facility.SuggestedEdit, 0)
	for rows.Next() {
		edit, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, edit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLSuggestionRepository) Process(ctx context.Context, id int64, action facility.ModerationAction) (facility.SuggestedEdit, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return facility.SuggestedEdit{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	query := `SELECT ` + suggestionColumns + ` FROM suggested_edits WHERE id = $1 AND status = 'pending'`
	if r.db.Driver() == config.DriverPostgres {
		query += ` FOR UPDATE`
	}

	edit, err := scanSuggestion(tx.QueryRow(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			return facility.SuggestedEdit{}, ErrSuggestionNotPending
		}
		return facility.SuggestedEdit{}, err
	}

	next := facility.StatusRejected
	if action == facility.ActionApprove {
		next = facility.StatusApproved

		payload := edit.Payload()
		if strings.TrimSpace(payload) == "" {
			return facility.SuggestedEdit{}, ErrSuggestionNoPayload
		}
		if strings.TrimSpace(edit.MasterID) != "" {
			err = UpsertMaster(ctx, tx, edit.MasterID, payload)
		} else {
			err = insertUnnamedMaster(ctx, tx, payload)
		}
		if err != nil {
			return facility.SuggestedEdit{}, fmt.Errorf("publish suggestion: %w", err)
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE suggested_edits SET status = $1, reviewed_at = CURRENT_TIMESTAMP WHERE id = $2`,
		string(next),
		id,
	); err != nil {
		return facility.SuggestedEdit{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return facility.SuggestedEdit{}, err
	}
	return edit, nil
}

func scanSuggestion(row database.Row) (facility.SuggestedEdit, error) {
	var (
		edit     facility.SuggestedEdit
		payload  sql.NullString
		status   string
		reviewed sql.NullString
	)
	if err := row.Scan(
		&edit.ID,
		&edit.MasterID,
		&payload,
		&edit.Reason,
		&edit.SubmitterIP,
		&status,
		&edit.CreatedAt,
		&reviewed,
	); err != nil {
		return facility.SuggestedEdit{}, err
	}
	edit.Status = facility.SuggestionStatus(status)
	if payload.Valid {
		edit.EditedJSONData = &payload.String
	}
	if reviewed.Valid {
		edit.ReviewedAt = &reviewed.String
	}
	return edit, nil
}
