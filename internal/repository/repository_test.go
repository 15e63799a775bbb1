package repository

import (
	"context"
	"path/filepath"
	"testing"

	"facility-registry/internal/config"
	"facility-registry/internal/database"
	"facility-registry/internal/database/sqlite"
	"facility-registry/internal/domain/facility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) database.DB {
	t.Helper()
	db, err := sqlite.Open(t.Context(), config.DatabaseConfig{DBPath: filepath.Join(t.TempDir(), "repo.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestMasterRepository_SaveListDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSQLMasterRepository(db)

	require.NoError(t, repo.Save(ctx, "North Ranch", `{"operator":{"name":"A"}}`))
	require.NoError(t, repo.Save(ctx, " North Ranch ", `{"operator":{"name":"B"}}`))
	require.NoError(t, repo.Save(ctx, "South Ranch", `{"facilities":[]}`))
	assert.ErrorIs(t, repo.Save(ctx, "  ", `{}`), ErrEmptyUniqueName)

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "North Ranch", recs[0].Key())
	assert.JSONEq(t, `{"operator":{"name":"B"}}`, recs[0].JSONData)
	assert.NotEmpty(t, recs[0].UpdatedAt)

	n, err := repo.Delete(ctx, "South Ranch")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, "South Ranch")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestPayloadRepository_SourcesAndOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	masters := NewSQLMasterRepository(db)
	edits := NewSQLSuggestionRepository(db)

	require.NoError(t, masters.Save(ctx, "first", `{"n":1}`))
	require.NoError(t, masters.Save(ctx, "second", `{"n":2}`))

	_, err := edits.Create(ctx, facility.SuggestedEdit{EditedJSONData: strPtr(`{"e":1}`), Reason: "r"})
	require.NoError(t, err)
	_, err = edits.Create(ctx, facility.SuggestedEdit{EditedJSONData: strPtr(""), Reason: "empty"})
	require.NoError(t, err)
	_, err = edits.Create(ctx, facility.SuggestedEdit{Reason: "null"})
	require.NoError(t, err)

	repo := NewSQLPayloadRepository(db)
	got, err := repo.MasterPayloads(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`}, got)

	got, err = repo.EditPayloads(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"e":1}`}, got)
}

func TestPayloadRepository_ClosedDB(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())

	_, err := NewSQLPayloadRepository(db).MasterPayloads(context.Background())
	assert.Error(t, err)
}

func TestSuggestionRepository_ApproveNamed(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSQLSuggestionRepository(db)
	masters := NewSQLMasterRepository(db)

	require.NoError(t, masters.Save(ctx, "Acme - North", `{"old":true}`))
	id, err := repo.Create(ctx, facility.SuggestedEdit{
		MasterID:       "Acme - North",
		EditedJSONData: strPtr(`{"new":true}`),
		Reason:         "update",
		SubmitterIP:    "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	pending, err := repo.List(ctx, facility.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "10.0.0.1", pending[0].SubmitterIP)
	assert.Nil(t, pending[0].ReviewedAt)

	edit, err := repo.Process(ctx, id, facility.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, "Acme - North", edit.MasterID)

	recs, err := masters.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.JSONEq(t, `{"new":true}`, recs[0].JSONData)

	approved, err := repo.List(ctx, facility.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	require.NotNil(t, approved[0].ReviewedAt)

	_, err = repo.Process(ctx, id, facility.ActionReject)
	assert.ErrorIs(t, err, ErrSuggestionNotPending)
}

func TestSuggestionRepository_ApproveUnnamedInsertsRow(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSQLSuggestionRepository(db)

	id, err := repo.Create(ctx, facility.SuggestedEdit{EditedJSONData: strPtr(`{"x":1}`), Reason: "new"})
	require.NoError(t, err)
	_, err = repo.Process(ctx, id, facility.ActionApprove)
	require.NoError(t, err)

	recs, err := NewSQLMasterRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].UniqueName)
	assert.Equal(t, "", recs[0].Key())
}

func TestSuggestionRepository_ApproveWithoutPayloadRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSQLSuggestionRepository(db)

	id, err := repo.Create(ctx, facility.SuggestedEdit{MasterID: "m", Reason: "no data"})
	require.NoError(t, err)

	_, err = repo.Process(ctx, id, facility.ActionApprove)
	assert.ErrorIs(t, err, ErrSuggestionNoPayload)

	pending, err := repo.List(ctx, facility.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = repo.Process(ctx, id, facility.ActionReject)
	require.NoError(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, facility.StatusRejected, all[0].Status)
}

func TestSuggestionRepository_ProcessUnknownID(t *testing.T) {
	repo := NewSQLSuggestionRepository(openTestDB(t))
	_, err := repo.Process(context.Background(), 404, facility.ActionApprove)
	assert.ErrorIs(t, err, ErrSuggestionNotPending)
}
