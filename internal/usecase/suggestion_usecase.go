package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"facility-registry/internal/domain/facility"
	"facility-registry/internal/pkg/metrics"
	"facility-registry/internal/repository"
	"facility-registry/internal/search"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxMasterIDLen = 255

// ModerationNotifier pushes moderation events to connected admins.
type ModerationNotifier interface {
	SuggestionSubmitted(id int64, masterID string)
	SuggestionProcessed(id int64, masterID string, status facility.SuggestionStatus)
}

type SubmitSuggestionInput struct {
	// Body is the raw request JSON: {data, reason, projectName?, metadata?}.
	Body        []byte
	SubmitterIP string
}

type SubmitSuggestionResult struct {
	ID       int64
	MasterID string
}

type SuggestionUsecase interface {
	Submit(ctx context.Context, in SubmitSuggestionInput) (SubmitSuggestionResult, error)
	List(ctx context.Context, status string) ([]facility.SuggestedEdit, error)
	Process(ctx context.Context, id int64, action string) (string, error)
}

type Suggestions struct {
	repo     repository.SuggestionRepository
	cache    SearchCache
	notifier ModerationNotifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewSuggestionUsecase(repo repository.SuggestionRepository, cache SearchCache, notifier ModerationNotifier, m *metrics.Metrics, logger *zap.Logger) *Suggestions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Suggestions{repo: repo, cache: cache, notifier: notifier, metrics: m, logger: logger.Named("suggestions")}
}

func (u *Suggestions) Submit(ctx context.Context, in SubmitSuggestionInput) (SubmitSuggestionResult, error) {
	if !gjson.ValidBytes(in.Body) {
		return SubmitSuggestionResult{}, invalid("Missing data or reason")
	}
	root := gjson.ParseBytes(in.Body)
	data := root.Get("data")
	reasonField := root.Get("reason")
	if !root.IsObject() || !present(data) || !present(reasonField) {
		return SubmitSuggestionResult{}, invalid("Missing data or reason")
	}

	reason := strings.TrimSpace(reasonField.String())
	if reason == "" || reason == "0" {
		return SubmitSuggestionResult{}, invalid("Reason is required")
	}

	if search.Blank(data.Get("operator.name")) && search.Blank(data.Get("facilities.0.identification.name")) {
		return SubmitSuggestionResult{}, invalid("Please provide at least an operator name or facility name")
	}

	masterID := DeriveMasterID(root)

	payload, err := formatStoredPayload(data.Raw)
	if err != nil {
		return SubmitSuggestionResult{}, fmt.Errorf("%w: format payload: %w", ErrInternal, err)
	}

	id, err := u.repo.Create(ctx, facility.SuggestedEdit{
		MasterID:       masterID,
		EditedJSONData: &payload,
		Reason:         reason,
		SubmitterIP:    in.SubmitterIP,
		Status:         facility.StatusPending,
	})
	if err != nil {
		return SubmitSuggestionResult{}, storage("create suggestion", err)
	}

	u.metrics.Suggestion("submitted")
	u.invalidate(ctx)
	if u.notifier != nil {
		u.notifier.SuggestionSubmitted(id, masterID)
	}
	u.logger.Info("suggestion submitted", zap.Int64("id", id), zap.String("master_id", masterID))

	return SubmitSuggestionResult{ID: id, MasterID: masterID}, nil
}

func (u *Suggestions) List(ctx context.Context, rawStatus string) ([]facility.SuggestedEdit, error) {
	status, ok := facility.ParseSuggestionStatus(rawStatus)
	if !ok {
		return nil, invalid("Status must be one of pending, approved, rejected or all")
	}
	edits, err := u.repo.List(ctx, status)
	if err != nil {
		return nil, storage("list suggestions", err)
	}
	return edits, nil
}

// Process approves or rejects a pending suggestion and returns the client message.
func (u *Suggestions) Process(ctx context.Context, id int64, rawAction string) (string, error) {
	action, ok := facility.ParseModerationAction(rawAction)
	if id <= 0 || !ok {
		return "", invalid("ID (positive integer) and valid action (approve|reject) are required")
	}

	edit, err := u.repo.Process(ctx, id, action)
	switch {
	case errors.Is(err, repository.ErrSuggestionNotPending):
		return "", notFound("Submission not found or already processed")
	case errors.Is(err, repository.ErrSuggestionNoPayload):
		return "", invalid("Submission has no edited data to publish")
	case err != nil:
		return "", storage("process suggestion", err)
	}

	status := facility.StatusRejected
	message := "Submission rejected"
	if action == facility.ActionApprove {
		status = facility.StatusApproved
		message = "Submission approved and published"
	}

	u.metrics.Suggestion(string(status))
	u.invalidate(ctx)
	if u.notifier != nil {
		u.notifier.SuggestionProcessed(id, edit.MasterID, status)
	}
	u.logger.Info("suggestion processed", zap.Int64("id", id), zap.String("status", string(status)))

	return message, nil
}

func (u *Suggestions) invalidate(ctx context.Context) {
	if err := InvalidateAutocomplete(ctx, u.cache); err != nil {
		u.logger.Warn("autocomplete cache invalidation failed", zap.Error(err))
	}
}

var masterIDDisallowed = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)

// DeriveMasterID picks the name a submission will be published under:
// projectName, metadata.actualProjectName, data.projectName, data.name, then
// "<operator name> - <first facility name>" from whichever parts exist.
// The result keeps only letters, digits, whitespace, '-' and '_' and is cut to 255 bytes.
func DeriveMasterID(root gjson.Result) string {
	data := root.Get("data")

	var id string
	for _, candidate := range []gjson.Result{
		root.Get("projectName"),
		root.Get("metadata.actualProjectName"),
		data.Get("projectName"),
		data.Get("name"),
	} {
		if !search.Blank(candidate) {
			id = candidate.String()
			break
		}
	}

	if id == "" {
		if op := data.Get("operator.name"); !search.Blank(op) {
			id = op.String()
		}
		if fac := data.Get("facilities.0.identification.name"); !search.Blank(fac) {
			if id != "" {
				id += " - " + fac.String()
			} else {
				id = fac.String()
			}
		}
	}

	id = masterIDDisallowed.ReplaceAllString(id, "")
	if len(id) > maxMasterIDLen {
		id = id[:maxMasterIDLen]
	}
	return id
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}
