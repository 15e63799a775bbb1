package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"facility-registry/internal/repository"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// MasterProject is a published record shaped for the data-entry client.
type MasterProject struct {
	Name                 string
	Data                 json.RawMessage
	Timestamp            json.RawMessage
	CurrentFacilityIndex json.RawMessage
}

type MasterUsecase interface {
	ListProjects(ctx context.Context) (map[string]MasterProject, error)
	Save(ctx context.Context, projectName string, data json.RawMessage) (string, error)
	Delete(ctx context.Context, projectName string) (string, error)
}

type Master struct {
	repo   repository.MasterRepository
	cache  SearchCache
	logger *zap.Logger
}

func NewMasterUsecase(repo repository.MasterRepository, cache SearchCache, logger *zap.Logger) *Master {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Master{repo: repo, cache: cache, logger: logger.Named("master")}
}

// ListProjects keys every master row by its unique name, or "record-<id>" when it has none.
// Undecodable JSON is passed through as null data.
func (u *Master) ListProjects(ctx context.Context) (map[string]MasterProject, error) {
	recs, err := u.repo.List(ctx)
	if err != nil {
		return nil, storage("list master records", err)
	}

	out := make(map[string]MasterProject, len(recs))
	for _, rec := range recs {
		name := rec.Key()
		if name == "" {
			name = "record-" + strconv.FormatInt(rec.ID, 10)
		}

		p := MasterProject{
			Name:                 name,
			Data:                 json.RawMessage("null"),
			Timestamp:            quoteJSON(rec.UpdatedAt),
			CurrentFacilityIndex: json.RawMessage("0"),
		}
		if gjson.Valid(rec.JSONData) {
			data := gjson.Parse(rec.JSONData)
			p.Data = json.RawMessage(data.Raw)
			if ts := data.Get("timestamp"); data.IsObject() && ts.Exists() && ts.Type != gjson.Null {
				p.Timestamp = json.RawMessage(ts.Raw)
			}
			if idx := data.Get("currentFacilityIndex"); data.IsObject() && idx.Exists() && idx.Type != gjson.Null {
				p.CurrentFacilityIndex = json.RawMessage(idx.Raw)
			}
		}
		out[name] = p
	}
	return out, nil
}

func (u *Master) Save(ctx context.Context, projectName string, data json.RawMessage) (string, error) {
	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		return "", invalid("Project name is required")
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" || !json.Valid([]byte(raw)) {
		return "", invalid("No data provided to save")
	}

	if err := u.repo.Save(ctx, projectName, raw); err != nil {
		return "", storage("save master record", err)
	}
	u.invalidate(ctx)
	u.logger.Info("master record saved", zap.String("name", projectName))
	return fmt.Sprintf("Project '%s' saved to master database", projectName), nil
}

func (u *Master) Delete(ctx context.Context, projectName string) (string, error) {
	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		return "", invalid("Project name is required")
	}

	n, err := u.repo.Delete(ctx, projectName)
	if err != nil {
		return "", storage("delete master record", err)
	}
	if n == 0 {
		return "", notFound("Project not found in master database")
	}
	u.invalidate(ctx)
	u.logger.Info("master record deleted", zap.String("name", projectName))
	return fmt.Sprintf("Project '%s' deleted from master database", projectName), nil
}

func (u *Master) invalidate(ctx context.Context) {
	if err := InvalidateAutocomplete(ctx, u.cache); err != nil {
		u.logger.Warn("autocomplete cache invalidation failed", zap.Error(err))
	}
}

func quoteJSON(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
