package dto

import (
	"encoding/json"

	"facility-registry/internal/domain/facility"
)

type SubmitSuggestionResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SuggestionID int64  `json:"suggestion_id"`
	MasterID     string `json:"master_id"`
}

type SuggestionResponse struct {
	ID             int64           `json:"id"`
	MasterID       string          `json:"master_id"`
	EditedJSONData json.RawMessage `json:"edited_json_data"`
	Reason         string          `json:"reason"`
	SubmitterIP    string          `json:"submitter_ip"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"created_at"`
	ReviewedAt     *string         `json:"reviewed_at"`
}

type SuggestionListResponse struct {
	Success     bool                 `json:"success"`
	Suggestions []SuggestionResponse `json:"suggestions"`
	Count       int                  `json:"count"`
}

func NewSuggestionListResponse(edits []facility.SuggestedEdit) SuggestionListResponse {
	out := make([]SuggestionResponse, 0, len(edits))
	for _, e := range edits {
		payload := json.RawMessage("null")
		if p := e.Payload(); p != "" && json.Valid([]byte(p)) {
			payload = json.RawMessage(p)
		}
		out = append(out, SuggestionResponse{
			ID:             e.ID,
			MasterID:       e.MasterID,
			EditedJSONData: payload,
			Reason:         e.Reason,
			SubmitterIP:    e.SubmitterIP,
			Status:         string(e.Status),
			CreatedAt:      e.CreatedAt,
			ReviewedAt:     e.ReviewedAt,
		})
	}
	return SuggestionListResponse{Success: true, Suggestions: out, Count: len(out)}
}
