package facility

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("record not found")
)

// MasterRecord is a published row of facilities_master.
type MasterRecord struct {
	ID         int64
	UniqueName *string
	JSONData   string
	UpdatedAt  string
}

// Key returns the name the record is published under.
func (r MasterRecord) Key() string {
	if r.UniqueName != nil && strings.TrimSpace(*r.UniqueName) != "" {
		return *r.UniqueName
	}
	return ""
}

type SuggestionStatus string

const (
	StatusPending  SuggestionStatus = "pending"
	StatusApproved SuggestionStatus = "approved"
	StatusRejected SuggestionStatus = "rejected"
)

// ParseSuggestionStatus accepts pending/approved/rejected; "all" and "" mean no filter.
func ParseSuggestionStatus(raw string) (SuggestionStatus, bool) {
	switch s := SuggestionStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	case "", "all":
		return "", true
	default:
		return "", false
	}
}

// SuggestedEdit is a row of suggested_edits.
type SuggestedEdit struct {
	ID             int64
	MasterID       string
	EditedJSONData *string
	Reason         string
	SubmitterIP    string
	Status         SuggestionStatus
	CreatedAt      string
	ReviewedAt     *string
}

// Payload returns the edited JSON or "" when none was stored.
func (e SuggestedEdit) Payload() string {
	if e.EditedJSONData == nil {
		return ""
	}
	return *e.EditedJSONData
}

type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
)

func ParseModerationAction(raw string) (ModerationAction, bool) {
	switch a := ModerationAction(strings.ToLower(strings.TrimSpace(raw))); a {
	case ActionApprove, ActionReject:
		return a, true
	default:
		return "", false
	}
}
