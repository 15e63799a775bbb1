package dto

import (
	"encoding/json"

	"facility-registry/internal/usecase"
)

type MasterProjectResponse struct {
	Name                 string          `json:"name"`
	Data                 json.RawMessage `json:"data"`
	Timestamp            json.RawMessage `json:"timestamp"`
	CurrentFacilityIndex json.RawMessage `json:"currentFacilityIndex"`
}

type MasterDataResponse struct {
	Success  bool                             `json:"success"`
	Projects map[string]MasterProjectResponse `json:"projects"`
}

func NewMasterDataResponse(projects map[string]usecase.MasterProject) MasterDataResponse {
	out := make(map[string]MasterProjectResponse, len(projects))
	for k, p := range projects {
		out[k] = MasterProjectResponse{
			Name:                 p.Name,
			Data:                 p.Data,
			Timestamp:            p.Timestamp,
			CurrentFacilityIndex: p.CurrentFacilityIndex,
		}
	}
	return MasterDataResponse{Success: true, Projects: out}
}

type MasterActionRequest struct {
	Action      string          `json:"action"`
	ProjectName string          `json:"projectName"`
	Data        json.RawMessage `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
