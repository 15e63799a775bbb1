package dto

import "time"

type LoginResponse struct {
	Success     bool      `json:"success"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Clients int    `json:"ws_clients"`
}
