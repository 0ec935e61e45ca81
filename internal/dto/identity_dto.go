package dto

import "github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/store"

type ValidationRequest struct {
	Token string `json:"token"`
	Role  string `json:"role,omitempty"`
}

type ValidationResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

type DeleteProfileRequest struct {
	Token string `json:"token"`
}

type DeleteProfileResponse struct {
	Message string              `json:"message"`
	Deleted store.DeletedCounts `json:"deleted"`
}

type ClientIDResponse struct {
	ClientID string `json:"clientId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
