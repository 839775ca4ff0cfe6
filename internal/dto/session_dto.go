package dto

import (
	"time"

	"agency-configurator-be/pkg/recommendation"

	"github.com/google/uuid"
)

const (
	SessionActionCreate = "create"
	SessionActionSave   = "save"
)

type SessionActionRequest struct {
	Action  string                 `json:"action" validate:"required,oneof=create save"`
	Token   string                 `json:"token" validate:"required_if=Action save,max=64"`
	Answers recommendation.Answers `json:"answers"`
	Status  string                 `json:"status" validate:"max=50"`
	Version *int                   `json:"version" validate:"omitempty,gte=0"`
}

type SaveSessionRequest struct {
	Token   string                 `json:"-"`
	Answers recommendation.Answers `json:"answers"`
	Status  string                 `json:"status" validate:"max=50"`
	Version *int                   `json:"version" validate:"omitempty,gte=0"`
}

type SessionResponse struct {
	Id                 uuid.UUID              `json:"id"`
	Token              string                 `json:"token"`
	Answers            recommendation.Answers `json:"answers"`
	RecommendedOptions []string               `json:"recommendedOptions"`
	Status             string                 `json:"status"`
	Version            int                    `json:"version"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
	ExpiresAt          time.Time              `json:"expiresAt"`
}

type CleanupSessionsResponse struct {
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}
