package entity

import (
	"time"

	"agency-configurator-be/pkg/recommendation"

	"github.com/google/uuid"
)

type SessionStatus string

// Ordered progression; transitions are not enforced.
const (
	SessionStatusNew             SessionStatus = "nouveau"
	SessionStatusInProgress      SessionStatus = "en_cours"
	SessionStatusRecommendations SessionStatus = "recommandations_generees"
	SessionStatusFinished        SessionStatus = "termine"
	SessionStatusQuoteRequested  SessionStatus = "devis_demande"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusNew, SessionStatusInProgress, SessionStatusRecommendations,
		SessionStatusFinished, SessionStatusQuoteRequested:
		return true
	}
	return false
}

type ConfigurationSession struct {
	Id                 uuid.UUID
	Token              string
	Answers            recommendation.Answers
	RecommendedOptions []string
	Status             SessionStatus
	Version            int
	UserId             *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (s *ConfigurationSession) ExpiresAt(ttl time.Duration) time.Time {
	return s.CreatedAt.Add(ttl)
}
