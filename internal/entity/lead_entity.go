package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeadKind string

const (
	LeadKindQuote LeadKind = "devis"
	LeadKindAudit LeadKind = "audit"
)

type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "nouveau"
	LeadStatusContacted  LeadStatus = "contacte"
	LeadStatusInProgress LeadStatus = "en_cours"
	LeadStatusQuoteSent  LeadStatus = "devis_envoye"
	LeadStatusAccepted   LeadStatus = "accepte"
	LeadStatusRefused    LeadStatus = "refuse"
	LeadStatusDone       LeadStatus = "termine"
)

var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadStatusNew:        {LeadStatusContacted, LeadStatusInProgress, LeadStatusRefused},
	LeadStatusContacted:  {LeadStatusInProgress, LeadStatusQuoteSent, LeadStatusRefused},
	LeadStatusInProgress: {LeadStatusQuoteSent, LeadStatusDone, LeadStatusRefused},
	LeadStatusQuoteSent:  {LeadStatusAccepted, LeadStatusRefused},
	LeadStatusAccepted:   {LeadStatusDone},
	LeadStatusRefused:    {},
	LeadStatusDone:       {},
}

func (s LeadStatus) Valid() bool {
	_, ok := leadTransitions[s]
	return ok
}

func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	for _, allowed := range leadTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s LeadStatus) IsTerminal() bool {
	return s.Valid() && len(leadTransitions[s]) == 0
}

type Lead struct {
	Id                uuid.UUID
	Reference         string
	Kind              LeadKind
	Status            LeadStatus
	FullName          string
	Email             string
	Phone             string
	Company           string
	Message           string
	WebsiteUrl        string
	Goals             []string
	SessionToken      *string
	UserId            *uuid.UUID
	SelectedOptions   []string
	AutomationOptions []string
	TotalMin          float64
	TotalMax          float64
	TotalMinTtc       float64
	TotalMaxTtc       float64
	AdminNote         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
