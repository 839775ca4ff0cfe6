package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContactRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"max=30"`
	Company  string `json:"company" validate:"max=120"`
	Message  string `json:"message" validate:"max=2000"`
}

func (r *ContactRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Message = strings.TrimSpace(r.Message)
}

type SubmitQuoteRequest struct {
	ContactRequest
	SelectedOptionIds []string   `json:"selectedOptionIds" validate:"unique,max=200,dive,required"`
	SessionToken      string     `json:"sessionToken" validate:"max=64"`
	UserId            *uuid.UUID `json:"-"`
}

func (r *SubmitQuoteRequest) Normalize() {
	r.ContactRequest.Normalize()
	r.SessionToken = strings.TrimSpace(r.SessionToken)
}

type SubmitAuditRequest struct {
	ContactRequest
	WebsiteUrl string     `json:"websiteUrl" validate:"required,url,max=500"`
	Goals      []string   `json:"goals" validate:"max=10,dive,required,max=200"`
	UserId     *uuid.UUID `json:"-"`
}

func (r *SubmitAuditRequest) Normalize() {
	r.ContactRequest.Normalize()
	r.WebsiteUrl = strings.TrimSpace(r.WebsiteUrl)
	goals := make([]string, 0, len(r.Goals))
	for _, g := range r.Goals {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}
	r.Goals = goals
}

type LeadResponse struct {
	Id                uuid.UUID `json:"id"`
	Reference         string    `json:"reference"`
	Kind              string    `json:"kind"`
	Status            string    `json:"status"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Company           string    `json:"company"`
	Message           string    `json:"message"`
	WebsiteUrl        string    `json:"websiteUrl,omitempty"`
	Goals             []string  `json:"goals"`
	SessionToken      *string   `json:"sessionToken"`
	SelectedOptions   []string  `json:"selectedOptions"`
	AutomationOptions []string  `json:"automationOptions"`
	TotalMin          float64   `json:"totalMin"`
	TotalMax          float64   `json:"totalMax"`
	TotalMinTtc       float64   `json:"totalMinTtc"`
	TotalMaxTtc       float64   `json:"totalMaxTtc"`
	AdminNote         string    `json:"adminNote,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type SubmitLeadResponse struct {
	Id        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	TotalMin  float64   `json:"totalMin"`
	TotalMax  float64   `json:"totalMax"`
	// Ids excluded from the totals and priced on request.
	AutomationIds []string `json:"automationIds"`
	UnknownIds    []string `json:"unknownIds"`
}

type ListLeadsRequest struct {
	Status string `query:"status"`
	Kind   string `query:"kind"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type ListLeadsResponse struct {
	Leads []*LeadResponse `json:"leads"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type UpdateLeadStatusRequest struct {
	Id        uuid.UUID `json:"-"`
	Status    string    `json:"status" validate:"required"`
	AdminNote *string   `json:"adminNote" validate:"omitempty,max=2000"`
}

// LeadNotificationMessage is the in-process payload that triggers emails.
type LeadNotificationMessage struct {
	LeadId uuid.UUID `json:"leadId"`
}
