package dto

import (
	"strings"
	"time"
)

type ListOptionsRequest struct {
	Type    string `query:"type"`
	Secteur string `query:"secteur"`
}

type OptionResponse struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Price       float64   `json:"price"`
	PriceMin    *float64  `json:"priceMin"`
	PriceMax    *float64  `json:"priceMax"`
	Mandatory   bool      `json:"mandatory"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sortOrder"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ListOptionsResponse struct {
	Options []*OptionResponse `json:"options"`
}

type CreateOptionRequest struct {
	Id          string   `json:"id" validate:"required,max=100"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	Category    string   `json:"category" validate:"required,max=50"`
	Type        string   `json:"type" validate:"required,max=50"`
	Price       float64  `json:"price" validate:"gte=0"`
	PriceMin    *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax    *float64 `json:"priceMax" validate:"omitempty,gte=0"`
	Mandatory   bool     `json:"mandatory"`
	Active      *bool    `json:"active"` // defaults to true
	SortOrder   int      `json:"sortOrder"`
}

func (r *CreateOptionRequest) Normalize() {
	r.Id = strings.TrimSpace(r.Id)
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Type = strings.TrimSpace(r.Type)
}

type UpdateOptionRequest struct {
	Id          string   `json:"-"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	Category    string   `json:"category" validate:"required,max=50"`
	Type        string   `json:"type" validate:"required,max=50"`
	Price       float64  `json:"price" validate:"gte=0"`
	PriceMin    *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax    *float64 `json:"priceMax" validate:"omitempty,gte=0"`
	Mandatory   bool     `json:"mandatory"`
	Active      *bool    `json:"active"` // nil keeps the stored flag
	SortOrder   int      `json:"sortOrder"`
}

func (r *UpdateOptionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Type = strings.TrimSpace(r.Type)
}
