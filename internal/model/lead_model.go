package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lead struct {
	Id                uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Reference         string                      `gorm:"type:varchar(20);uniqueIndex;not null"`
	Kind              string                      `gorm:"type:varchar(20);not null;index"` // devis, audit
	Status            string                      `gorm:"type:varchar(30);not null;index"`
	FullName          string                      `gorm:"type:varchar(255);not null"`
	Email             string                      `gorm:"type:varchar(255);not null;index"`
	Phone             string                      `gorm:"type:varchar(50)"`
	Company           string                      `gorm:"type:varchar(255)"`
	Message           string                      `gorm:"type:text"`
	WebsiteUrl        string                      `gorm:"type:varchar(500)"`
	Goals             datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	SessionToken      *string                     `gorm:"type:varchar(64);index"`
	UserId            *uuid.UUID                  `gorm:"type:uuid;index"`
	SelectedOptions   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	AutomationOptions datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	TotalMin          float64
	TotalMax          float64
	TotalMinTtc       float64
	TotalMaxTtc       float64
	AdminNote         string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (Lead) TableName() string {
	return "leads"
}
