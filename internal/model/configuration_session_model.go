package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConfigurationSession struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Token              string                      `gorm:"type:varchar(64);uniqueIndex;not null"`
	Answers            datatypes.JSON              `gorm:"type:jsonb"`
	RecommendedOptions datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status             string                      `gorm:"type:varchar(40);not null;index"`
	Version            int                         `gorm:"not null"`
	UserId             *uuid.UUID                  `gorm:"type:uuid;index"`
	CreatedAt          time.Time                   `gorm:"index"`
	UpdatedAt          time.Time
}

func (ConfigurationSession) TableName() string {
	return "configuration_sessions"
}
