package model

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label       string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(50)"`
	Cardinality string    `gorm:"type:varchar(20);not null"` // single, multiple
	SortOrder   int       `gorm:"not null;index"`
	IsActive    bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuestionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Value      string    `gorm:"type:varchar(255);not null"`
	SortOrder  int       `gorm:"not null"`
	// JSON array of option ids. Kept as text because older rows hold a
	// JSON-encoded string instead of a native array.
	RecommendedOptions string `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Answer) TableName() string {
	return "answers"
}
