package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	CardinalitySingle   = "single"
	CardinalityMultiple = "multiple"
)

type Question struct {
	Id          uuid.UUID
	Label       string
	Category    string
	Cardinality string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Question) IsMultiple() bool {
	return q.Cardinality == CardinalityMultiple
}

type Answer struct {
	Id         uuid.UUID
	QuestionId uuid.UUID
	Value      string
	SortOrder  int
	// Raw stored list, parsed by the recommendation engine.
	RecommendedRaw string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
