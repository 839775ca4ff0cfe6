package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// OptionType matches the option type case-insensitively.
type OptionType struct {
	Type string
}

func (s OptionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(type) = ?", strings.ToLower(strings.TrimSpace(s.Type)))
}

// OptionCategory is the "secteur" filter of the public API.
type OptionCategory struct {
	Category string
}

func (s OptionCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(s.Category)))
}

type CatalogOrder struct{}

func (s CatalogOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("name ASC")
}

type ByQuestionID struct {
	QuestionID uuid.UUID
}

func (s ByQuestionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question_id = ?", s.QuestionID)
}

type ByQuestionIDs struct {
	QuestionIDs []uuid.UUID
}

func (s ByQuestionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question_id IN ?", s.QuestionIDs)
}
