package model

import "time"

type Option struct {
	Id          string   `gorm:"type:varchar(100);primaryKey"`
	Name        string   `gorm:"type:varchar(255);not null"`
	Description string   `gorm:"type:text"`
	Category    string   `gorm:"type:varchar(50);index"` // design, seo, automatisation...
	Type        string   `gorm:"type:varchar(50);index"` // pack_base, fonctionnalite, automatisation
	Price       float64  `gorm:"not null"`
	PriceMin    *float64 `gorm:"column:price_min"`
	PriceMax    *float64 `gorm:"column:price_max"`
	IsMandatory bool     `gorm:"column:mandatory;not null"`
	IsActive    bool     `gorm:"column:active;not null;index"`
	SortOrder   int      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Option) TableName() string {
	return "options"
}
