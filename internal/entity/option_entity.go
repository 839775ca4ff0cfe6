package entity

import (
	"time"

	"agency-configurator-be/pkg/pricing"
)

const (
	OptionTypePackBase       = "pack_base"
	OptionTypeFeature        = "fonctionnalite"
	OptionCategoryAutomation = "automatisation"
)

type Option struct {
	Id          string
	Name        string
	Description string
	Category    string
	Type        string
	Price       float64
	PriceMin    *float64
	PriceMax    *float64
	IsMandatory bool
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Option) Pricing() pricing.Option {
	return pricing.Option{
		Id:       o.Id,
		Name:     o.Name,
		Category: o.Category,
		Type:     o.Type,
		Price:    o.Price,
		PriceMin: o.PriceMin,
		PriceMax: o.PriceMax,
	}
}

func PricingCatalog(options []*Option) []pricing.Option {
	out := make([]pricing.Option, 0, len(options))
	for _, o := range options {
		out = append(out, o.Pricing())
	}
	return out
}
