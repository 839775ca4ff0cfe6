// Package pricing turns a selection of catalog options into a price range.
package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// AutomationKind marks options priced on request. Matched against both
// category and type, trimmed and case-folded.
const AutomationKind = "automatisation"

var ErrDuplicateSelection = errors.New("duplicate option in selection")

type Option struct {
	Id       string
	Name     string
	Category string
	Type     string
	Price    float64
	PriceMin *float64
	PriceMax *float64
}

// Bounds returns the price range, falling back to the fixed price for a
// missing bound. min <= max always holds on the result.
func (o Option) Bounds() (float64, float64) {
	min, max := o.rawBounds()
	if max < min {
		max = min
	}
	return min, max
}

func (o Option) rawBounds() (float64, float64) {
	min, max := o.Price, o.Price
	if o.PriceMin != nil {
		min = *o.PriceMin
	}
	if o.PriceMax != nil {
		max = *o.PriceMax
	}
	return min, max
}

func (o Option) IsAutomation() bool {
	return isAutomation(o.Category) || isAutomation(o.Type)
}

func isAutomation(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), AutomationKind)
}

type Line struct {
	OptionId  string
	Name      string
	Min       float64
	Max       float64
	OnRequest bool
}

type Quote struct {
	TotalMin        float64
	TotalMax        float64
	AutomationCount int
	AutomationIds   []string
	UnknownIds      []string
	Lines           []Line
}

// Calculate sums the selected options of catalog. Automation options are
// counted but excluded from the totals, ids missing from the catalog are
// skipped and reported in UnknownIds. Each id may appear once.
func Calculate(catalog []Option, selectedIds []string) (Quote, error) {
	quote := Quote{
		AutomationIds: []string{},
		UnknownIds:    []string{},
		Lines:         []Line{},
	}

	index := make(map[string]Option, len(catalog))
	for _, opt := range catalog {
		index[opt.Id] = opt
	}

	seen := make(map[string]struct{}, len(selectedIds))
	for _, id := range selectedIds {
		if _, dup := seen[id]; dup {
			return Quote{}, fmt.Errorf("%w: %s", ErrDuplicateSelection, id)
		}
		seen[id] = struct{}{}
	}

	for _, id := range selectedIds {
		opt, ok := index[id]
		if !ok {
			quote.UnknownIds = append(quote.UnknownIds, id)
			continue
		}

		if opt.IsAutomation() {
			quote.AutomationCount++
			quote.AutomationIds = append(quote.AutomationIds, opt.Id)
			quote.Lines = append(quote.Lines, Line{OptionId: opt.Id, Name: opt.Name, OnRequest: true})
			continue
		}

		min, max := opt.Bounds()
		quote.TotalMin += min
		quote.TotalMax += max
		quote.Lines = append(quote.Lines, Line{OptionId: opt.Id, Name: opt.Name, Min: min, Max: max})
	}

	return quote, nil
}

// ValidateBounds checks a price definition before it enters the catalog.
func ValidateBounds(price float64, priceMin, priceMax *float64) error {
	if price < 0 {
		return errors.New("price must not be negative")
	}
	if priceMin != nil && *priceMin < 0 {
		return errors.New("price_min must not be negative")
	}
	if priceMax != nil && *priceMax < 0 {
		return errors.New("price_max must not be negative")
	}
	min, max := Option{Price: price, PriceMin: priceMin, PriceMax: priceMax}.rawBounds()
	if min > max {
		return fmt.Errorf("price_min (%.2f) must not exceed price_max (%.2f)", min, max)
	}
	return nil
}
