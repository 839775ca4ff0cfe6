package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func testCatalog() []Option {
	return []Option{
		{Id: "A", Name: "Design", Category: "design", Type: "pack_base", PriceMin: ptr(500), PriceMax: ptr(800)},
		{Id: "B", Name: "Zapier", Category: "automatisation", Type: "fonctionnalite", Price: 300},
		{Id: "C", Name: "SEO", Category: "seo", Type: "fonctionnalite", Price: 250},
		{Id: "D", Name: "CRM sync", Category: "integration", Type: "  AutoMatisation ", Price: 900},
		{Id: "E", Name: "Blog", Category: "contenu", Type: "fonctionnalite", PriceMin: ptr(150)},
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name            string
		selected        []string
		wantMin         float64
		wantMax         float64
		wantAutomations []string
		wantUnknown     []string
	}{
		{
			name:            "empty selection",
			selected:        nil,
			wantAutomations: []string{},
			wantUnknown:     []string{},
		},
		{
			name:            "range plus automation",
			selected:        []string{"A", "B"},
			wantMin:         500,
			wantMax:         800,
			wantAutomations: []string{"B"},
			wantUnknown:     []string{},
		},
		{
			name:            "fixed price stands in for both bounds",
			selected:        []string{"A", "C"},
			wantMin:         750,
			wantMax:         1050,
			wantAutomations: []string{},
			wantUnknown:     []string{},
		},
		{
			name:            "automation detected on type with casing and spaces",
			selected:        []string{"C", "D"},
			wantMin:         250,
			wantMax:         250,
			wantAutomations: []string{"D"},
			wantUnknown:     []string{},
		},
		{
			name:            "unknown ids are skipped and reported",
			selected:        []string{"C", "ghost"},
			wantMin:         250,
			wantMax:         250,
			wantAutomations: []string{},
			wantUnknown:     []string{"ghost"},
		},
		{
			name:            "min only range never inverts",
			selected:        []string{"E"},
			wantMin:         150,
			wantMax:         150,
			wantAutomations: []string{},
			wantUnknown:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Calculate(testCatalog(), tt.selected)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMin, quote.TotalMin)
			assert.Equal(t, tt.wantMax, quote.TotalMax)
			assert.Equal(t, len(tt.wantAutomations), quote.AutomationCount)
			assert.Equal(t, tt.wantAutomations, quote.AutomationIds)
			assert.Equal(t, tt.wantUnknown, quote.UnknownIds)
			assert.LessOrEqual(t, quote.TotalMin, quote.TotalMax)
		})
	}
}

func TestCalculateEverySubsetKeepsMinBelowMax(t *testing.T) {
	catalog := testCatalog()
	ids := make([]string, len(catalog))
	for i, o := range catalog {
		ids[i] = o.Id
	}

	for mask := 0; mask < 1<<len(ids); mask++ {
		var subset []string
		for i, id := range ids {
			if mask&(1<<i) != 0 {
				subset = append(subset, id)
			}
		}
		quote, err := Calculate(catalog, subset)
		require.NoError(t, err)
		assert.LessOrEqual(t, quote.TotalMin, quote.TotalMax, "subset %v", subset)
	}
}

func TestCalculateRejectsDuplicates(t *testing.T) {
	_, err := Calculate(testCatalog(), []string{"A", "C", "A"})
	assert.ErrorIs(t, err, ErrDuplicateSelection)
}

func TestCalculateLines(t *testing.T) {
	quote, err := Calculate(testCatalog(), []string{"A", "B"})
	require.NoError(t, err)
	require.Len(t, quote.Lines, 2)

	assert.Equal(t, Line{OptionId: "A", Name: "Design", Min: 500, Max: 800}, quote.Lines[0])
	assert.True(t, quote.Lines[1].OnRequest)
	assert.Zero(t, quote.Lines[1].Max)
}

func TestValidateBounds(t *testing.T) {
	assert.NoError(t, ValidateBounds(100, nil, nil))
	assert.NoError(t, ValidateBounds(0, ptr(100), ptr(200)))
	assert.Error(t, ValidateBounds(0, ptr(300), ptr(200)))
	assert.Error(t, ValidateBounds(-1, nil, nil))
	assert.Error(t, ValidateBounds(0, ptr(-5), ptr(10)))
	// a lone minimum above the fixed price is an inverted range
	assert.Error(t, ValidateBounds(0, ptr(100), nil))
}

func TestWithTax(t *testing.T) {
	assert.Equal(t, 600.0, WithTax(500, DefaultTaxRate))
	assert.Equal(t, 0.0, WithTax(0, DefaultTaxRate))
	assert.Equal(t, 123.46, WithTax(102.88, DefaultTaxRate))
}
