package memory

import (
	"testing"
	"time"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionCacheExpiresWithClock(t *testing.T) {
	clk := clock.NewMock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	c := NewOptionCache(clk, 5*time.Minute)

	_, ok := c.Get()
	assert.False(t, ok)

	assert.True(t, c.Set(c.Generation(), []*entity.Option{{Id: "A"}, {Id: "B"}}))

	clk.Advance(4*time.Minute + 59*time.Second)
	got, ok := c.Get()
	require.True(t, ok)
	assert.Len(t, got, 2)

	clk.Advance(time.Second)
	_, ok = c.Get()
	assert.False(t, ok)
}

func TestOptionCacheInvalidate(t *testing.T) {
	c := NewOptionCache(clock.NewMock(time.Now()), time.Minute)
	c.Set(c.Generation(), []*entity.Option{{Id: "A"}})
	c.Invalidate()

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestOptionCacheReturnsCopy(t *testing.T) {
	c := NewOptionCache(clock.NewMock(time.Now()), time.Minute)
	c.Set(c.Generation(), []*entity.Option{{Id: "A"}})

	got, _ := c.Get()
	got[0] = &entity.Option{Id: "Z"}

	again, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "A", again[0].Id)
}

func TestOptionCacheDisabledWithZeroTTL(t *testing.T) {
	c := NewOptionCache(clock.NewMock(time.Now()), 0)
	assert.False(t, c.Set(c.Generation(), []*entity.Option{{Id: "A"}}))

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestOptionCacheDropsLoadRacingInvalidate(t *testing.T) {
	c := NewOptionCache(clock.NewMock(time.Now()), time.Minute)

	generation := c.Generation()
	// an admin write lands while the store read is in flight
	c.Invalidate()

	assert.False(t, c.Set(generation, []*entity.Option{{Id: "stale"}}))
	_, ok := c.Get()
	assert.False(t, ok)

	assert.True(t, c.Set(c.Generation(), []*entity.Option{{Id: "fresh"}}))
	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh", got[0].Id)
}
