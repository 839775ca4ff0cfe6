package service

import (
	"context"
	"testing"
	"time"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)
	ctx := context.Background()

	session, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)
	_, err = f.sessions.Create(ctx, nil)
	require.NoError(t, err)

	_, err = f.leads.SubmitQuote(ctx, &dto.SubmitQuoteRequest{
		ContactRequest:    contact(),
		SelectedOptionIds: []string{"seo"},
		SessionToken:      session.Token,
	})
	require.NoError(t, err)

	stats, err := NewAdminService(f.uow, logger.NewNopLogger()).GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.AdminDashboardStats{
		ActiveOptions: 3,
		TotalLeads:    1,
		NewLeads:      1,
		OpenSessions:  2,
		QuoteSessions: 1,
	}, stats)
}

func TestParseLogTime(t *testing.T) {
	ts := parseLogTime("2024-03-01T10:00:00.123Z")
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, 123000000, ts.Nanosecond())

	assert.Equal(t, time.May, parseLogTime("2024-05-02T08:00:00.000+0200").Month())
	assert.True(t, parseLogTime("yesterday").IsZero())
}
