package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contact() dto.ContactRequest {
	return dto.ContactRequest{FullName: "Jeanne Martin", Email: "jeanne@example.com", Company: "Atelier"}
}

func TestSubmitQuoteRecomputesTotals(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)
	ctx := context.Background()

	res, err := f.leads.SubmitQuote(ctx, &dto.SubmitQuoteRequest{
		ContactRequest:    contact(),
		SelectedOptionIds: []string{"design", "zapier", "ghost"},
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^DEV-20240301-[0-9A-F]{6}$`), res.Reference)
	assert.Equal(t, 500.0, res.TotalMin)
	assert.Equal(t, 800.0, res.TotalMax)
	assert.Equal(t, []string{"zapier"}, res.AutomationIds)
	assert.Equal(t, []string{"ghost"}, res.UnknownIds)

	lead, err := f.leads.GetLead(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.LeadStatusNew), lead.Status)
	assert.Equal(t, []string{"design", "zapier"}, lead.SelectedOptions)
	assert.Equal(t, 960.0, lead.TotalMaxTtc)
	assert.Nil(t, lead.SessionToken)

	assert.Equal(t, []string{events.TypeLeadCreated}, f.events.types())
	require.Len(t, f.queue.payloads, 1)
	var msg dto.LeadNotificationMessage
	require.NoError(t, json.Unmarshal(f.queue.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.LeadId)
}

func TestSubmitQuoteFallsBackToSessionRecommendations(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)
	ctx := context.Background()

	session, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)
	_, err = f.sessions.UpdateRecommendations(ctx, session.Token, []string{"seo"})
	require.NoError(t, err)

	userId := uuid.New()
	res, err := f.leads.SubmitQuote(ctx, &dto.SubmitQuoteRequest{
		ContactRequest: contact(),
		SessionToken:   session.Token,
		UserId:         &userId,
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, res.TotalMin)

	lead, err := f.leads.GetLead(ctx, res.Id)
	require.NoError(t, err)
	require.NotNil(t, lead.SessionToken)
	assert.Equal(t, session.Token, *lead.SessionToken)

	stored, err := f.sessions.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusQuoteRequested), stored.Status)
	assert.Contains(t, f.events.types(), events.TypeConfigurationComplete)
}

func TestSubmitQuoteUnknownSessionIsTolerated(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)

	res, err := f.leads.SubmitQuote(context.Background(), &dto.SubmitQuoteRequest{
		ContactRequest:    contact(),
		SelectedOptionIds: []string{"seo"},
		SessionToken:      "gone",
	})
	require.NoError(t, err)

	lead, err := f.leads.GetLead(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Nil(t, lead.SessionToken)
}

func TestSubmitQuoteRequiresSelection(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)

	_, err := f.leads.SubmitQuote(context.Background(), &dto.SubmitQuoteRequest{ContactRequest: contact()})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, f.queue.payloads)
}

func TestSubmitQuoteSurvivesBrokerFailure(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)
	f.events.err = errors.New("nats down")

	res, err := f.leads.SubmitQuote(context.Background(), &dto.SubmitQuoteRequest{
		ContactRequest:    contact(),
		SelectedOptionIds: []string{"seo"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reference)
}

func TestSubmitAudit(t *testing.T) {
	f := newFixture(t)

	res, err := f.leads.SubmitAudit(context.Background(), &dto.SubmitAuditRequest{
		ContactRequest: contact(),
		WebsiteUrl:     "https://atelier.example.com",
		Goals:          []string{"SEO"},
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^AUD-`), res.Reference)

	lead, err := f.leads.GetLead(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.LeadKindAudit), lead.Kind)
	assert.Equal(t, []string{"SEO"}, lead.Goals)
}

func TestListLeads(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.clock.Advance(time.Minute)
		_, err := f.leads.SubmitQuote(ctx, &dto.SubmitQuoteRequest{ContactRequest: contact(), SelectedOptionIds: []string{"seo"}})
		require.NoError(t, err)
	}
	f.clock.Advance(time.Minute)
	_, err := f.leads.SubmitAudit(ctx, &dto.SubmitAuditRequest{ContactRequest: contact(), WebsiteUrl: "https://a.example.com"})
	require.NoError(t, err)

	all, err := f.leads.ListLeads(ctx, &dto.ListLeadsRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
	assert.Len(t, all.Leads, 2)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, string(entity.LeadKindAudit), all.Leads[0].Kind)

	quotes, err := f.leads.ListLeads(ctx, &dto.ListLeadsRequest{Kind: "devis"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), quotes.Total)
	assert.Equal(t, defaultLeadLimit, quotes.Limit)

	_, err = f.leads.ListLeads(ctx, &dto.ListLeadsRequest{Status: "perdu"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdateLeadStatus(t *testing.T) {
	f := newFixture(t)
	f.seedOptions(t)
	ctx := context.Background()

	res, err := f.leads.SubmitQuote(ctx, &dto.SubmitQuoteRequest{ContactRequest: contact(), SelectedOptionIds: []string{"seo"}})
	require.NoError(t, err)

	note := "  rappeler lundi "
	updated, err := f.leads.UpdateLeadStatus(ctx, &dto.UpdateLeadStatusRequest{Id: res.Id, Status: "contacte", AdminNote: &note})
	require.NoError(t, err)
	assert.Equal(t, "contacte", updated.Status)
	assert.Equal(t, "rappeler lundi", updated.AdminNote)
	assert.Contains(t, f.events.types(), events.TypeLeadStatusChanged)

	_, err = f.leads.UpdateLeadStatus(ctx, &dto.UpdateLeadStatusRequest{Id: res.Id, Status: "termine"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.leads.UpdateLeadStatus(ctx, &dto.UpdateLeadStatusRequest{Id: res.Id, Status: "perdu"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.leads.UpdateLeadStatus(ctx, &dto.UpdateLeadStatusRequest{Id: uuid.New(), Status: "contacte"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
