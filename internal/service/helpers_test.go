package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/pkg/testdb"
	"agency-configurator-be/internal/repository/memory"
	"agency-configurator-be/internal/repository/unitofwork"
	"agency-configurator-be/pkg/clock"
	"agency-configurator-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakeEventPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakeEventPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fakeQueue struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (q *fakeQueue) Publish(_ context.Context, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.payloads = append(q.payloads, payload)
	return nil
}

type fixture struct {
	uow           unitofwork.RepositoryFactory
	clock         *clock.Mock
	events        *fakeEventPublisher
	queue         *fakeQueue
	catalog       ICatalogService
	pricing       IPricingService
	questionnaire IQuestionnaireService
	sessions      IConfigurationSessionService
	recommend     IRecommendationService
	leads         ILeadService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.New(t)
	log := logger.NewNopLogger()
	f := &fixture{
		uow:    unitofwork.NewRepositoryFactory(db),
		clock:  clock.NewMock(testNow),
		events: &fakeEventPublisher{},
		queue:  &fakeQueue{},
	}
	f.catalog = NewCatalogService(f.uow, memory.NewOptionCache(f.clock, time.Minute), f.clock, log)
	f.pricing = NewPricingService(f.catalog, 0.2)
	f.questionnaire = NewQuestionnaireService(f.uow, f.catalog, f.clock, log)
	f.sessions = NewConfigurationSessionService(f.uow, f.clock, 30*24*time.Hour, f.events, log)
	f.recommend = NewRecommendationService(f.questionnaire, f.sessions, log)
	f.leads = NewLeadService(f.uow, f.pricing, f.sessions, f.events, f.queue, f.clock, log)
	return f
}

func price(v float64) *float64 { return &v }

// seedOptions stores the sample catalog straight through the repository, so
// the option cache stays cold.
func (f *fixture) seedOptions(t *testing.T) {
	t.Helper()

	options := []*entity.Option{
		{Id: "design", Name: "Design", Category: "design", Type: entity.OptionTypePackBase, PriceMin: price(500), PriceMax: price(800), IsActive: true, SortOrder: 1},
		{Id: "zapier", Name: "Zapier", Category: entity.OptionCategoryAutomation, Type: entity.OptionTypeFeature, Price: 300, IsActive: true, SortOrder: 2},
		{Id: "seo", Name: "SEO", Category: "seo", Type: entity.OptionTypeFeature, Price: 250, IsActive: true, SortOrder: 3},
		{Id: "legacy", Name: "Legacy", Category: "design", Type: entity.OptionTypeFeature, Price: 90, IsActive: false, SortOrder: 4},
	}
	repo := f.uow.NewUnitOfWork(context.Background()).OptionRepository()
	for _, o := range options {
		o.CreatedAt, o.UpdatedAt = testNow, testNow
		require.NoError(t, repo.Create(context.Background(), o))
	}
}

// seedQuestion stores a question with the given answer value to raw list map.
func (f *fixture) seedQuestion(t *testing.T, label string, order int, cardinality string, answers map[string]string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	uow := f.uow.NewUnitOfWork(ctx)
	q := &entity.Question{
		Id:          uuid.New(),
		Label:       label,
		Cardinality: cardinality,
		SortOrder:   order,
		IsActive:    true,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	require.NoError(t, uow.QuestionRepository().Create(ctx, q))

	i := 0
	for value, raw := range answers {
		i++
		require.NoError(t, uow.AnswerRepository().Create(ctx, &entity.Answer{
			Id:             uuid.New(),
			QuestionId:     q.Id,
			Value:          value,
			SortOrder:      i,
			RecommendedRaw: raw,
			CreatedAt:      testNow,
			UpdatedAt:      testNow,
		}))
	}
	return q.Id
}
