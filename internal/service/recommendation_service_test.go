package service

import (
	"context"
	"testing"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/pkg/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendCreatesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q1 := f.seedQuestion(t, "Structure", 1, entity.CardinalitySingle, map[string]string{"PME": `["seo","hosting"]`})
	q2 := f.seedQuestion(t, "Budget", 2, entity.CardinalitySingle, map[string]string{"Serré": `"[\"hosting\",\"no-automation\"]"`})

	res, err := f.recommend.Recommend(ctx, &dto.RecommendationRequest{
		Answers: recommendation.Answers{
			q1.String(): recommendation.Single("PME"),
			q2.String(): recommendation.Single("Serré"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hosting", "no-automation", "seo"}, res.RecommendedOptionIds)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.AnsweredPairs, 2)
	assert.Equal(t, "Structure", res.AnsweredPairs[0].Question)
	require.NotEmpty(t, res.SessionId)

	session, err := f.sessions.Get(ctx, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusRecommendations), session.Status)
	assert.Equal(t, res.RecommendedOptionIds, session.RecommendedOptions)
	assert.Len(t, session.Answers, 2)
}

func TestRecommendReusesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q1 := f.seedQuestion(t, "Structure", 1, entity.CardinalitySingle, map[string]string{"PME": `["seo"]`})

	created, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)

	res, err := f.recommend.Recommend(ctx, &dto.RecommendationRequest{
		Answers:      recommendation.Answers{q1.String(): recommendation.Single("PME")},
		SessionToken: created.Token,
	})
	require.NoError(t, err)
	assert.Equal(t, created.Token, res.SessionId)

	session, err := f.sessions.Get(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"seo"}, session.RecommendedOptions)
	assert.Equal(t, 3, session.Version)
}

func TestRecommendUnknownTokenStartsNewSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q1 := f.seedQuestion(t, "Structure", 1, entity.CardinalitySingle, map[string]string{"PME": `["seo"]`})

	res, err := f.recommend.Recommend(ctx, &dto.RecommendationRequest{
		Answers:      recommendation.Answers{q1.String(): recommendation.Single("PME")},
		SessionToken: "expired-token",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "expired-token", res.SessionId)

	_, err = f.sessions.Get(ctx, res.SessionId)
	assert.NoError(t, err)
}

func TestRecommendReportsUnknownAnswers(t *testing.T) {
	f := newFixture(t)
	q1 := f.seedQuestion(t, "Structure", 1, entity.CardinalitySingle, map[string]string{"PME": `["seo"]`})

	res, err := f.recommend.Recommend(context.Background(), &dto.RecommendationRequest{
		Answers: recommendation.Answers{
			q1.String(): recommendation.Single("Grand compte"),
			"ghost":     recommendation.Single("x"),
		},
	})
	require.NoError(t, err)
	assert.Empty(t, res.RecommendedOptionIds)
	assert.Len(t, res.Warnings, 2)
}
