package service

import (
	"context"
	"testing"
	"time"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/repository/specification"
	"agency-configurator-be/pkg/events"
	"agency-configurator-be/pkg/recommendation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusNew), created.Status)
	assert.Equal(t, 1, created.Version)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, testNow.Add(30*24*time.Hour), created.ExpiresAt)

	f.clock.Advance(time.Minute)
	saved, err := f.sessions.SaveProgress(ctx, &dto.SaveSessionRequest{
		Token:   created.Token,
		Answers: recommendation.Answers{"Q1": recommendation.Single("PME")},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusInProgress), saved.Status)
	assert.Equal(t, 2, saved.Version)
	assert.True(t, saved.UpdatedAt.After(saved.CreatedAt))

	_, err = f.sessions.UpdateRecommendations(ctx, created.Token, []string{"seo"})
	require.NoError(t, err)

	done, err := f.sessions.Complete(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusQuoteRequested), done.Status)
	assert.Equal(t, 4, done.Version)
	assert.Equal(t, []string{events.TypeConfigurationComplete}, f.events.types())

	stored, err := f.sessions.Get(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"seo"}, stored.RecommendedOptions)
	assert.Equal(t, recommendation.Single("PME"), stored.Answers["Q1"])
	assert.Equal(t, testNow, stored.CreatedAt.UTC())
}

func TestSessionCreateWithAnswersIsInProgress(t *testing.T) {
	f := newFixture(t)

	res, err := f.sessions.Create(context.Background(), recommendation.Answers{"Q3": recommendation.Multi("Vendre", "Informer")})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusInProgress), res.Status)

	stored, err := f.sessions.Get(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, recommendation.Multi("Vendre", "Informer"), stored.Answers["Q3"])
}

func TestSessionSaveRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	created, err := f.sessions.Create(context.Background(), nil)
	require.NoError(t, err)

	_, err = f.sessions.SaveProgress(context.Background(), &dto.SaveSessionRequest{Token: created.Token, Status: "archived"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSessionUnknownToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.sessions.Get(ctx, "missing")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = f.sessions.SaveProgress(ctx, &dto.SaveSessionRequest{Token: "missing"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = f.sessions.Get(ctx, "  ")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	err = f.sessions.Delete(ctx, "missing")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSessionVersionCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)

	stale := created.Version
	_, err = f.sessions.SaveProgress(ctx, &dto.SaveSessionRequest{Token: created.Token, Version: &stale})
	require.NoError(t, err)

	// the second writer still holds version 1
	_, err = f.sessions.SaveProgress(ctx, &dto.SaveSessionRequest{Token: created.Token, Version: &stale})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// without a version the last write wins
	res, err := f.sessions.SaveProgress(ctx, &dto.SaveSessionRequest{Token: created.Token})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Version)
}

func TestSessionLinkUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)

	userId := uuid.New()
	require.NoError(t, f.sessions.LinkUser(ctx, created.Token, userId))

	session, err := f.uow.NewUnitOfWork(ctx).ConfigurationSessionRepository().FindOne(ctx, specification.ByToken{Token: created.Token})
	require.NoError(t, err)
	require.NotNil(t, session.UserId)
	assert.Equal(t, userId, *session.UserId)
}

func TestSessionCleanupExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)

	f.clock.Advance(10 * 24 * time.Hour)
	recent, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)

	f.clock.Advance(21 * 24 * time.Hour)
	res, err := f.sessions.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, testNow.Add(24*time.Hour), res.Cutoff)

	_, err = f.sessions.Get(ctx, old.Token)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	_, err = f.sessions.Get(ctx, recent.Token)
	assert.NoError(t, err)
}

func TestSessionCleanupLoopFollowsClock(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expired, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		f.sessions.RunCleanupLoop(ctx, time.Hour)
		close(stopped)
	}()

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	require.NoError(t, f.clock.BlockUntilContext(waitCtx, 1))

	f.clock.Advance(31 * 24 * time.Hour)
	assert.Eventually(t, func() bool {
		_, err := f.sessions.Get(ctx, expired.Token)
		return apperror.IsKind(err, apperror.KindNotFound)
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestSessionCleanupLoopDisabled(t *testing.T) {
	f := newFixture(t)

	done := make(chan struct{})
	go func() {
		f.sessions.RunCleanupLoop(context.Background(), 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop with no interval should return at once")
	}
}

func TestSessionDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.sessions.Create(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, f.sessions.Delete(ctx, created.Token))

	_, err = f.sessions.Get(ctx, created.Token)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
