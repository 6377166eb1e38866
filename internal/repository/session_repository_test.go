package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meesho-recon/internal/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := newSessionRepository(time.Now)

	sess, err := repo.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, repo.Count())

	got, err := repo.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, repo.Delete(sess.ID))
	_, err = repo.Get(sess.ID)
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
	assert.True(t, errors.Is(repo.Delete(sess.ID), domain.ErrSessionNotFound))
}

func TestSessionRepository_EvictIdle(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	repo := newSessionRepository(clock.now)

	stale, err := repo.Create()
	require.NoError(t, err)
	fresh, err := repo.Create()
	require.NoError(t, err)

	clock.t = clock.t.Add(50 * time.Minute)
	_, err = repo.Get(fresh.ID)
	require.NoError(t, err)

	clock.t = clock.t.Add(20 * time.Minute)
	assert.Equal(t, 1, repo.EvictIdle(time.Hour))

	_, err = repo.Get(stale.ID)
	assert.Error(t, err)
	_, err = repo.Get(fresh.ID)
	assert.NoError(t, err)
}
