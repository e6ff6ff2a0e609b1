package service

import (
	"testing"
	"time"

	"socrates-bot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	store := NewSessionStore(time.Hour)

	assert.Nil(t, store.Get(1))

	sess := &model.Session{Kind: model.KindRegistration, Step: model.StepName}
	store.Put(1, sess)

	got := store.Get(1)
	require.NotNil(t, got)
	assert.Equal(t, model.KindRegistration, got.Kind)
	assert.False(t, got.UpdatedAt.IsZero())
	assert.Equal(t, 1, store.Len())

	store.Delete(1)
	assert.Nil(t, store.Get(1))
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_OneSessionPerIdentity(t *testing.T) {
	store := NewSessionStore(time.Hour)

	store.Put(7, &model.Session{Kind: model.KindRegistration, Step: model.StepEmail})
	store.Put(7, &model.Session{Kind: model.KindAdminAction, Action: model.ActionPromote})

	got := store.Get(7)
	require.NotNil(t, got)
	assert.Equal(t, model.KindAdminAction, got.Kind)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_Sweep(t *testing.T) {
	store := NewSessionStore(time.Hour)

	stale := &model.Session{Kind: model.KindRegistration}
	fresh := &model.Session{Kind: model.KindRegistration}
	store.Put(1, stale)
	store.Put(2, fresh)

	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)

	evicted := store.Sweep(time.Now())
	assert.Equal(t, 1, evicted)
	assert.Nil(t, store.Get(1))
	assert.NotNil(t, store.Get(2))
}

func TestSessionStore_SweepDisabled(t *testing.T) {
	store := NewSessionStore(0)

	sess := &model.Session{Kind: model.KindRegistration}
	store.Put(1, sess)
	sess.UpdatedAt = time.Now().Add(-100 * time.Hour)

	assert.Equal(t, 0, store.Sweep(time.Now()))
	assert.NotNil(t, store.Get(1))
}
