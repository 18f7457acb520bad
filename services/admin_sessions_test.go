// file: services/admin_sessions_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wanderlust/repository"
)

func TestAdminSessions_AcquireReusesShell(t *testing.T) {
	reg := NewAdminSessions(repository.NewInMemoryManager(), time.Minute)

	a := reg.Acquire("s1")
	assert.Same(t, a, reg.Acquire("s1"))
	assert.NotSame(t, a, reg.Acquire("s2"))
	assert.Equal(t, 2, reg.Len())
}

func TestAdminSessions_ReleaseClosesStore(t *testing.T) {
	reg := NewAdminSessions(repository.NewInMemoryManager(), time.Minute)
	shell := reg.Acquire("s1")

	reg.Release("s1")
	reg.Release("s1")

	assert.Equal(t, 0, reg.Len())
	assert.ErrorIs(t, shell.Store.Destinations.Fetch(context.Background()), ErrStoreClosed)
}

func TestAdminSessions_CleanupInactive(t *testing.T) {
	reg := NewAdminSessions(repository.NewInMemoryManager(), time.Minute)
	now := time.Now()
	reg.now = func() time.Time { return now }

	old := reg.Acquire("old")
	now = now.Add(45 * time.Second)
	reg.Acquire("fresh")
	now = now.Add(30 * time.Second)

	reg.CleanupInactive()

	assert.Equal(t, 1, reg.Len())
	assert.ErrorIs(t, old.Store.Users.Fetch(context.Background()), ErrStoreClosed)
}

func TestAdminSessions_RunStopsWithContext(t *testing.T) {
	reg := NewAdminSessions(repository.NewInMemoryManager(), time.Minute)
	reg.Acquire("s1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Run(ctx, 10*time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	assert.Equal(t, 0, reg.Len())
}
