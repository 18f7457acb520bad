// File: services/admin_sessions.go
package services

import (
	"context"
	"sync"
	"time"

	"wanderlust/logger"
	"wanderlust/repository"
)

type adminSession struct {
	shell    *Shell
	lastSeen time.Time
}

// AdminSessions gives every admin browser session its own Shell and AdminStore, and tears
// down sessions that have been inactive for longer than the idle timeout.
type AdminSessions struct {
	repos repository.Manager
	idle  time.Duration
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*adminSession
}

// NewAdminSessions creates an empty registry.
func NewAdminSessions(repos repository.Manager, idle time.Duration) *AdminSessions {
	return &AdminSessions{
		repos:    repos,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[string]*adminSession),
	}
}

// Acquire returns the shell for id, creating it on first use, and marks the session active.
func (a *AdminSessions) Acquire(id string) *Shell {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[id]
	if !ok {
		logger.Info.Printf("[AdminSessions.Acquire] opening admin session %s", id)
		s = &adminSession{shell: NewShell(NewAdminStore(a.repos))}
		a.sessions[id] = s
	}
	s.lastSeen = a.now()
	return s.shell
}

// Release closes the session's store. Releasing an unknown id is a no-op.
func (a *AdminSessions) Release(id string) {
	a.mu.Lock()
	s, ok := a.sessions[id]
	delete(a.sessions, id)
	a.mu.Unlock()

	if ok {
		s.shell.Store.Close()
		logger.Info.Printf("[AdminSessions.Release] closed admin session %s", id)
	}
}

// Len returns the number of open sessions.
func (a *AdminSessions) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// CleanupInactive closes every session idle for longer than the timeout.
func (a *AdminSessions) CleanupInactive() {
	a.mu.Lock()
	var stale []*adminSession
	for id, s := range a.sessions {
		if a.now().Sub(s.lastSeen) > a.idle {
			logger.Info.Printf("[AdminSessions.CleanupInactive] removing idle admin session %s", id)
			stale = append(stale, s)
			delete(a.sessions, id)
		}
	}
	a.mu.Unlock()

	for _, s := range stale {
		s.shell.Store.Close()
	}
}

// Run calls CleanupInactive every interval until ctx is done, then closes all sessions.
func (a *AdminSessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.closeAll()
			return
		case <-ticker.C:
			a.CleanupInactive()
		}
	}
}

func (a *AdminSessions) closeAll() {
	a.mu.Lock()
	sessions := a.sessions
	a.sessions = make(map[string]*adminSession)
	a.mu.Unlock()

	for _, s := range sessions {
		s.shell.Store.Close()
	}
}
