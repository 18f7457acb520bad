// File: services/admin_shell.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Tab is one page of the admin dashboard.
type Tab string

const (
	TabDashboard    Tab = "dashboard"
	TabUsers        Tab = "users"
	TabDestinations Tab = "destinations"
	TabBookings     Tab = "bookings"
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabDashboard, TabUsers, TabDestinations, TabBookings}

// ParseTab validates a tab name.
func ParseTab(name string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == name {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "tab", Message: fmt.Sprintf("unknown tab %q", name)}
}

// DashboardCounts are derived from the records already held; they never trigger a fetch.
type DashboardCounts struct {
	DestinationsCount int `json:"destinationsCount"`
	UsersCount        int `json:"usersCount"`
	BookingsCount     int `json:"bookingsCount"`
}

// Shell is the navigation state of one admin session over its AdminStore.
type Shell struct {
	Store *AdminStore

	mu     sync.Mutex
	active Tab
}

func NewShell(store *AdminStore) *Shell {
	return &Shell{Store: store, active: TabDashboard}
}

// ActiveTab returns the tab currently shown.
func (s *Shell) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SwitchTab makes tab active and fetches each collection it shows that was never loaded.
// Already loaded collections are left alone; refreshing is an explicit Refresh.
func (s *Shell) SwitchTab(ctx context.Context, tab Tab) error {
	s.mu.Lock()
	s.active = tab
	s.mu.Unlock()

	var errs []error
	for _, fetch := range s.idleFetches(tab) {
		if err := fetch(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Shell) idleFetches(tab Tab) []func(context.Context) error {
	var out []func(context.Context) error
	add := func(state LoadState, fetch func(context.Context) error) {
		if state == StateIdle {
			out = append(out, fetch)
		}
	}
	switch tab {
	case TabDashboard:
		add(s.Store.Destinations.State(), s.Store.Destinations.Fetch)
		add(s.Store.Users.State(), s.Store.Users.Fetch)
	case TabUsers:
		add(s.Store.Users.State(), s.Store.Users.Fetch)
	case TabDestinations:
		add(s.Store.Destinations.State(), s.Store.Destinations.Fetch)
	case TabBookings:
		add(s.Store.Bookings.State(), s.Store.Bookings.Fetch)
	}
	return out
}

// Refresh fetches the named collection regardless of its state.
func (s *Shell) Refresh(ctx context.Context, collection string) error {
	switch collection {
	case CollectionDestinations:
		return s.Store.Destinations.Fetch(ctx)
	case CollectionUsers:
		return s.Store.Users.Fetch(ctx)
	case CollectionBookings:
		return s.Store.Bookings.Fetch(ctx)
	}
	return &ValidationError{Field: "collection", Message: fmt.Sprintf("unknown collection %q", collection)}
}

// Dashboard counts the records currently held.
func (s *Shell) Dashboard() DashboardCounts {
	return DashboardCounts{
		DestinationsCount: s.Store.Destinations.Len(),
		UsersCount:        s.Store.Users.Len(),
		BookingsCount:     s.Store.Bookings.Len(),
	}
}
