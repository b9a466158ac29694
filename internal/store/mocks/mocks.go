package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"timekeep/internal/store"
)

// Store is a mock for store.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Load(ctx context.Context) (*store.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*store.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) SaveTracking(ctx context.Context, t *store.Tracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *Store) SaveChecklist(ctx context.Context, c *store.Checklist) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *Store) SaveReminders(ctx context.Context, r *store.ReminderState) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *Store) SaveTheme(ctx context.Context, theme store.Theme) error {
	args := m.Called(ctx, theme)
	return args.Error(0)
}

func (m *Store) Save(ctx context.Context, snap *store.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}
