package settings

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"timekeep/internal/store"
)

// ErrInvalidTheme indicates an unknown theme name.
var ErrInvalidTheme = errors.New("invalid theme")

// Service owns the UI preferences document.
type Service struct {
	store  store.Store
	logger *slog.Logger

	mu    sync.Mutex
	theme store.Theme
}

// NewService creates a new settings service. Call Initialize before use.
func NewService(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger, theme: store.ThemeLight}
}

// Initialize loads the persisted theme.
func (s *Service) Initialize(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("settings unavailable, using defaults", "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = snap.Theme
	return nil
}

// SetTheme switches between light and dark.
func (s *Service) SetTheme(ctx context.Context, theme store.Theme) error {
	if theme != store.ThemeLight && theme != store.ThemeDark {
		return ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	if err := s.store.SaveTheme(ctx, theme); err != nil {
		s.logger.Warn("failed to persist theme, continuing in memory", "error", err)
	}
	return nil
}

// Theme returns the current theme.
func (s *Service) Theme() store.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}
