package checklist

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"timekeep/internal/store"
)

// Service is the daily completion ledger: todo templates plus one completion
// record per (todo, calendar day) pair. The ledger itself permits writes to
// any date; restricting edits to the current day is the caller's policy.
type Service struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu    sync.Mutex
	state *store.Checklist
}

// NewService creates a new checklist ledger. Call Initialize before use.
func NewService(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Initialize loads the persisted checklist.
func (s *Service) Initialize(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("checklist state unavailable, starting with defaults", "error", err)
		snap = &store.Snapshot{Checklist: store.DefaultChecklist()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &snap.Checklist
	return nil
}

// AddTodo creates a todo template. The name must be unique.
func (s *Service) AddTodo(ctx context.Context, name string) (*store.DailyTodo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, todo := range s.state.Todos {
		if todo.Name == name {
			return nil, ErrDuplicateName
		}
	}

	todo := store.DailyTodo{ID: s.newID(), Name: name}
	s.state.Todos = append(s.state.Todos, todo)
	s.persistLocked(ctx)
	return &todo, nil
}

// Toggle flips the completion state for (todoID, date). A missing record is
// created completed, since absence means not completed. An empty date means
// today. Records update in place; the pair stays unique.
func (s *Service) Toggle(ctx context.Context, todoID, date string) (store.TodoCompletion, error) {
	if todoID == "" {
		return store.TodoCompletion{}, ErrInvalidInput
	}
	if date == "" {
		date = store.Date(s.now())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Completions {
		c := &s.state.Completions[i]
		if c.TodoID == todoID && c.Date == date {
			c.Completed = !c.Completed
			s.persistLocked(ctx)
			return *c, nil
		}
	}

	completion := store.TodoCompletion{TodoID: todoID, Date: date, Completed: true}
	s.state.Completions = append(s.state.Completions, completion)
	s.persistLocked(ctx)
	return completion, nil
}

// Completed reports the completion state for (todoID, date). Absence of a
// record reads as false; it is never an error.
func (s *Service) Completed(todoID, date string) bool {
	if date == "" {
		date = store.Date(s.now())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.state.Completions {
		if c.TodoID == todoID && c.Date == date {
			return c.Completed
		}
	}
	return false
}

// State returns a deep copy of the checklist document.
func (s *Service) State() store.Checklist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.Checklist{
		Todos:       append([]store.DailyTodo(nil), s.state.Todos...),
		Completions: append([]store.TodoCompletion(nil), s.state.Completions...),
	}
}

func (s *Service) persistLocked(ctx context.Context) {
	if err := s.store.SaveChecklist(ctx, s.state); err != nil {
		s.logger.Warn("failed to persist checklist state, continuing in memory", "error", err)
	}
}
