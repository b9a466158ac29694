package tracking

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"timekeep/internal/store"
)

// Service is the timer engine. It owns the tracking document: the activity
// list, the session history, the per-day time buckets and the single active
// marker. All mutations persist the whole document synchronously;
// persistence failures are logged and the engine keeps running in memory.
type Service struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu    sync.Mutex
	state *store.Tracking

	// Accounting for the current session. baseTotal and ticks let a close
	// reconcile tick increments against the wall-clock delta.
	baseTotal int64
	ticks     int64
}

// NewService creates a new timer engine. Call Initialize before use.
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

// Initialize loads the persisted state and reconciles a persisted active
// marker: the time elapsed while the process was down is credited once, then
// the marker is rebased to now so the next tick cannot double count.
func (s *Service) Initialize(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("tracking state unavailable, starting with defaults", "error", err)
		tracking := store.DefaultTracking(s.newID)
		snap = &store.Snapshot{Tracking: tracking}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = &snap.Tracking
	if s.state.Days == nil {
		s.state.Days = map[string]store.Day{}
	}

	if marker := s.state.Active; marker != nil {
		now := s.now()
		act := s.findByIDLocked(marker.ID)
		if act == nil {
			// The marker points at an activity that no longer exists.
			s.state.Active = nil
		} else {
			elapsed := wholeSeconds(marker.StartTime, now)
			act.TotalSeconds += elapsed
			s.creditDayLocked(store.Date(now), act, elapsed)
			marker.StartTime = now
			s.baseTotal = act.TotalSeconds
			s.ticks = 0
			s.logger.Info("resumed active session",
				"activity", act.Name, "catch_up_seconds", elapsed)
		}
		s.persistLocked(ctx)
	}

	return nil
}

// AddActivity creates a new activity with a zero total. The name must be
// unique among existing activities.
func (s *Service) AddActivity(ctx context.Context, name string) (*store.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByNameLocked(name) != nil {
		return nil, ErrDuplicateName
	}

	s.state.Activities = append(s.state.Activities, store.Activity{
		ID:   s.newID(),
		Name: name,
	})
	s.persistLocked(ctx)

	act := s.state.Activities[len(s.state.Activities)-1]
	return &act, nil
}

// Start activates the named activity, creating it on first use. If another
// activity is running its session is closed first; starting the activity
// that is already running stops it instead (toggle semantics).
func (s *Service) Start(ctx context.Context, name string) (store.Tracking, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Tracking{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findByNameLocked(name)
	if target == nil {
		s.state.Activities = append(s.state.Activities, store.Activity{
			ID:   s.newID(),
			Name: name,
		})
		target = &s.state.Activities[len(s.state.Activities)-1]
	}

	now := s.now()
	wasActive := ""
	if s.state.Active != nil {
		wasActive = s.state.Active.ID
		s.closeActiveLocked(now)
	}

	if wasActive != target.ID {
		s.state.Active = &store.ActiveMarker{ID: target.ID, StartTime: now}
		s.baseTotal = target.TotalSeconds
		s.ticks = 0
	}
	s.persistLocked(ctx)

	return s.copyStateLocked(), nil
}

// StartByID is Start addressed by activity id (the task-style surface).
// Unlike Start it never creates an activity.
func (s *Service) StartByID(ctx context.Context, id string) (store.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findByIDLocked(id)
	if target == nil {
		return store.Tracking{}, ErrActivityNotFound
	}

	now := s.now()
	wasActive := ""
	if s.state.Active != nil {
		wasActive = s.state.Active.ID
		s.closeActiveLocked(now)
	}

	if wasActive != target.ID {
		s.state.Active = &store.ActiveMarker{ID: target.ID, StartTime: now}
		s.baseTotal = target.TotalSeconds
		s.ticks = 0
	}
	s.persistLocked(ctx)

	return s.copyStateLocked(), nil
}

// Stop finalizes the running session, if any. Stopping an idle engine is a
// no-op.
func (s *Service) Stop(ctx context.Context) (store.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Active == nil {
		return s.copyStateLocked(), nil
	}

	s.closeActiveLocked(s.now())
	s.persistLocked(ctx)
	return s.copyStateLocked(), nil
}

// Tick advances the running activity by one second. Called once per
// wall-clock second while a session is open; drift against real time is
// reconciled when the session closes.
func (s *Service) Tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil || s.state.Active == nil {
		return
	}
	act := s.findByIDLocked(s.state.Active.ID)
	if act == nil {
		return
	}

	act.TotalSeconds++
	s.ticks++
	s.creditDayLocked(store.Date(s.now()), act, 1)
	s.persistLocked(ctx)
}

// Rename changes an activity's display name, keeping the new name unique.
// Past sessions keep the name they were recorded under; today's day bucket
// is renamed along with the activity.
func (s *Service) Rename(ctx context.Context, id, name string) (*store.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	act := s.findByIDLocked(id)
	if act == nil {
		return nil, ErrActivityNotFound
	}
	if existing := s.findByNameLocked(name); existing != nil && existing.ID != id {
		return nil, ErrDuplicateName
	}

	act.Name = name
	today := store.Date(s.now())
	if day, ok := s.state.Days[today]; ok {
		for i := range day.Tasks {
			if day.Tasks[i].ID == id {
				day.Tasks[i].Name = name
			}
		}
		s.state.Days[today] = day
	}
	s.persistLocked(ctx)

	copied := *act
	return &copied, nil
}

// Delete removes an activity. If it is currently running its session is
// closed first, so no timer keeps mutating state for a removed activity.
// Session history and day buckets are retained.
func (s *Service) Delete(ctx context.Context, id string) (store.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.state.Activities {
		if s.state.Activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return store.Tracking{}, ErrActivityNotFound
	}

	if s.state.Active != nil && s.state.Active.ID == id {
		s.closeActiveLocked(s.now())
	}
	s.state.Activities = append(s.state.Activities[:idx], s.state.Activities[idx+1:]...)
	s.persistLocked(ctx)

	return s.copyStateLocked(), nil
}

// State returns a deep copy of the tracking document.
func (s *Service) State() store.Tracking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

// Run drives the one-second tick until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// closeActiveLocked finalizes the running session: the activity total is
// reconciled to the activation base plus the wall-clock delta (never less
// than the ticks already credited, so totals cannot regress), a session
// record is prepended to the history, and the marker is cleared. A session
// closed within the second it started leaves no history record; every
// recorded session has endTime strictly after startTime.
func (s *Service) closeActiveLocked(now time.Time) {
	marker := s.state.Active
	act := s.findByIDLocked(marker.ID)
	if act == nil {
		s.state.Active = nil
		s.ticks = 0
		return
	}

	elapsed := wholeSeconds(marker.StartTime, now)
	credited := elapsed
	if s.ticks > credited {
		credited = s.ticks
	}
	act.TotalSeconds = s.baseTotal + credited
	if remainder := credited - s.ticks; remainder > 0 {
		s.creditDayLocked(store.Date(now), act, remainder)
	}

	if elapsed > 0 {
		session := store.Session{
			ActivityID:      act.ID,
			ActivityName:    act.Name,
			StartTime:       marker.StartTime,
			EndTime:         now,
			DurationSeconds: elapsed,
		}
		s.state.SessionHistory = append([]store.Session{session}, s.state.SessionHistory...)
	}

	s.state.Active = nil
	s.ticks = 0
	s.baseTotal = 0
}

func (s *Service) creditDayLocked(date string, act *store.Activity, seconds int64) {
	if seconds <= 0 {
		return
	}
	day := s.state.Days[date]
	for i := range day.Tasks {
		if day.Tasks[i].ID == act.ID {
			day.Tasks[i].TimeSpent += seconds
			s.state.Days[date] = day
			return
		}
	}
	day.Tasks = append(day.Tasks, store.DayTask{ID: act.ID, Name: act.Name, TimeSpent: seconds})
	s.state.Days[date] = day
}

func (s *Service) findByIDLocked(id string) *store.Activity {
	for i := range s.state.Activities {
		if s.state.Activities[i].ID == id {
			return &s.state.Activities[i]
		}
	}
	return nil
}

func (s *Service) findByNameLocked(name string) *store.Activity {
	for i := range s.state.Activities {
		if s.state.Activities[i].Name == name {
			return &s.state.Activities[i]
		}
	}
	return nil
}

func (s *Service) persistLocked(ctx context.Context) {
	if err := s.store.SaveTracking(ctx, s.state); err != nil {
		s.logger.Warn("failed to persist tracking state, continuing in memory", "error", err)
	}
}

func (s *Service) copyStateLocked() store.Tracking {
	out := store.Tracking{
		Activities:     append([]store.Activity(nil), s.state.Activities...),
		SessionHistory: append([]store.Session(nil), s.state.SessionHistory...),
		Days:           make(map[string]store.Day, len(s.state.Days)),
	}
	for date, day := range s.state.Days {
		out.Days[date] = store.Day{Tasks: append([]store.DayTask(nil), day.Tasks...)}
	}
	if s.state.Active != nil {
		marker := *s.state.Active
		out.Active = &marker
	}
	return out
}

func wholeSeconds(from, to time.Time) int64 {
	delta := to.Sub(from)
	if delta < 0 {
		return 0
	}
	return int64(delta / time.Second)
}
