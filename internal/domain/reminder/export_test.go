package reminder

import "time"

// SetClock overrides the scheduler clock in tests.
func SetClock(s *Service, now func() time.Time) {
	s.now = now
}
