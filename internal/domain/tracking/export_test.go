package tracking

import "time"

// SetClock overrides the engine clock in tests.
func SetClock(s *Service, now func() time.Time) {
	s.now = now
}
