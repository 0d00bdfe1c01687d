package schedule

import (
	"errors"
	"testing"
	"time"

	"price-recorder/src/logger"
)

// -----------------------------------------------------------------------------
// Fake scheduler for Install semantics
// -----------------------------------------------------------------------------

type fakeScheduler struct {
	triggers []string
	failAt   string
}

func (f *fakeScheduler) AddDaily(at string, fn func()) error {
	if at == f.failAt {
		return errors.New("quota exhausted")
	}
	f.triggers = append(f.triggers, at)
	return nil
}

func (f *fakeScheduler) RemoveAll() { f.triggers = nil }
func (f *fakeScheduler) Count() int { return len(f.triggers) }
func (f *fakeScheduler) Start() {}
func (f *fakeScheduler) Stop() {}

var sixTimes = []string{"09:00", "12:00", "17:00", "15:30", "19:00", "22:00"}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

// Installing over existing triggers always converges on exactly the
// configured set.
func TestInstallReplacesExistingTriggers(t *testing.T) {
	s := &fakeScheduler{triggers: []string{"03:00", "04:00"}}

	if err := Install(s, sixTimes, func() {}); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if s.Count() != 6 {
		t.Errorf("expected exactly 6 triggers, got %d", s.Count())
	}

	// Second install stays at 6, not 12.
	if err := Install(s, sixTimes, func() {}); err != nil {
		t.Fatalf("reinstall failed: %v", err)
	}
	if s.Count() != 6 {
		t.Errorf("reinstall should converge on 6 triggers, got %d", s.Count())
	}
}

func TestInstallAbortsOnFirstFailure(t *testing.T) {
	s := &fakeScheduler{failAt: "17:00"}

	err := Install(s, sixTimes, func() {})
	if err == nil {
		t.Fatal("expected trigger registration failure to propagate")
	}
	// Slots before the failing one were registered, later ones were not.
	if s.Count() != 2 {
		t.Errorf("setup should abort at the failing slot, got %d triggers", s.Count())
	}
}

// -----------------------------------------------------------------------------

func TestCronSchedulerAddRemove(t *testing.T) {
	s := NewCronScheduler(time.UTC, logger.NewLogger("INFO", "test"))

	for _, at := range sixTimes {
		if err := s.AddDaily(at, func() {}); err != nil {
			t.Fatalf("AddDaily(%s) failed: %v", at, err)
		}
	}
	if s.Count() != 6 {
		t.Errorf("expected 6 entries, got %d", s.Count())
	}

	s.RemoveAll()
	if s.Count() != 0 {
		t.Errorf("RemoveAll should drop every entry, got %d", s.Count())
	}
}

func TestCronSchedulerRejectsBadTime(t *testing.T) {
	s := NewCronScheduler(time.UTC, logger.NewLogger("INFO", "test"))

	for _, at := range []string{"25:00", "9am", ""} {
		if err := s.AddDaily(at, func() {}); err == nil {
			t.Errorf("AddDaily(%q) should fail", at)
		}
	}
	if s.Count() != 0 {
		t.Errorf("failed registrations must not be tracked, got %d", s.Count())
	}
}
