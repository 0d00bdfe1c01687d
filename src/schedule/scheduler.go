package schedule

import (
	"fmt"
	"time"

	"price-recorder/src/helpers"
	"price-recorder/src/interfaces"
	"price-recorder/src/logger"

	"github.com/robfig/cron/v3"
)

// -----------------------------------------------------------------------------

// CronScheduler implements IScheduler on robfig/cron with removable entries,
// all firing in a single configured location.
type CronScheduler struct {
	Logger  *logger.Logger
	cron    *cron.Cron
	entries []cron.EntryID
}

// -----------------------------------------------------------------------------

func NewCronScheduler(loc *time.Location, log *logger.Logger) *CronScheduler {
	return &CronScheduler{
		Logger: log,
		cron:   cron.New(cron.WithLocation(loc)),
	}
}

// -----------------------------------------------------------------------------

// AddDaily registers fn at the given "HH:MM" wall-clock time, every day.
func (s *CronScheduler) AddDaily(at string, fn func()) error {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return fmt.Errorf("invalid trigger time '%s': %w", at, err)
	}

	id, err := s.cron.AddFunc(fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), fn)
	if err != nil {
		return err
	}
	s.entries = append(s.entries, id)
	return nil
}

// -----------------------------------------------------------------------------

func (s *CronScheduler) RemoveAll() {
	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = nil
}

// -----------------------------------------------------------------------------

func (s *CronScheduler) Count() int {
	return len(s.entries)
}

// -----------------------------------------------------------------------------

func (s *CronScheduler) Start() {
	s.cron.Start()
}

func (s *CronScheduler) Stop() {
	s.cron.Stop()
}

// -----------------------------------------------------------------------------

// Install idempotently (re)installs the fixed-time daily triggers: every
// registered trigger is removed first, then one trigger per configured time
// is added. A failure for any single slot aborts the remaining setup and
// propagates to the caller; schedule installation is a supervised operator
// action, not a background run.
func Install(s interfaces.IScheduler, times []string, job func()) error {
	s.RemoveAll()

	for _, at := range times {
		if err := s.AddDaily(at, job); err != nil {
			return helpers.NewSchedulerError(fmt.Sprintf("failed to register trigger at %s", at), err)
		}
	}
	return nil
}
