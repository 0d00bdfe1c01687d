package recorder

import (
	"fmt"
	"time"

	"price-recorder/src/config"
	"price-recorder/src/interfaces"
	"price-recorder/src/logger"
	"price-recorder/src/models"
	"price-recorder/src/runlog"
	"price-recorder/src/utils"
)

// -----------------------------------------------------------------------------

// Recorder orchestrates one full update pass: trading-day gate, stock list
// read, existing-entry index, planning, batch write. Collaborators are
// injected so the decision logic runs against fakes in tests.
type Recorder struct {
	Config   *config.Config
	Store    interfaces.ITableStore
	Notifier interfaces.INotifier
	Gate     *utils.TradingCalendar
	Log      *runlog.RunLogger

	// Now is the clock used for the shared run timestamp.
	Now func() time.Time
}

// -----------------------------------------------------------------------------

func NewRecorder(cfg *config.Config, store interfaces.ITableStore, notifier interfaces.INotifier, console *logger.Logger) *Recorder {
	gate := utils.NewWeekdayCalendar()
	if cfg.Exchange.HolidayAware {
		gate = utils.NewHolidayCalendar(cfg.Exchange.CalendarMIC)
	}

	return &Recorder{
		Config:   cfg,
		Store:    store,
		Notifier: notifier,
		Gate:     gate,
		Log:      runlog.NewRunLogger(cfg.MConfig, store, console),
		Now:      time.Now,
	}
}

// -----------------------------------------------------------------------------

// UpdateGlobalStocks runs one complete update pass. Overrides, when non-nil,
// replace whole top-level config sections for this invocation only.
//
// The method never returns an error: fatal failures are logged, optionally
// emailed, and reported through the returned run report, so the scheduler
// always sees a normal return.
func (r *Recorder) UpdateGlobalStocks(o *config.Overrides) *models.MRunReport {
	cfg := r.Config.ApplyOverrides(o).MConfig

	now := r.Now()
	runTimestamp := now.Format(models.TimestampLayout)
	report := &models.MRunReport{
		Type:         "UPDATE",
		RunTimestamp: runTimestamp,
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.fatal(report, fmt.Errorf("unexpected failure: %v", rec))
		}
		report.FinishedAt = time.Now().Unix()
		r.Log.Flush()
	}()

	if !r.Gate.IsTradingDay(now) {
		r.Log.Info(fmt.Sprintf("Skipping run at %s: not a trading day", runTimestamp))
		return report
	}
	report.TradingDay = true

	// Missing sheets are structural: the run cannot proceed.
	if err := r.requireSheet(cfg.Tables.SourceSheet); err != nil {
		r.fatal(report, err)
		return report
	}
	if err := r.requireSheet(cfg.Tables.TargetSheet); err != nil {
		r.fatal(report, err)
		return report
	}

	r.Log.Info(fmt.Sprintf("Starting update run at %s", runTimestamp))

	records := ReadStockList(r.Store, cfg, r.Log)
	existing := BuildExistingKeySet(ReadExisting(r.Store, cfg, r.Log))

	batch, stats := Plan(records, existing, runTimestamp, cfg, r.Log)
	stats.Updated = len(batch)

	if len(batch) > 0 {
		if err := WriteBatch(batch, r.Store, cfg); err != nil {
			r.fatal(report, err)
			return report
		}
	}

	report.Stats = stats
	report.Entries = batch
	r.Log.Info(fmt.Sprintf("Run complete: total=%d updated=%d duplicates=%d skipped=%d errors=%d",
		stats.Total, stats.Updated, stats.Duplicates, stats.Skipped, stats.Errors))
	return report
}

// -----------------------------------------------------------------------------

func (r *Recorder) requireSheet(sheet string) error {
	exists, err := r.Store.HasSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to check sheet '%s': %w", sheet, err)
	}
	if !exists {
		return fmt.Errorf("sheet '%s' not found", sheet)
	}
	return nil
}

// -----------------------------------------------------------------------------

// fatal handles the single top-level error of a run: logged, optionally
// notified, recorded on the report. Notification failures are absorbed; the
// notifier is the last resort, not another failure source.
func (r *Recorder) fatal(report *models.MRunReport, err error) {
	report.Fatal = err.Error()
	r.Log.Error("Update run failed", err)

	if r.Notifier == nil {
		return
	}
	if nerr := r.Notifier.NotifyError(report.RunTimestamp, err); nerr != nil {
		r.Log.Console.Error("Failed to send failure notification: %v", nerr)
	}
}
