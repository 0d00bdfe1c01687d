package utils

import (
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar decides whether a date is a trading day. The default mode
// is the plain weekday check (Mon-Fri, no holiday awareness); holiday mode
// consults scmhub/calendar for a single MIC.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Weekday  bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// ExchangeMIC maps supported exchange codes to ISO 10383 MIC codes understood
// by scmhub/calendar.
func ExchangeMIC(exchange string) string {
	switch exchange {
	case "MIL", "BIT":
		return "xmil"
	case "LSE":
		return "xlon"
	case "XETRA", "ETR":
		return "xfra"
	case "NASDAQ":
		return "xnas"
	case "NYSE":
		return "xnys"
	}
	return "xnys"
}

// -----------------------------------------------------------------------------

// NewWeekdayCalendar returns the gate in plain weekday mode.
func NewWeekdayCalendar() *TradingCalendar {
	return &TradingCalendar{Weekday: true}
}

// NewHolidayCalendar returns a holiday-aware gate for the given MIC. Falls
// back to weekday mode when the calendar library does not know the MIC.
func NewHolidayCalendar(mic string) *TradingCalendar {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}
	if cal == nil {
		return NewWeekdayCalendar()
	}
	return &TradingCalendar{Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether date falls on a trading day. In weekday mode
// this is exactly Monday through Friday.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Weekday {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}
