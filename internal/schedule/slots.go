package schedule

import (
	"fmt"
	"time"
)

// SlotIncrement is the distance between two rows of the daily grid.
const SlotIncrement = 30 * Minute

// DaysPerWeek is the number of columns of the weekly grid.
const DaysPerWeek = 7

// GenerateTimeIncrements returns count instants starting at start, each
// increment milliseconds after the previous one.
func GenerateTimeIncrements(count int, start Instant, increment int64) ([]Instant, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	}
	values := make([]Instant, count)
	for i := range values {
		values[i] = start + Instant(int64(i)*increment)
	}
	return values, nil
}

// DailyTimeSlots lays out the half-hour rows of day between openHour and
// closeHour. A closing hour at or before the opening hour yields no slots.
func DailyTimeSlots(day Instant, openHour, closeHour int, loc *time.Location) []Instant {
	count := 2 * (closeHour - openHour)
	if count <= 0 {
		return []Instant{}
	}
	d := day.In(loc)
	start := InstantOf(time.Date(d.Year(), d.Month(), d.Day(), openHour, 0, 0, 0, d.Location()))
	slots, _ := GenerateTimeIncrements(count, start, SlotIncrement)
	return slots
}

// WeeklyDateValues returns seven midnights starting at the anchor's day.
// Days are a fixed 24h apart; daylight-saving transitions are not adjusted for.
func WeeklyDateValues(anchor Instant, loc *time.Location) []Instant {
	dates, _ := GenerateTimeIncrements(DaysPerWeek, Midnight(anchor, loc), Day)
	return dates
}

func MergeDateAndTime(date, timeOfDay Instant, loc *time.Location) Instant {
	d := date.In(loc)
	t := timeOfDay.In(loc)
	return InstantOf(time.Date(
		d.Year(), d.Month(), d.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		d.Location(),
	))
}

// DayBounds returns the first and last millisecond of the local day containing day.
func DayBounds(day Instant, loc *time.Location) (Instant, Instant) {
	d := day.In(loc)
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	to := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999*int(time.Millisecond), d.Location())
	return InstantOf(from), InstantOf(to)
}
