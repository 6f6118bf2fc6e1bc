package schedule

import (
	"errors"
	"time"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidDate     = errors.New("invalid date format")
)

// Instant is an absolute point in time, counted in milliseconds since the Unix epoch.
type Instant int64

const (
	Millisecond int64 = 1
	Minute            = 60 * 1000 * Millisecond
	Hour              = 60 * Minute
	Day               = 24 * Hour
)

func InstantOf(t time.Time) Instant {
	return Instant(t.UnixMilli())
}

func (i Instant) In(loc *time.Location) time.Time {
	return time.UnixMilli(int64(i)).In(location(loc))
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

func ParseDate(dateStr string, loc *time.Location) (Instant, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, location(loc))
	if err != nil {
		return 0, ErrInvalidDate
	}
	return InstantOf(date), nil
}

func Midnight(i Instant, loc *time.Location) Instant {
	t := i.In(loc)
	return InstantOf(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))
}
