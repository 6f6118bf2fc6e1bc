package schedule

import (
	"fmt"
	"time"
)

var shortWeekdays = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func MinutesToClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

func FormatTimeOfDay(i Instant, loc *time.Location) string {
	t := i.In(loc)
	return MinutesToClock(t.Hour()*60 + t.Minute())
}

func FormatShortDate(i Instant, loc *time.Location) string {
	t := i.In(loc)
	return fmt.Sprintf("%s %02d", shortWeekdays[t.Weekday()], t.Day())
}
