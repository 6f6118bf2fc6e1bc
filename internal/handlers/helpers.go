package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/T14g/react-tdd/internal/httpx"
	"github.com/T14g/react-tdd/internal/schedule"
)

type hoursQuery struct {
	Date  string `json:"date" validate:"omitempty,date"`
	Open  int    `json:"open" validate:"hour"`
	Close int    `json:"close" validate:"hour"`
}

func (s *Server) parseHoursQuery(r *http.Request, dateKey string) (hoursQuery, error) {
	values := r.URL.Query()
	open, err := httpx.QueryInt(values, "open", s.Cfg.SalonOpensAt)
	if err != nil {
		return hoursQuery{}, err
	}
	closeAt, err := httpx.QueryInt(values, "close", s.Cfg.SalonClosesAt)
	if err != nil {
		return hoursQuery{}, err
	}
	q := hoursQuery{Date: values.Get(dateKey), Open: open, Close: closeAt}
	if err := s.Val.Struct(q); err != nil {
		return hoursQuery{}, err
	}
	return q, nil
}

// anchorDate resolves a YYYY-MM-DD query value, defaulting to today.
func (s *Server) anchorDate(dateStr string) (schedule.Instant, string, error) {
	if dateStr == "" {
		now := s.now().In(s.Cfg.Timezone)
		return schedule.InstantOf(now), now.Format("2006-01-02"), nil
	}
	day, err := schedule.ParseDate(dateStr, s.Cfg.Timezone)
	if err != nil {
		return 0, "", err
	}
	return day, dateStr, nil
}

type labelledInstant struct {
	At    schedule.Instant `json:"startsAt"`
	Label string           `json:"label"`
}

func (s *Server) timeLabels(instants []schedule.Instant) []labelledInstant {
	out := make([]labelledInstant, len(instants))
	for i, at := range instants {
		out[i] = labelledInstant{At: at, Label: schedule.FormatTimeOfDay(at, s.Cfg.Timezone)}
	}
	return out
}

func (s *Server) dateLabels(instants []schedule.Instant) []labelledInstant {
	out := make([]labelledInstant, len(instants))
	for i, at := range instants {
		out[i] = labelledInstant{At: at, Label: schedule.FormatShortDate(at, s.Cfg.Timezone)}
	}
	return out
}

func encodeJSON(payload interface{}) ([]byte, error) {
	return json.Marshal(payload)
}

func backendTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 8 * time.Second
	}
	return d
}
