package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/T14g/react-tdd/internal/cache"
	"github.com/T14g/react-tdd/internal/schedule"
	"github.com/T14g/react-tdd/internal/transport"
)

func (s *Server) writeQueryError(w http.ResponseWriter, log *slog.Logger, area string, err error) {
	if details := s.Val.Details(err); details != nil {
		log.Warn(area + ": invalid query")
		transport.WriteError(w, http.StatusBadRequest, "invalid query", details)
		return
	}
	log.Warn(area+": invalid query", slog.String("error", err.Error()))
	transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
}

func (s *Server) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q, err := s.parseHoursQuery(r, "date")
	if err != nil {
		s.writeQueryError(w, log, "time slots", err)
		return
	}
	day, dateStr, err := s.anchorDate(q.Date)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}

	slots := schedule.DailyTimeSlots(day, q.Open, q.Close, s.Cfg.Timezone)

	log.Info("time slots: ok", slog.String("date", dateStr), slog.Int("slots", len(slots)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":     dateStr,
		"timezone": s.Cfg.Timezone.String(),
		"openAt":   q.Open,
		"closeAt":  q.Close,
		"slots":    s.timeLabels(slots),
	})
}

func (s *Server) GetWeek(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	anchor, dateStr, err := s.anchorDate(r.URL.Query().Get("date"))
	if err != nil {
		log.Warn("week: invalid date", slog.String("date", r.URL.Query().Get("date")))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}

	dates := schedule.WeeklyDateValues(anchor, s.Cfg.Timezone)
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":     dateStr,
		"timezone": s.Cfg.Timezone.String(),
		"dates":    s.dateLabels(dates),
	})
}

// gridCacheArea prefixes cached grids. A booking can fall in any cached week,
// so saving one drops them all.
const gridCacheArea = "grid"

func (s *Server) invalidateGrids(ctx context.Context, log *slog.Logger) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeletePrefix(ctx, cache.Key(gridCacheArea, "")); err != nil {
		log.Warn("grid: cache invalidation failed", slog.String("error", err.Error()))
	}
}

type gridResponse struct {
	Week       string            `json:"week"`
	Timezone   string            `json:"timezone"`
	Rows       []labelledInstant `json:"rows"`
	Columns    []labelledInstant `json:"columns"`
	Cells      [][]schedule.Cell `json:"cells"`
	Selectable int               `json:"selectable"`
}

func (s *Server) GetGrid(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q, err := s.parseHoursQuery(r, "week")
	if err != nil {
		s.writeQueryError(w, log, "grid", err)
		return
	}
	weekStart, week, err := s.anchorDate(q.Date)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if s.Backend == nil {
		log.Error("grid: backend not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "backend not configured", nil)
		return
	}

	cacheKey := cache.Key(gridCacheArea, week, strconv.Itoa(q.Open), strconv.Itoa(q.Close))
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("grid: cache hit", slog.String("week", week))
			transport.WriteRaw(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout(s.Cfg.BackendTimeout()))
	defer cancel()
	available, err := s.Backend.AvailableTimeSlots(ctx)
	if err != nil {
		log.Error("grid: availability fetch failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "availability error", nil)
		return
	}

	grid := schedule.BuildGrid(schedule.GridParams{
		OpenHour:  q.Open,
		CloseHour: q.Close,
		WeekStart: weekStart,
		Available: available,
		Location:  s.Cfg.Timezone,
	})
	response := gridResponse{
		Week:       week,
		Timezone:   s.Cfg.Timezone.String(),
		Rows:       s.timeLabels(grid.RowTimes),
		Columns:    s.dateLabels(grid.ColumnDates),
		Cells:      grid.Cells,
		Selectable: grid.SelectableCount(),
	}

	payload, err := encodeJSON(response)
	if err != nil {
		log.Error("grid: encode failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "grid error", nil)
		return
	}
	if s.Cache != nil {
		if err := s.Cache.Set(r.Context(), cacheKey, payload, s.Cfg.CacheTTL()); err != nil {
			log.Warn("grid: cache store failed", slog.String("error", err.Error()))
		}
	}

	log.Info("grid: ok",
		slog.String("week", week),
		slog.Int("rows", len(grid.RowTimes)),
		slog.Int("selectable", response.Selectable),
	)
	transport.WriteRaw(w, http.StatusOK, payload)
}
