package handlers

import (
	"net/http"
	"time"

	"kinderpost/internal/service"
	"kinderpost/internal/validation"
)

// StatsHandler serves aggregate statistics and the dashboard totals
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

type statsSeriesView struct {
	Model    string           `json:"model"`
	Interval string           `json:"interval"`
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Buckets  []service.Bucket `json:"buckets"`
}

// statsWindow resolves the requested window. A time_range name wins over
// explicit start_date/end_date.
func statsWindow(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	if name := query.Get("time_range"); name != "" {
		return service.ResolveRange(name, time.Now().UTC())
	}

	startRaw := query.Get("start_date")
	endRaw := query.Get("end_date")
	if err := validation.ValidateDate("start_date", startRaw); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := validation.ValidateDate("end_date", endRaw); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, _ := time.Parse("2006-01-02", startRaw)
	end, _ := time.Parse("2006-01-02", endRaw)
	// end_date is inclusive
	return start, end.Add(24 * time.Hour), nil
}

// Aggregate handles GET /api/stats
func (h *StatsHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	model := query.Get("model")
	interval := query.Get("interval")
	if interval == "" {
		interval = "day"
	}

	start, end, err := statsWindow(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	buckets, err := h.statsService.Aggregate(actorFrom(r), model, start, end, interval)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, statsSeriesView{
		Model:    model,
		Interval: interval,
		Start:    start.UTC().Format(time.RFC3339),
		End:      end.UTC().Format(time.RFC3339),
		Buckets:  buckets,
	})
}

// DashboardTotals handles GET /api/stats/totals
func (h *StatsHandler) DashboardTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.statsService.DashboardTotals(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, totals)
}
