package handlers

import (
	"net/http"

	"kinderpost/internal/models"
	"kinderpost/internal/repository"
	"kinderpost/internal/service"
	"kinderpost/internal/validation"
)

// DailyHandler serves attendance and the per-child daily records
type DailyHandler struct {
	dailyService *service.DailyService
}

// NewDailyHandler creates a new daily records handler
func NewDailyHandler(dailyService *service.DailyService) *DailyHandler {
	return &DailyHandler{dailyService: dailyService}
}

// recordFilter builds the list filter from query parameters
func recordFilter(r *http.Request) (repository.RecordFilter, error) {
	var filter repository.RecordFilter

	childID, ok := queryInt64(r, "child_id")
	if !ok {
		return filter, fieldError("child_id")
	}
	filter.ChildID = childID

	for _, p := range []struct {
		name string
		dst  *string
	}{
		{"date", &filter.Date},
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		value := r.URL.Query().Get(p.name)
		if value == "" {
			continue
		}
		if err := validation.ValidateDate(p.name, value); err != nil {
			return filter, err
		}
		*p.dst = value
	}
	return filter, nil
}

func fieldError(field string) error {
	return &validation.FieldError{Field: field, Message: "invalid value"}
}

// CheckIn handles POST /api/attendance/check-in
func (h *DailyHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID     int64  `json:"child_id"`
		Date        string `json:"date"`
		CheckInTime string `json:"check_in_time"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attendance, err := h.dailyService.CheckIn(actorFrom(r), req.ChildID, req.Date, req.CheckInTime)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, attendanceView(attendance))
}

// CheckOut handles POST /api/attendance/check-out
func (h *DailyHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID      int64  `json:"child_id"`
		Date         string `json:"date"`
		CheckOutTime string `json:"check_out_time"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attendance, err := h.dailyService.CheckOut(actorFrom(r), req.ChildID, req.Date, req.CheckOutTime)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, attendanceView(attendance))
}

// ListAttendance handles GET /api/attendance
func (h *DailyHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	filter, err := recordFilter(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	records, err := h.dailyService.ListAttendance(actorFrom(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]AttendanceView, 0, len(records))
	for i := range records {
		views = append(views, attendanceView(&records[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// CreateMeal handles POST /api/meals
func (h *DailyHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID       int64  `json:"child_id"`
		Date          string `json:"date"`
		Title         string `json:"title"`
		Description   string `json:"description"`
		IntakeTime    string `json:"intake_time"`
		AppetiteLevel string `json:"appetite_level"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	meal, err := h.dailyService.RecordMeal(actorFrom(r), &models.Meal{
		ChildID:       req.ChildID,
		Date:          req.Date,
		Title:         req.Title,
		Description:   req.Description,
		IntakeTime:    req.IntakeTime,
		AppetiteLevel: models.AppetiteLevel(req.AppetiteLevel),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, mealView(meal))
}

// ListMeals handles GET /api/meals
func (h *DailyHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	filter, err := recordFilter(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	meals, err := h.dailyService.ListMeals(actorFrom(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]MealView, 0, len(meals))
	for i := range meals {
		views = append(views, mealView(&meals[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// CreateNap handles POST /api/naps
func (h *DailyHandler) CreateNap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID   int64  `json:"child_id"`
		Date      string `json:"date"`
		SleepFrom string `json:"sleep_from"`
		SleepTo   string `json:"sleep_to"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nap, err := h.dailyService.RecordNap(actorFrom(r), &models.Nap{
		ChildID:   req.ChildID,
		Date:      req.Date,
		SleepFrom: req.SleepFrom,
		SleepTo:   req.SleepTo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, napView(nap))
}

// ListNaps handles GET /api/naps
func (h *DailyHandler) ListNaps(w http.ResponseWriter, r *http.Request) {
	filter, err := recordFilter(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	naps, err := h.dailyService.ListNaps(actorFrom(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]NapView, 0, len(naps))
	for i := range naps {
		views = append(views, napView(&naps[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// CreateHygiene handles POST /api/hygiene
func (h *DailyHandler) CreateHygiene(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID      int64  `json:"child_id"`
		Date         string `json:"date"`
		Activity     string `json:"activity"`
		ActivityTime string `json:"activity_time"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.dailyService.RecordHygiene(actorFrom(r), &models.Hygiene{
		ChildID:      req.ChildID,
		Date:         req.Date,
		Activity:     req.Activity,
		ActivityTime: req.ActivityTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, hygieneView(record))
}

// ListHygiene handles GET /api/hygiene
func (h *DailyHandler) ListHygiene(w http.ResponseWriter, r *http.Request) {
	filter, err := recordFilter(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	records, err := h.dailyService.ListHygiene(actorFrom(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]HygieneView, 0, len(records))
	for i := range records {
		views = append(views, hygieneView(&records[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// CreateMood handles POST /api/moods
func (h *DailyHandler) CreateMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID int64  `json:"child_id"`
		Date    string `json:"date"`
		Mood    string `json:"mood"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mood, err := h.dailyService.RecordMood(actorFrom(r), &models.Mood{
		ChildID: req.ChildID,
		Date:    req.Date,
		Mood:    models.MoodKind(req.Mood),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, moodView(mood))
}

// ListMoods handles GET /api/moods
func (h *DailyHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	filter, err := recordFilter(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	moods, err := h.dailyService.ListMoods(actorFrom(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]MoodView, 0, len(moods))
	for i := range moods {
		views = append(views, moodView(&moods[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}
