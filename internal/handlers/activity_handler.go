package handlers

import (
	"net/http"
	"time"

	"kinderpost/internal/service"
	"kinderpost/internal/validation"
)

// ActivityHandler serves class activities
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func parseActivityTime(value string) (time.Time, error) {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &validation.FieldError{Field: "time", Message: "must be an RFC 3339 timestamp"}
	}
	return at, nil
}

// CreateActivity handles POST /api/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name"`
		Time     string  `json:"time"`
		ClassID  int64   `json:"class_id"`
		Image    string  `json:"image"`
		Children []int64 `json:"children"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	at, err := parseActivityTime(req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	activity, err := h.activityService.CreateActivity(actorFrom(r), req.Name, at, req.ClassID, req.Image, req.Children)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, activityView(activity))
}

// ListActivities handles GET /api/activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.ListActivities(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]ActivityView, 0, len(activities))
	for i := range activities {
		views = append(views, activityView(&activities[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// ListChildActivities handles GET /api/children/{id}/activities
func (h *ActivityHandler) ListChildActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid child id")
		return
	}

	activities, err := h.activityService.ListChildActivities(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]ActivityView, 0, len(activities))
	for i := range activities {
		views = append(views, activityView(&activities[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// GetActivity handles GET /api/activities/{id}
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	activity, err := h.activityService.GetActivity(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, activityView(activity))
}

// UpdateActivity handles PUT /api/activities/{id}
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	var req struct {
		Name     string  `json:"name"`
		Time     string  `json:"time"`
		Image    string  `json:"image"`
		Children []int64 `json:"children"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	at, err := parseActivityTime(req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	activity, err := h.activityService.UpdateActivity(actorFrom(r), id, req.Name, at, req.Image, req.Children)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, activityView(activity))
}

// DeleteActivity handles DELETE /api/activities/{id}
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	if err := h.activityService.DeleteActivity(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}
