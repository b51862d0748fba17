package handlers

import (
	"net/http"
	"time"

	"kinderpost/internal/models"
	"kinderpost/internal/service"
	"kinderpost/internal/validation"
)

// ChildHandler serves child profiles
type ChildHandler struct {
	hierarchyService *service.HierarchyService
}

// NewChildHandler creates a new child handler
func NewChildHandler(hierarchyService *service.HierarchyService) *ChildHandler {
	return &ChildHandler{hierarchyService: hierarchyService}
}

// CreateChild handles POST /api/children
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		Bio            string `json:"bio"`
		DateOfBirth    string `json:"date_of_birth"`
		KindergartenID int64  `json:"kindergarten_id"`
		ClassID        int64  `json:"class_id"`
		ParentID       int64  `json:"parent_id"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.ValidateDate("date_of_birth", req.DateOfBirth); err != nil {
		writeServiceError(w, err)
		return
	}
	dob, _ := time.Parse("2006-01-02", req.DateOfBirth)

	child, err := h.hierarchyService.CreateChild(actorFrom(r), &models.Child{
		Name:           req.Name,
		Bio:            req.Bio,
		DateOfBirth:    dob,
		KindergartenID: req.KindergartenID,
		ClassID:        req.ClassID,
		ParentID:       req.ParentID,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, childView(child))
}

// ListChildren handles GET /api/children
func (h *ChildHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.hierarchyService.ListChildren(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, childViews(children))
}

// GetChild handles GET /api/children/{id}
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid child id")
		return
	}

	child, err := h.hierarchyService.GetChild(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, childView(child))
}

// UpdateChild handles PUT /api/children/{id}
func (h *ChildHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid child id")
		return
	}

	var req struct {
		Name           string `json:"name"`
		Bio            string `json:"bio"`
		ClassID        int64  `json:"class_id"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.hierarchyService.UpdateChild(actorFrom(r), id, req.Name, req.Bio, req.ClassID, req.ProfilePicture)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, childView(child))
}

// DeleteChild handles DELETE /api/children/{id}
func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid child id")
		return
	}

	if err := h.hierarchyService.DeleteChild(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}
