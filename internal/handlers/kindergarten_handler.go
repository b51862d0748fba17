package handlers

import (
	"net/http"

	"kinderpost/internal/service"
)

// KindergartenHandler serves the organizational hierarchy: kindergartens,
// classes, teacher and admin affiliations, class assignments.
type KindergartenHandler struct {
	hierarchyService *service.HierarchyService
}

// NewKindergartenHandler creates a new kindergarten handler
func NewKindergartenHandler(hierarchyService *service.HierarchyService) *KindergartenHandler {
	return &KindergartenHandler{hierarchyService: hierarchyService}
}

// CreateKindergarten handles POST /api/kindergartens
func (h *KindergartenHandler) CreateKindergarten(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kindergarten, err := h.hierarchyService.CreateKindergarten(actorFrom(r), req.Name, req.Location)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, kindergartenView(kindergarten))
}

// ListKindergartens handles GET /api/kindergartens
func (h *KindergartenHandler) ListKindergartens(w http.ResponseWriter, r *http.Request) {
	kindergartens, err := h.hierarchyService.ListKindergartens(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, kindergartenViews(kindergartens))
}

// GetKindergarten handles GET /api/kindergartens/{id}
func (h *KindergartenHandler) GetKindergarten(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid kindergarten id")
		return
	}

	kindergarten, err := h.hierarchyService.GetKindergarten(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, kindergartenView(kindergarten))
}

// DeleteKindergarten handles DELETE /api/kindergartens/{id}
func (h *KindergartenHandler) DeleteKindergarten(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid kindergarten id")
		return
	}

	if err := h.hierarchyService.DeleteKindergarten(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// AttachAdmin handles POST /api/kindergartens/{id}/admin
func (h *KindergartenHandler) AttachAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid kindergarten id")
		return
	}

	var req struct {
		UserID int64 `json:"user_id"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.hierarchyService.AttachAdmin(actorFrom(r), req.UserID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, AdminView{ID: profile.ID, UserID: profile.UserID, KindergartenID: profile.KindergartenID})
}

// DetachAdmin handles DELETE /api/kindergartens/{id}/admin
func (h *KindergartenHandler) DetachAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid kindergarten id")
		return
	}

	if err := h.hierarchyService.DetachAdmin(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// CreateClass handles POST /api/classes
func (h *KindergartenHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		KindergartenID int64  `json:"kindergarten_id"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	class, err := h.hierarchyService.CreateClass(actorFrom(r), req.Name, req.KindergartenID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, classView(class))
}

// ListClasses handles GET /api/classes
func (h *KindergartenHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.hierarchyService.ListClasses(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, classViews(classes))
}

// GetClass handles GET /api/classes/{id}
func (h *KindergartenHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid class id")
		return
	}

	class, err := h.hierarchyService.GetClass(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, classView(class))
}

// ListClassChildren handles GET /api/classes/{id}/children
func (h *KindergartenHandler) ListClassChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid class id")
		return
	}

	children, err := h.hierarchyService.ListClassChildren(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, childViews(children))
}

// DeleteClass handles DELETE /api/classes/{id}
func (h *KindergartenHandler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid class id")
		return
	}

	if err := h.hierarchyService.DeleteClass(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// AttachTeacher handles POST /api/teachers
func (h *KindergartenHandler) AttachTeacher(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID         int64 `json:"user_id"`
		KindergartenID int64 `json:"kindergarten_id"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.hierarchyService.AttachTeacher(actorFrom(r), req.UserID, req.KindergartenID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, teacherView(profile))
}

// ListTeachers handles GET /api/teachers
func (h *KindergartenHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.hierarchyService.ListTeachers(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]TeacherView, 0, len(teachers))
	for i := range teachers {
		views = append(views, teacherView(&teachers[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// DetachTeacher handles DELETE /api/teachers/{userID}
func (h *KindergartenHandler) DetachTeacher(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.hierarchyService.DetachTeacher(actorFrom(r), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// AssignTeacher handles POST /api/assignments
func (h *KindergartenHandler) AssignTeacher(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeacherID int64 `json:"teacher_id"`
		ClassID   int64 `json:"class_id"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.hierarchyService.AssignTeacherToClass(actorFrom(r), req.TeacherID, req.ClassID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, AssignmentView{ID: assignment.ID, TeacherID: assignment.TeacherID, ClassID: assignment.ClassID})
}

// UnassignTeacher handles DELETE /api/assignments/{id}
func (h *KindergartenHandler) UnassignTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	if err := h.hierarchyService.UnassignTeacherFromClass(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}
