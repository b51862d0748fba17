package handlers

import (
	"net/http"

	"kinderpost/internal/models"
	"kinderpost/internal/service"
)

// NotificationHandler serves the in-app notification inbox
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Broadcast handles POST /api/notifications/broadcast
func (h *NotificationHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role    string `json:"role"`
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.notificationService.BroadcastToRole(actorFrom(r), models.Role(req.Role), req.Title, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]int{"notified": count})
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.ListNotifications(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, notificationView(&notifications[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.UnreadCount(actorFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead handles PUT /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.MarkRead(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllRead(actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// DeleteNotification handles DELETE /api/notifications/{id}
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.DeleteNotification(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}
