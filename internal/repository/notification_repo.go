package repository

import (
	"database/sql"
	"fmt"

	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// NotificationRepository handles database operations for in-app notifications
type NotificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification stores a notification for a user
func (r *NotificationRepository) CreateNotification(userID int64, title, message string) (*models.Notification, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO notifications (user_id, title, message) VALUES (?, ?, ?)",
		userID, title, message,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return r.GetNotificationByID(id)
}

// GetNotificationByID retrieves a notification by ID
func (r *NotificationRepository) GetNotificationByID(id int64) (*models.Notification, error) {
	n := &models.Notification{}
	err := r.db.QueryRow(
		"SELECT id, user_id, title, message, is_read, created_at FROM notifications WHERE id = ?", id).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// ListNotificationsByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListNotificationsByUser(userID int64) ([]models.Notification, error) {
	rows, err := r.db.Query(
		"SELECT id, user_id, title, message, is_read, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = ?", userID, false).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read
func (r *NotificationRepository) MarkRead(id int64) error {
	_, err := r.db.Exec("UPDATE notifications SET is_read = ? WHERE id = ?", true, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(userID int64) error {
	_, err := r.db.Exec("UPDATE notifications SET is_read = ? WHERE user_id = ?", true, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes a notification
func (r *NotificationRepository) DeleteNotification(id int64) error {
	_, err := r.db.Exec("DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
