package service

import (
	"log/slog"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
)

// Pusher delivers a notification to a device. The production deployment
// plugs a push provider in here; NopPusher keeps delivery in-app only.
type Pusher interface {
	Push(deviceToken, title, message string) error
}

// NopPusher discards push deliveries
type NopPusher struct{}

// Push implements Pusher by doing nothing
func (NopPusher) Push(deviceToken, title, message string) error { return nil }

// NotificationService stores in-app notifications and fans them out to
// devices
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	childRepo        *repository.ChildRepository
	pusher           Pusher
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo *repository.NotificationRepository, userRepo *repository.UserRepository, childRepo *repository.ChildRepository, pusher Pusher) *NotificationService {
	if pusher == nil {
		pusher = NopPusher{}
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		childRepo:        childRepo,
		pusher:           pusher,
	}
}

// Notify stores a notification for a user and pushes it to their device if
// one is registered
func (s *NotificationService) Notify(userID int64, title, message string) (*models.Notification, error) {
	notification, err := s.notificationRepo.CreateNotification(userID, title, message)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err == nil && user != nil && user.DeviceToken != "" {
		if err := s.pusher.Push(user.DeviceToken, title, message); err != nil {
			// In-app copy exists; push failure is not fatal
			slog.Warn("push delivery failed", "user_id", userID, "error", err)
		}
	}
	return notification, nil
}

// NotifyNewPost tells the parents who can see a post that it was published
func (s *NotificationService) NotifyNewPost(post *models.Post) error {
	var children []models.Child
	var err error
	if post.ClassID != 0 {
		children, err = s.childRepo.ListChildrenByClass(post.ClassID)
	} else {
		children, err = s.childRepo.ListChildren(authz.Scope{Kind: authz.ScopeKindergarten, KindergartenID: post.KindergartenID})
	}
	if err != nil {
		return err
	}

	notified := map[int64]bool{}
	for _, c := range children {
		if notified[c.ParentID] {
			continue
		}
		notified[c.ParentID] = true
		if _, err := s.Notify(c.ParentID, "New post", post.Title); err != nil {
			return err
		}
	}
	return nil
}

// BroadcastToRole stores a notification for every user holding a role
func (s *NotificationService) BroadcastToRole(actor authz.Actor, role models.Role, title, message string) (int, error) {
	if actor.Role != models.RoleSuperadmin {
		return 0, ErrAccessDenied
	}
	if !role.Valid() {
		return 0, ErrWrongRole
	}

	users, err := s.userRepo.ListUsersByRole(role)
	if err != nil {
		return 0, err
	}
	for _, u := range users {
		if _, err := s.Notify(u.ID, title, message); err != nil {
			return 0, err
		}
	}
	return len(users), nil
}

// ListNotifications lists the actor's own notifications, newest first
func (s *NotificationService) ListNotifications(actor authz.Actor) ([]models.Notification, error) {
	return s.notificationRepo.ListNotificationsByUser(actor.UserID)
}

// UnreadCount counts the actor's unread notifications
func (s *NotificationService) UnreadCount(actor authz.Actor) (int, error) {
	return s.notificationRepo.CountUnread(actor.UserID)
}

// MarkRead marks one of the actor's notifications as read. Notifications
// are strictly private; someone else's id reads as missing.
func (s *NotificationService) MarkRead(actor authz.Actor, id int64) error {
	notification, err := s.notificationRepo.GetNotificationByID(id)
	if err != nil {
		return err
	}
	if notification == nil || notification.UserID != actor.UserID {
		return ErrNotFound
	}
	return s.notificationRepo.MarkRead(id)
}

// MarkAllRead marks all of the actor's notifications as read
func (s *NotificationService) MarkAllRead(actor authz.Actor) error {
	return s.notificationRepo.MarkAllRead(actor.UserID)
}

// DeleteNotification removes one of the actor's notifications
func (s *NotificationService) DeleteNotification(actor authz.Actor, id int64) error {
	notification, err := s.notificationRepo.GetNotificationByID(id)
	if err != nil {
		return err
	}
	if notification == nil || notification.UserID != actor.UserID {
		return ErrNotFound
	}
	return s.notificationRepo.DeleteNotification(id)
}
