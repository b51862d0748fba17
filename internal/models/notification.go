package models

import "time"

// Notification is an in-app message delivered to a single user
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
