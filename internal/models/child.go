package models

import "time"

// Child represents a child profile. Every child belongs to exactly one
// kindergarten, at most one class, and exactly one parent account.
type Child struct {
	ID             int64
	Name           string
	Bio            string
	DateOfBirth    time.Time
	KindergartenID int64
	ClassID        int64 // 0 means not yet placed in a class
	ParentID       int64
	ProfilePicture string
}
