package models

import "time"

// Dates and times of day are carried as strings ("2006-01-02" and "15:04")
// so that equality and range filters behave identically across the supported
// database dialects.

// Attendance marks a child as checked in on a date. At most one record
// exists per (child, date); check-out is optional.
type Attendance struct {
	ID           int64
	ChildID      int64
	Date         string
	CheckInTime  string
	CheckOutTime string
	CreatedAt    time.Time
}

// AppetiteLevel describes how well a child ate
type AppetiteLevel string

const (
	AppetiteLow    AppetiteLevel = "low"
	AppetiteNormal AppetiteLevel = "normal"
	AppetiteHigh   AppetiteLevel = "high"
)

// Valid reports whether the appetite level is known
func (a AppetiteLevel) Valid() bool {
	switch a {
	case AppetiteLow, AppetiteNormal, AppetiteHigh:
		return true
	}
	return false
}

// Meal records a meal served to a child
type Meal struct {
	ID            int64
	ChildID       int64
	Date          string
	Title         string
	Description   string
	IntakeTime    string
	AppetiteLevel AppetiteLevel
	CreatedAt     time.Time
}

// Nap records a sleep window; SleepFrom must be before SleepTo
type Nap struct {
	ID        int64
	ChildID   int64
	Date      string
	SleepFrom string
	SleepTo   string
	CreatedAt time.Time
}

// Hygiene records a hygiene activity (diaper change, hand washing, ...)
type Hygiene struct {
	ID           int64
	ChildID      int64
	Date         string
	Activity     string
	ActivityTime string
	CreatedAt    time.Time
}

// MoodKind is one of the predefined moods
type MoodKind string

const (
	MoodHappy      MoodKind = "happy"
	MoodCalm       MoodKind = "calm"
	MoodSad        MoodKind = "sad"
	MoodTired      MoodKind = "tired"
	MoodSleepy     MoodKind = "sleepy"
	MoodAngry      MoodKind = "angry"
	MoodAnnoyed    MoodKind = "annoyed"
	MoodFrustrated MoodKind = "frustrated"
)

// Valid reports whether the mood is one of the predefined kinds
func (m MoodKind) Valid() bool {
	switch m {
	case MoodHappy, MoodCalm, MoodSad, MoodTired, MoodSleepy, MoodAngry, MoodAnnoyed, MoodFrustrated:
		return true
	}
	return false
}

// Mood records an observed mood for a child on a date
type Mood struct {
	ID        int64
	ChildID   int64
	Date      string
	Mood      MoodKind
	CreatedAt time.Time
}
