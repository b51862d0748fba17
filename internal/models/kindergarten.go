package models

// Kindergarten is the root of the organizational hierarchy
type Kindergarten struct {
	ID       int64
	Name     string
	Location string
}

// Class belongs to exactly one kindergarten
type Class struct {
	ID             int64
	Name           string
	KindergartenID int64
}

// TeacherProfile links a teacher account to the kindergarten it works at
type TeacherProfile struct {
	ID             int64
	UserID         int64
	KindergartenID int64
}

// AdminProfile links an admin account to the kindergarten it manages.
// A kindergarten has at most one admin.
type AdminProfile struct {
	ID             int64
	UserID         int64
	KindergartenID int64
}

// TeacherClass assigns a teacher to a class, unique per (teacher, class) pair
type TeacherClass struct {
	ID        int64
	TeacherID int64
	ClassID   int64
}
