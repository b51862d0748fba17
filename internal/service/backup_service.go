package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"kinderpost/internal/database"
)

// BackupData is the portable JSON snapshot of the whole database. It is
// dialect-neutral so an export from sqlite can be imported into postgres.
type BackupData struct {
	Version       string               `json:"version"`
	ExportedAt    time.Time            `json:"exported_at"`
	Users         []UserBackup         `json:"users"`
	Kindergartens []KindergartenBackup `json:"kindergartens"`
	Classes       []ClassBackup        `json:"classes"`
	Teachers      []TeacherBackup      `json:"teachers"`
	Admins        []AdminBackup        `json:"admins"`
	Assignments   []AssignmentBackup   `json:"assignments"`
	Children      []ChildBackup        `json:"children"`
	Attendance    []AttendanceBackup   `json:"attendance"`
	Meals         []MealBackup         `json:"meals"`
	Naps          []NapBackup          `json:"naps"`
	Hygiene       []HygieneBackup      `json:"hygiene"`
	Moods         []MoodBackup         `json:"moods"`
	Activities    []ActivityBackup     `json:"activities"`
	Posts         []PostBackup         `json:"posts"`
	Comments      []CommentBackup      `json:"comments"`
	Notifications []NotificationBackup `json:"notifications"`
}

// UserBackup is a user row in a backup
type UserBackup struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"password_hash"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	PinHash        string    `json:"pin_hash"`
	DeviceToken    string    `json:"device_token"`
	ProfilePicture string    `json:"profile_picture"`
	OAuthProvider  string    `json:"oauth_provider"`
	OAuthSubject   string    `json:"oauth_subject"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// KindergartenBackup is a kindergarten row in a backup
type KindergartenBackup struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ClassBackup is a class row in a backup
type ClassBackup struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	KindergartenID int64  `json:"kindergarten_id"`
}

// TeacherBackup is a teacher affiliation in a backup
type TeacherBackup struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"user_id"`
	KindergartenID int64 `json:"kindergarten_id"`
}

// AdminBackup is an admin affiliation in a backup
type AdminBackup struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"user_id"`
	KindergartenID int64 `json:"kindergarten_id"`
}

// AssignmentBackup is a teacher-class assignment in a backup
type AssignmentBackup struct {
	ID        int64 `json:"id"`
	TeacherID int64 `json:"teacher_id"`
	ClassID   int64 `json:"class_id"`
}

// ChildBackup is a child row in a backup
type ChildBackup struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Bio            string    `json:"bio"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	KindergartenID int64     `json:"kindergarten_id"`
	ClassID        *int64    `json:"class_id"`
	ParentID       int64     `json:"parent_id"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

// AttendanceBackup is an attendance row in a backup
type AttendanceBackup struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	Date         string    `json:"date"`
	CheckInTime  string    `json:"check_in_time"`
	CheckOutTime string    `json:"check_out_time"`
	CreatedAt    time.Time `json:"created_at"`
}

// MealBackup is a meal row in a backup
type MealBackup struct {
	ID            int64     `json:"id"`
	ChildID       int64     `json:"child_id"`
	Date          string    `json:"date"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IntakeTime    string    `json:"intake_time"`
	AppetiteLevel string    `json:"appetite_level"`
	CreatedAt     time.Time `json:"created_at"`
}

// NapBackup is a nap row in a backup
type NapBackup struct {
	ID        int64     `json:"id"`
	ChildID   int64     `json:"child_id"`
	Date      string    `json:"date"`
	SleepFrom string    `json:"sleep_from"`
	SleepTo   string    `json:"sleep_to"`
	CreatedAt time.Time `json:"created_at"`
}

// HygieneBackup is a hygiene row in a backup
type HygieneBackup struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	Date         string    `json:"date"`
	Activity     string    `json:"activity"`
	ActivityTime string    `json:"activity_time"`
	CreatedAt    time.Time `json:"created_at"`
}

// MoodBackup is a mood row in a backup
type MoodBackup struct {
	ID        int64     `json:"id"`
	ChildID   int64     `json:"child_id"`
	Date      string    `json:"date"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityBackup is an activity row plus its participant links
type ActivityBackup struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Time     time.Time `json:"time"`
	ClassID  int64     `json:"class_id"`
	Image    string    `json:"image"`
	Children []int64   `json:"children"`
}

// PostBackup is a post row plus the user ids that liked it
type PostBackup struct {
	ID             int64     `json:"id"`
	KindergartenID int64     `json:"kindergarten_id"`
	ClassID        *int64    `json:"class_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Images         string    `json:"images"`
	CreatedAt      time.Time `json:"created_at"`
	LikedBy        []int64   `json:"liked_by"`
}

// CommentBackup is a comment row plus the user ids that liked it
type CommentBackup struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikedBy   []int64   `json:"liked_by"`
}

// NotificationBackup is a notification row in a backup
type NotificationBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService exports the database to a JSON snapshot and restores from
// one. Imports run against an empty database and preserve row ids so
// references survive the round trip.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete snapshot to outputPath
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	steps := []struct {
		name string
		fn   func(*BackupData) error
	}{
		{"users", s.exportUsers},
		{"kindergartens", s.exportKindergartens},
		{"classes", s.exportClasses},
		{"teachers", s.exportTeachers},
		{"admins", s.exportAdmins},
		{"assignments", s.exportAssignments},
		{"children", s.exportChildren},
		{"attendance", s.exportAttendance},
		{"meals", s.exportMeals},
		{"naps", s.exportNaps},
		{"hygiene", s.exportHygiene},
		{"moods", s.exportMoods},
		{"activities", s.exportActivities},
		{"posts", s.exportPosts},
		{"comments", s.exportComments},
		{"notifications", s.exportNotifications},
	}
	for _, step := range steps {
		if err := step.fn(backup); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d kindergartens, %d classes, %d children, %d posts",
		len(backup.Users), len(backup.Kindergartens), len(backup.Classes),
		len(backup.Children), len(backup.Posts))
	return nil
}

// Import restores a snapshot from inputPath into an empty database
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a snapshot from a reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Dependency order: referenced tables first
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importKindergartens(backup.Kindergartens); err != nil {
		return fmt.Errorf("failed to import kindergartens: %w", err)
	}
	if err := s.importClasses(backup.Classes); err != nil {
		return fmt.Errorf("failed to import classes: %w", err)
	}
	if err := s.importTeachers(backup.Teachers); err != nil {
		return fmt.Errorf("failed to import teachers: %w", err)
	}
	if err := s.importAdmins(backup.Admins); err != nil {
		return fmt.Errorf("failed to import admins: %w", err)
	}
	if err := s.importAssignments(backup.Assignments); err != nil {
		return fmt.Errorf("failed to import assignments: %w", err)
	}
	if err := s.importChildren(backup.Children); err != nil {
		return fmt.Errorf("failed to import children: %w", err)
	}
	if err := s.importAttendance(backup.Attendance); err != nil {
		return fmt.Errorf("failed to import attendance: %w", err)
	}
	if err := s.importMeals(backup.Meals); err != nil {
		return fmt.Errorf("failed to import meals: %w", err)
	}
	if err := s.importNaps(backup.Naps); err != nil {
		return fmt.Errorf("failed to import naps: %w", err)
	}
	if err := s.importHygiene(backup.Hygiene); err != nil {
		return fmt.Errorf("failed to import hygiene: %w", err)
	}
	if err := s.importMoods(backup.Moods); err != nil {
		return fmt.Errorf("failed to import moods: %w", err)
	}
	if err := s.importActivities(backup.Activities); err != nil {
		return fmt.Errorf("failed to import activities: %w", err)
	}
	if err := s.importPosts(backup.Posts); err != nil {
		return fmt.Errorf("failed to import posts: %w", err)
	}
	if err := s.importComments(backup.Comments); err != nil {
		return fmt.Errorf("failed to import comments: %w", err)
	}
	if err := s.importNotifications(backup.Notifications); err != nil {
		return fmt.Errorf("failed to import notifications: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, name, role, pin_hash, device_token, profile_picture, oauth_provider, oauth_subject, created_at, updated_at FROM users ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.PinHash, &u.DeviceToken, &u.ProfilePicture, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportKindergartens(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, location FROM kindergartens ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var k KindergartenBackup
		if err := rows.Scan(&k.ID, &k.Name, &k.Location); err != nil {
			return err
		}
		backup.Kindergartens = append(backup.Kindergartens, k)
	}
	return rows.Err()
}

func (s *BackupService) exportClasses(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, kindergarten_id FROM classes ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ClassBackup
		if err := rows.Scan(&c.ID, &c.Name, &c.KindergartenID); err != nil {
			return err
		}
		backup.Classes = append(backup.Classes, c)
	}
	return rows.Err()
}

func (s *BackupService) exportTeachers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, kindergarten_id FROM teacher_profiles ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t TeacherBackup
		if err := rows.Scan(&t.ID, &t.UserID, &t.KindergartenID); err != nil {
			return err
		}
		backup.Teachers = append(backup.Teachers, t)
	}
	return rows.Err()
}

func (s *BackupService) exportAdmins(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, kindergarten_id FROM admin_profiles ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AdminBackup
		if err := rows.Scan(&a.ID, &a.UserID, &a.KindergartenID); err != nil {
			return err
		}
		backup.Admins = append(backup.Admins, a)
	}
	return rows.Err()
}

func (s *BackupService) exportAssignments(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, teacher_id, class_id FROM teacher_classes ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AssignmentBackup
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.ClassID); err != nil {
			return err
		}
		backup.Assignments = append(backup.Assignments, a)
	}
	return rows.Err()
}

func (s *BackupService) exportChildren(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, bio, date_of_birth, kindergarten_id, class_id, parent_id, profile_picture, created_at FROM children ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChildBackup
		var classID sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &c.Bio, &c.DateOfBirth, &c.KindergartenID, &classID, &c.ParentID, &c.ProfilePicture, &c.CreatedAt); err != nil {
			return err
		}
		if classID.Valid {
			c.ClassID = &classID.Int64
		}
		backup.Children = append(backup.Children, c)
	}
	return rows.Err()
}

func (s *BackupService) exportAttendance(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, child_id, date, check_in_time, check_out_time, created_at FROM attendance ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AttendanceBackup
		if err := rows.Scan(&a.ID, &a.ChildID, &a.Date, &a.CheckInTime, &a.CheckOutTime, &a.CreatedAt); err != nil {
			return err
		}
		backup.Attendance = append(backup.Attendance, a)
	}
	return rows.Err()
}

func (s *BackupService) exportMeals(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, child_id, date, title, description, intake_time, appetite_level, created_at FROM meals ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m MealBackup
		if err := rows.Scan(&m.ID, &m.ChildID, &m.Date, &m.Title, &m.Description, &m.IntakeTime, &m.AppetiteLevel, &m.CreatedAt); err != nil {
			return err
		}
		backup.Meals = append(backup.Meals, m)
	}
	return rows.Err()
}

func (s *BackupService) exportNaps(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, child_id, date, sleep_from, sleep_to, created_at FROM naps ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var n NapBackup
		if err := rows.Scan(&n.ID, &n.ChildID, &n.Date, &n.SleepFrom, &n.SleepTo, &n.CreatedAt); err != nil {
			return err
		}
		backup.Naps = append(backup.Naps, n)
	}
	return rows.Err()
}

func (s *BackupService) exportHygiene(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, child_id, date, activity, activity_time, created_at FROM hygiene ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var h HygieneBackup
		if err := rows.Scan(&h.ID, &h.ChildID, &h.Date, &h.Activity, &h.ActivityTime, &h.CreatedAt); err != nil {
			return err
		}
		backup.Hygiene = append(backup.Hygiene, h)
	}
	return rows.Err()
}

func (s *BackupService) exportMoods(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, child_id, date, mood, created_at FROM moods ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m MoodBackup
		if err := rows.Scan(&m.ID, &m.ChildID, &m.Date, &m.Mood, &m.CreatedAt); err != nil {
			return err
		}
		backup.Moods = append(backup.Moods, m)
	}
	return rows.Err()
}

func (s *BackupService) exportActivities(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, time, class_id, image FROM activities ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	var activities []ActivityBackup
	for rows.Next() {
		var a ActivityBackup
		if err := rows.Scan(&a.ID, &a.Name, &a.Time, &a.ClassID, &a.Image); err != nil {
			return err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range activities {
		childRows, err := s.db.Query("SELECT child_id FROM activity_children WHERE activity_id = ? ORDER BY child_id", activities[i].ID)
		if err != nil {
			return err
		}
		for childRows.Next() {
			var childID int64
			if err := childRows.Scan(&childID); err != nil {
				childRows.Close()
				return err
			}
			activities[i].Children = append(activities[i].Children, childID)
		}
		childRows.Close()
	}

	backup.Activities = activities
	return nil
}

func (s *BackupService) exportPosts(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, kindergarten_id, class_id, title, description, images, created_at FROM posts ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	var posts []PostBackup
	for rows.Next() {
		var p PostBackup
		var classID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.KindergartenID, &classID, &p.Title, &p.Description, &p.Images, &p.CreatedAt); err != nil {
			return err
		}
		if classID.Valid {
			p.ClassID = &classID.Int64
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range posts {
		likeRows, err := s.db.Query("SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY user_id", posts[i].ID)
		if err != nil {
			return err
		}
		for likeRows.Next() {
			var userID int64
			if err := likeRows.Scan(&userID); err != nil {
				likeRows.Close()
				return err
			}
			posts[i].LikedBy = append(posts[i].LikedBy, userID)
		}
		likeRows.Close()
	}

	backup.Posts = posts
	return nil
}

func (s *BackupService) exportComments(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, post_id, user_id, content, created_at FROM comments ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	var comments []CommentBackup
	for rows.Next() {
		var c CommentBackup
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range comments {
		likeRows, err := s.db.Query("SELECT user_id FROM comment_likes WHERE comment_id = ? ORDER BY user_id", comments[i].ID)
		if err != nil {
			return err
		}
		for likeRows.Next() {
			var userID int64
			if err := likeRows.Scan(&userID); err != nil {
				likeRows.Close()
				return err
			}
			comments[i].LikedBy = append(comments[i].LikedBy, userID)
		}
		likeRows.Close()
	}

	backup.Comments = comments
	return nil
}

func (s *BackupService) exportNotifications(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, title, message, is_read, created_at FROM notifications ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var n NotificationBackup
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return err
		}
		backup.Notifications = append(backup.Notifications, n)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		_, err := s.db.Exec(
			"INSERT INTO users (id, email, password_hash, name, role, pin_hash, device_token, profile_picture, oauth_provider, oauth_subject, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.PinHash, u.DeviceToken, u.ProfilePicture, u.OAuthProvider, u.OAuthSubject, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importKindergartens(kindergartens []KindergartenBackup) error {
	log.Printf("Importing %d kindergartens...", len(kindergartens))
	for _, k := range kindergartens {
		_, err := s.db.Exec("INSERT INTO kindergartens (id, name, location) VALUES (?, ?, ?)", k.ID, k.Name, k.Location)
		if err != nil {
			return fmt.Errorf("failed to import kindergarten %d: %w", k.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importClasses(classes []ClassBackup) error {
	log.Printf("Importing %d classes...", len(classes))
	for _, c := range classes {
		_, err := s.db.Exec("INSERT INTO classes (id, name, kindergarten_id) VALUES (?, ?, ?)", c.ID, c.Name, c.KindergartenID)
		if err != nil {
			return fmt.Errorf("failed to import class %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importTeachers(teachers []TeacherBackup) error {
	log.Printf("Importing %d teacher affiliations...", len(teachers))
	for _, t := range teachers {
		_, err := s.db.Exec("INSERT INTO teacher_profiles (id, user_id, kindergarten_id) VALUES (?, ?, ?)", t.ID, t.UserID, t.KindergartenID)
		if err != nil {
			return fmt.Errorf("failed to import teacher %d: %w", t.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAdmins(admins []AdminBackup) error {
	log.Printf("Importing %d admin affiliations...", len(admins))
	for _, a := range admins {
		_, err := s.db.Exec("INSERT INTO admin_profiles (id, user_id, kindergarten_id) VALUES (?, ?, ?)", a.ID, a.UserID, a.KindergartenID)
		if err != nil {
			return fmt.Errorf("failed to import admin %d: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAssignments(assignments []AssignmentBackup) error {
	log.Printf("Importing %d assignments...", len(assignments))
	for _, a := range assignments {
		_, err := s.db.Exec("INSERT INTO teacher_classes (id, teacher_id, class_id) VALUES (?, ?, ?)", a.ID, a.TeacherID, a.ClassID)
		if err != nil {
			return fmt.Errorf("failed to import assignment %d: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importChildren(children []ChildBackup) error {
	log.Printf("Importing %d children...", len(children))
	for _, c := range children {
		var classID interface{}
		if c.ClassID != nil {
			classID = *c.ClassID
		}
		_, err := s.db.Exec(
			"INSERT INTO children (id, name, bio, date_of_birth, kindergarten_id, class_id, parent_id, profile_picture, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			c.ID, c.Name, c.Bio, c.DateOfBirth, c.KindergartenID, classID, c.ParentID, c.ProfilePicture, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import child %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAttendance(records []AttendanceBackup) error {
	log.Printf("Importing %d attendance records...", len(records))
	for _, a := range records {
		_, err := s.db.Exec(
			"INSERT INTO attendance (id, child_id, date, check_in_time, check_out_time, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			a.ID, a.ChildID, a.Date, a.CheckInTime, a.CheckOutTime, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import attendance %d: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importMeals(meals []MealBackup) error {
	log.Printf("Importing %d meals...", len(meals))
	for _, m := range meals {
		_, err := s.db.Exec(
			"INSERT INTO meals (id, child_id, date, title, description, intake_time, appetite_level, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			m.ID, m.ChildID, m.Date, m.Title, m.Description, m.IntakeTime, m.AppetiteLevel, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import meal %d: %w", m.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importNaps(naps []NapBackup) error {
	log.Printf("Importing %d naps...", len(naps))
	for _, n := range naps {
		_, err := s.db.Exec(
			"INSERT INTO naps (id, child_id, date, sleep_from, sleep_to, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			n.ID, n.ChildID, n.Date, n.SleepFrom, n.SleepTo, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import nap %d: %w", n.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importHygiene(records []HygieneBackup) error {
	log.Printf("Importing %d hygiene records...", len(records))
	for _, h := range records {
		_, err := s.db.Exec(
			"INSERT INTO hygiene (id, child_id, date, activity, activity_time, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			h.ID, h.ChildID, h.Date, h.Activity, h.ActivityTime, h.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import hygiene record %d: %w", h.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importMoods(moods []MoodBackup) error {
	log.Printf("Importing %d moods...", len(moods))
	for _, m := range moods {
		_, err := s.db.Exec(
			"INSERT INTO moods (id, child_id, date, mood, created_at) VALUES (?, ?, ?, ?, ?)",
			m.ID, m.ChildID, m.Date, m.Mood, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import mood %d: %w", m.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importActivities(activities []ActivityBackup) error {
	log.Printf("Importing %d activities...", len(activities))
	for _, a := range activities {
		_, err := s.db.Exec(
			"INSERT INTO activities (id, name, time, class_id, image) VALUES (?, ?, ?, ?, ?)",
			a.ID, a.Name, a.Time, a.ClassID, a.Image,
		)
		if err != nil {
			return fmt.Errorf("failed to import activity %d: %w", a.ID, err)
		}
		for _, childID := range a.Children {
			if _, err := s.db.Exec("INSERT INTO activity_children (activity_id, child_id) VALUES (?, ?)", a.ID, childID); err != nil {
				return fmt.Errorf("failed to import activity child %d for activity %d: %w", childID, a.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importPosts(posts []PostBackup) error {
	log.Printf("Importing %d posts...", len(posts))
	for _, p := range posts {
		var classID interface{}
		if p.ClassID != nil {
			classID = *p.ClassID
		}
		_, err := s.db.Exec(
			"INSERT INTO posts (id, kindergarten_id, class_id, title, description, images, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.KindergartenID, classID, p.Title, p.Description, p.Images, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import post %d: %w", p.ID, err)
		}
		for _, userID := range p.LikedBy {
			if _, err := s.db.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", p.ID, userID); err != nil {
				return fmt.Errorf("failed to import like for post %d: %w", p.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importComments(comments []CommentBackup) error {
	log.Printf("Importing %d comments...", len(comments))
	for _, c := range comments {
		_, err := s.db.Exec(
			"INSERT INTO comments (id, post_id, user_id, content, created_at) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.PostID, c.UserID, c.Content, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import comment %d: %w", c.ID, err)
		}
		for _, userID := range c.LikedBy {
			if _, err := s.db.Exec("INSERT INTO comment_likes (comment_id, user_id) VALUES (?, ?)", c.ID, userID); err != nil {
				return fmt.Errorf("failed to import like for comment %d: %w", c.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importNotifications(notifications []NotificationBackup) error {
	log.Printf("Importing %d notifications...", len(notifications))
	for _, n := range notifications {
		_, err := s.db.Exec(
			"INSERT INTO notifications (id, user_id, title, message, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			n.ID, n.UserID, n.Title, n.Message, n.IsRead, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import notification %d: %w", n.ID, err)
		}
	}
	return nil
}
