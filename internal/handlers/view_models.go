package handlers

import (
	"time"

	"kinderpost/internal/models"
)

// View structs shape the JSON the API returns. Domain models stay free of
// transport tags; only what a client may see is exposed here.

type UserView struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	PinSet         bool   `json:"pin_set"`
	CreatedAt      string `json:"created_at"`
}

func userView(u *models.User) UserView {
	return UserView{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		ProfilePicture: u.ProfilePicture,
		PinSet:         u.PinHash != "",
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type AuthView struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type KindergartenView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

func kindergartenView(k *models.Kindergarten) KindergartenView {
	return KindergartenView{ID: k.ID, Name: k.Name, Location: k.Location}
}

func kindergartenViews(ks []models.Kindergarten) []KindergartenView {
	out := make([]KindergartenView, 0, len(ks))
	for i := range ks {
		out = append(out, kindergartenView(&ks[i]))
	}
	return out
}

type ClassView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	KindergartenID int64  `json:"kindergarten_id"`
}

func classView(c *models.Class) ClassView {
	return ClassView{ID: c.ID, Name: c.Name, KindergartenID: c.KindergartenID}
}

func classViews(cs []models.Class) []ClassView {
	out := make([]ClassView, 0, len(cs))
	for i := range cs {
		out = append(out, classView(&cs[i]))
	}
	return out
}

type TeacherView struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"user_id"`
	KindergartenID int64 `json:"kindergarten_id"`
}

func teacherView(t *models.TeacherProfile) TeacherView {
	return TeacherView{ID: t.ID, UserID: t.UserID, KindergartenID: t.KindergartenID}
}

type AdminView struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"user_id"`
	KindergartenID int64 `json:"kindergarten_id"`
}

type AssignmentView struct {
	ID        int64 `json:"id"`
	TeacherID int64 `json:"teacher_id"`
	ClassID   int64 `json:"class_id"`
}

type ChildView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Bio            string `json:"bio,omitempty"`
	DateOfBirth    string `json:"date_of_birth"`
	KindergartenID int64  `json:"kindergarten_id"`
	ClassID        int64  `json:"class_id,omitempty"`
	ParentID       int64  `json:"parent_id"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

func childView(c *models.Child) ChildView {
	return ChildView{
		ID:             c.ID,
		Name:           c.Name,
		Bio:            c.Bio,
		DateOfBirth:    c.DateOfBirth.Format("2006-01-02"),
		KindergartenID: c.KindergartenID,
		ClassID:        c.ClassID,
		ParentID:       c.ParentID,
		ProfilePicture: c.ProfilePicture,
	}
}

func childViews(cs []models.Child) []ChildView {
	out := make([]ChildView, 0, len(cs))
	for i := range cs {
		out = append(out, childView(&cs[i]))
	}
	return out
}

type AttendanceView struct {
	ID           int64  `json:"id"`
	ChildID      int64  `json:"child_id"`
	Date         string `json:"date"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time,omitempty"`
}

func attendanceView(a *models.Attendance) AttendanceView {
	return AttendanceView{
		ID:           a.ID,
		ChildID:      a.ChildID,
		Date:         a.Date,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
	}
}

type MealView struct {
	ID            int64  `json:"id"`
	ChildID       int64  `json:"child_id"`
	Date          string `json:"date"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	IntakeTime    string `json:"intake_time,omitempty"`
	AppetiteLevel string `json:"appetite_level"`
}

func mealView(m *models.Meal) MealView {
	return MealView{
		ID:            m.ID,
		ChildID:       m.ChildID,
		Date:          m.Date,
		Title:         m.Title,
		Description:   m.Description,
		IntakeTime:    m.IntakeTime,
		AppetiteLevel: string(m.AppetiteLevel),
	}
}

type NapView struct {
	ID        int64  `json:"id"`
	ChildID   int64  `json:"child_id"`
	Date      string `json:"date"`
	SleepFrom string `json:"sleep_from"`
	SleepTo   string `json:"sleep_to"`
}

func napView(n *models.Nap) NapView {
	return NapView{ID: n.ID, ChildID: n.ChildID, Date: n.Date, SleepFrom: n.SleepFrom, SleepTo: n.SleepTo}
}

type HygieneView struct {
	ID           int64  `json:"id"`
	ChildID      int64  `json:"child_id"`
	Date         string `json:"date"`
	Activity     string `json:"activity"`
	ActivityTime string `json:"activity_time,omitempty"`
}

func hygieneView(h *models.Hygiene) HygieneView {
	return HygieneView{ID: h.ID, ChildID: h.ChildID, Date: h.Date, Activity: h.Activity, ActivityTime: h.ActivityTime}
}

type MoodView struct {
	ID      int64  `json:"id"`
	ChildID int64  `json:"child_id"`
	Date    string `json:"date"`
	Mood    string `json:"mood"`
}

func moodView(m *models.Mood) MoodView {
	return MoodView{ID: m.ID, ChildID: m.ChildID, Date: m.Date, Mood: string(m.Mood)}
}

type ActivityView struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Time     string  `json:"time"`
	ClassID  int64   `json:"class_id"`
	Image    string  `json:"image,omitempty"`
	Children []int64 `json:"children"`
}

func activityView(a *models.Activity) ActivityView {
	children := a.Children
	if children == nil {
		children = []int64{}
	}
	return ActivityView{
		ID:       a.ID,
		Name:     a.Name,
		Time:     a.Time.UTC().Format(time.RFC3339),
		ClassID:  a.ClassID,
		Image:    a.Image,
		Children: children,
	}
}

type PostView struct {
	ID             int64  `json:"id"`
	KindergartenID int64  `json:"kindergarten_id"`
	ClassID        int64  `json:"class_id,omitempty"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Images         string `json:"images,omitempty"`
	CreatedAt      string `json:"created_at"`
	LikeCount      int    `json:"like_count"`
	LikedByCaller  bool   `json:"liked_by_caller"`
}

func postView(p *models.Post) PostView {
	return PostView{
		ID:             p.ID,
		KindergartenID: p.KindergartenID,
		ClassID:        p.ClassID,
		Title:          p.Title,
		Description:    p.Description,
		Images:         p.Images,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
		LikeCount:      p.LikeCount,
		LikedByCaller:  p.LikedByCaller,
	}
}

type CommentView struct {
	ID            int64  `json:"id"`
	PostID        int64  `json:"post_id"`
	UserID        int64  `json:"user_id"`
	AuthorName    string `json:"author_name"`
	Content       string `json:"content"`
	CreatedAt     string `json:"created_at"`
	LikeCount     int    `json:"like_count"`
	LikedByCaller bool   `json:"liked_by_caller"`
}

func commentView(c *models.Comment) CommentView {
	return CommentView{
		ID:            c.ID,
		PostID:        c.PostID,
		UserID:        c.UserID,
		AuthorName:    c.AuthorName,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
		LikeCount:     c.LikeCount,
		LikedByCaller: c.LikedByCaller,
	}
}

type NotificationView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func notificationView(n *models.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
