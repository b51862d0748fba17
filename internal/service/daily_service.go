package service

import (
	"errors"
	"fmt"
	"time"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
	"kinderpost/internal/validation"
)

var (
	ErrAlreadyCheckedIn   = errors.New("child already checked in on this date")
	ErrNotCheckedIn       = errors.New("child is not checked in on this date")
	ErrInvalidSleepWindow = errors.New("sleep start must be before sleep end")
	ErrInvalidAppetite    = errors.New("unknown appetite level")
	ErrInvalidMood        = errors.New("unknown mood")
)

// DailyService manages the per-day care records of a child. Every record
// type except attendance itself sits behind the check-in gate: a child must
// have an attendance row for the date before meals, naps, hygiene or moods
// can be recorded for it.
type DailyService struct {
	attendanceRepo *repository.AttendanceRepository
	recordRepo     *repository.RecordRepository
	childRepo      *repository.ChildRepository
}

// NewDailyService creates a new daily records service
func NewDailyService(attendanceRepo *repository.AttendanceRepository, recordRepo *repository.RecordRepository, childRepo *repository.ChildRepository) *DailyService {
	return &DailyService{
		attendanceRepo: attendanceRepo,
		recordRepo:     recordRepo,
		childRepo:      childRepo,
	}
}

// loadWritableChild fetches a child and checks write access. A parent who
// may not see the child gets ErrNotFound; staff reaching outside their
// scope get ErrAccessDenied.
func (s *DailyService) loadWritableChild(actor authz.Actor, childID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	target := authz.ChildTarget(child)
	if !actor.CanRead(target) {
		return nil, maskDenied(actor)
	}
	if !actor.CanWrite(target) {
		return nil, ErrAccessDenied
	}
	return child, nil
}

// requireCheckedIn enforces the attendance gate. It is re-checked on every
// record write so a record can never slip in ahead of the check-in.
func (s *DailyService) requireCheckedIn(childID int64, date string) error {
	checkedIn, err := s.attendanceRepo.ExistsForDate(childID, date)
	if err != nil {
		return err
	}
	if !checkedIn {
		return ErrNotCheckedIn
	}
	return nil
}

// CheckIn creates the attendance record that opens a child's day
func (s *DailyService) CheckIn(actor authz.Actor, childID int64, date, checkInTime string) (*models.Attendance, error) {
	if _, err := s.loadWritableChild(actor, childID); err != nil {
		return nil, err
	}
	if err := validation.ValidateDate("date", date); err != nil {
		return nil, err
	}
	if err := validation.ValidateTimeOfDay("check_in_time", checkInTime); err != nil {
		return nil, err
	}

	existing, err := s.attendanceRepo.GetAttendanceByChildAndDate(childID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	attendance, err := s.attendanceRepo.CreateAttendance(childID, date, checkInTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}
	return attendance, nil
}

// CheckOut stamps the check-out time on an existing attendance record
func (s *DailyService) CheckOut(actor authz.Actor, childID int64, date, checkOutTime string) (*models.Attendance, error) {
	if _, err := s.loadWritableChild(actor, childID); err != nil {
		return nil, err
	}
	if err := validation.ValidateDate("date", date); err != nil {
		return nil, err
	}
	if err := validation.ValidateTimeOfDay("check_out_time", checkOutTime); err != nil {
		return nil, err
	}

	attendance, err := s.attendanceRepo.GetAttendanceByChildAndDate(childID, date)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, ErrNotCheckedIn
	}

	if err := s.attendanceRepo.UpdateCheckOut(attendance.ID, checkOutTime); err != nil {
		return nil, err
	}
	attendance.CheckOutTime = checkOutTime
	return attendance, nil
}

// ListAttendance lists attendance records visible to the actor
func (s *DailyService) ListAttendance(actor authz.Actor, filter repository.RecordFilter) ([]models.Attendance, error) {
	return s.attendanceRepo.ListAttendance(actor.Scope(), filter)
}

// RecordMeal records a meal for a checked-in child
func (s *DailyService) RecordMeal(actor authz.Actor, meal *models.Meal) (*models.Meal, error) {
	if _, err := s.loadWritableChild(actor, meal.ChildID); err != nil {
		return nil, err
	}
	if err := validation.ValidateDate("date", meal.Date); err != nil {
		return nil, err
	}
	if meal.Title == "" {
		return nil, &validation.FieldError{Field: "title", Message: "title is required"}
	}
	if meal.IntakeTime == "" {
		meal.IntakeTime = time.Now().Format("15:04")
	} else if err := validation.ValidateTimeOfDay("intake_time", meal.IntakeTime); err != nil {
		return nil, err
	}
	if meal.AppetiteLevel == "" {
		meal.AppetiteLevel = models.AppetiteNormal
	}
	if !meal.AppetiteLevel.Valid() {
		return nil, ErrInvalidAppetite
	}
	if err := s.requireCheckedIn(meal.ChildID, meal.Date); err != nil {
		return nil, err
	}
	return s.recordRepo.CreateMeal(meal)
}

// ListMeals lists meals visible to the actor
func (s *DailyService) ListMeals(actor authz.Actor, filter repository.RecordFilter) ([]models.Meal, error) {
	return s.recordRepo.ListMeals(actor.Scope(), filter)
}

// RecordNap records a sleep window for a checked-in child
func (s *DailyService) RecordNap(actor authz.Actor, nap *models.Nap) (*models.Nap, error) {
	if _, err := s.loadWritableChild(actor, nap.ChildID); err != nil {
		return nil, err
	}
	if err := validation.ValidateDate("date", nap.Date); err != nil {
		return nil, err
	}
	if err := validation.ValidateTimeOfDay("sleep_from", nap.SleepFrom); err != nil {
		return nil, err
	}
	if err := validation.ValidateTimeOfDay("sleep_to", nap.SleepTo); err != nil {
		return nil, err
	}
	if !validation.TimeBefore(nap.SleepFrom, nap.SleepTo) {
		return nil, ErrInvalidSleepWindow
	}
	if err := s.requireCheckedIn(nap.ChildID, nap.Date); err != nil {
		return nil, err
	}
	return s.recordRepo.CreateNap(nap)
}

// ListNaps lists naps visible to the actor
func (s *DailyService) ListNaps(actor authz.Actor, filter repository.RecordFilter) ([]models.Nap, error) {
	return s.recordRepo.ListNaps(actor.Scope(), filter)
}

// RecordHygiene records a hygiene activity for a checked-in child
func (s *DailyService) RecordHygiene(actor authz.Actor, h *models.Hygiene) (*models.Hygiene, error) {
	if _, err := s.loadWritableChild(actor, h.ChildID); err != nil {
		return nil, err
	}
	if err := validation.ValidateDate("date", h.Date); err != nil {
		return nil, err
	}
	if h.Activity == "" {
		return nil, &validation.FieldError{Field: "activity", Message: "activity is required"}
	}
	if h.ActivityTime == "" {
		h.ActivityTime = time.Now().Format("15:04")
	} else if err := validation.ValidateTimeOfDay("activity_time", h.ActivityTime); err != nil {
		return nil, err
	}
	if err := s.requireCheckedIn(h.ChildID, h.Date); err != nil {
		return nil, err
	}
	return s.recordRepo.CreateHygiene(h)
}

// ListHygiene lists hygiene records visible to the actor
func (s *DailyService) ListHygiene(actor authz.Actor, filter repository.RecordFilter) ([]models.Hygiene, error) {
	return s.recordRepo.ListHygiene(actor.Scope(), filter)
}

// RecordMood records an observed mood for a checked-in child
func (s *DailyService) RecordMood(actor authz.Actor, m *models.Mood) (*models.Mood, error) {
	if _, err := s.loadWritableChild(actor, m.ChildID); err != nil {
		return nil, err
	}
	if err := validation.ValidateDate("date", m.Date); err != nil {
		return nil, err
	}
	if !m.Mood.Valid() {
		return nil, ErrInvalidMood
	}
	if err := s.requireCheckedIn(m.ChildID, m.Date); err != nil {
		return nil, err
	}
	return s.recordRepo.CreateMood(m)
}

// ListMoods lists moods visible to the actor
func (s *DailyService) ListMoods(actor authz.Actor, filter repository.RecordFilter) ([]models.Mood, error) {
	return s.recordRepo.ListMoods(actor.Scope(), filter)
}
