package repository

import (
	"database/sql"
	"fmt"

	"kinderpost/internal/authz"
	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// RecordRepository handles database operations for the per-day care records
// of a child: meals, naps, hygiene activities and moods. The tables share the
// same shape (child_id + date + payload) so the scoped listing query is the
// same for all four.
type RecordRepository struct {
	db *database.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *database.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) scopedQuery(columns, table string, scope authz.Scope, filter RecordFilter) (string, []interface{}) {
	scopeClause, scopeArgs := childScopeClause(scope, "c")
	filterClause, filterArgs := filter.clause("r")
	query := "SELECT " + columns + " FROM " + table + ` r
		JOIN children c ON c.id = r.child_id
		WHERE ` + scopeClause + ` AND ` + filterClause + `
		ORDER BY r.date DESC, r.id DESC`
	return query, append(scopeArgs, filterArgs...)
}

// CreateMeal records a meal
func (r *RecordRepository) CreateMeal(m *models.Meal) (*models.Meal, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO meals (child_id, date, title, description, intake_time, appetite_level) VALUES (?, ?, ?, ?, ?, ?)",
		m.ChildID, m.Date, m.Title, m.Description, m.IntakeTime, m.AppetiteLevel,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}
	return r.GetMealByID(id)
}

// GetMealByID retrieves a meal by ID
func (r *RecordRepository) GetMealByID(id int64) (*models.Meal, error) {
	m := &models.Meal{}
	err := r.db.QueryRow(
		"SELECT id, child_id, date, title, description, intake_time, appetite_level, created_at FROM meals WHERE id = ?", id).
		Scan(&m.ID, &m.ChildID, &m.Date, &m.Title, &m.Description, &m.IntakeTime, &m.AppetiteLevel, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return m, nil
}

// ListMeals retrieves meals visible to a scope, newest first
func (r *RecordRepository) ListMeals(scope authz.Scope, filter RecordFilter) ([]models.Meal, error) {
	query, args := r.scopedQuery(
		"r.id, r.child_id, r.date, r.title, r.description, r.intake_time, r.appetite_level, r.created_at",
		"meals", scope, filter)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	var meals []models.Meal
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.ChildID, &m.Date, &m.Title, &m.Description, &m.IntakeTime, &m.AppetiteLevel, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// CreateNap records a sleep window
func (r *RecordRepository) CreateNap(n *models.Nap) (*models.Nap, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO naps (child_id, date, sleep_from, sleep_to) VALUES (?, ?, ?, ?)",
		n.ChildID, n.Date, n.SleepFrom, n.SleepTo,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create nap: %w", err)
	}
	return r.GetNapByID(id)
}

// GetNapByID retrieves a nap by ID
func (r *RecordRepository) GetNapByID(id int64) (*models.Nap, error) {
	n := &models.Nap{}
	err := r.db.QueryRow(
		"SELECT id, child_id, date, sleep_from, sleep_to, created_at FROM naps WHERE id = ?", id).
		Scan(&n.ID, &n.ChildID, &n.Date, &n.SleepFrom, &n.SleepTo, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nap: %w", err)
	}
	return n, nil
}

// ListNaps retrieves naps visible to a scope, newest first
func (r *RecordRepository) ListNaps(scope authz.Scope, filter RecordFilter) ([]models.Nap, error) {
	query, args := r.scopedQuery("r.id, r.child_id, r.date, r.sleep_from, r.sleep_to, r.created_at", "naps", scope, filter)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query naps: %w", err)
	}
	defer rows.Close()

	var naps []models.Nap
	for rows.Next() {
		var n models.Nap
		if err := rows.Scan(&n.ID, &n.ChildID, &n.Date, &n.SleepFrom, &n.SleepTo, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nap: %w", err)
		}
		naps = append(naps, n)
	}
	return naps, nil
}

// CreateHygiene records a hygiene activity
func (r *RecordRepository) CreateHygiene(h *models.Hygiene) (*models.Hygiene, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO hygiene (child_id, date, activity, activity_time) VALUES (?, ?, ?, ?)",
		h.ChildID, h.Date, h.Activity, h.ActivityTime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hygiene record: %w", err)
	}
	return r.GetHygieneByID(id)
}

// GetHygieneByID retrieves a hygiene record by ID
func (r *RecordRepository) GetHygieneByID(id int64) (*models.Hygiene, error) {
	h := &models.Hygiene{}
	err := r.db.QueryRow(
		"SELECT id, child_id, date, activity, activity_time, created_at FROM hygiene WHERE id = ?", id).
		Scan(&h.ID, &h.ChildID, &h.Date, &h.Activity, &h.ActivityTime, &h.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hygiene record: %w", err)
	}
	return h, nil
}

// ListHygiene retrieves hygiene records visible to a scope, newest first
func (r *RecordRepository) ListHygiene(scope authz.Scope, filter RecordFilter) ([]models.Hygiene, error) {
	query, args := r.scopedQuery("r.id, r.child_id, r.date, r.activity, r.activity_time, r.created_at", "hygiene", scope, filter)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hygiene records: %w", err)
	}
	defer rows.Close()

	var records []models.Hygiene
	for rows.Next() {
		var h models.Hygiene
		if err := rows.Scan(&h.ID, &h.ChildID, &h.Date, &h.Activity, &h.ActivityTime, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hygiene record: %w", err)
		}
		records = append(records, h)
	}
	return records, nil
}

// CreateMood records an observed mood
func (r *RecordRepository) CreateMood(m *models.Mood) (*models.Mood, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO moods (child_id, date, mood) VALUES (?, ?, ?)",
		m.ChildID, m.Date, m.Mood,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood: %w", err)
	}
	return r.GetMoodByID(id)
}

// GetMoodByID retrieves a mood record by ID
func (r *RecordRepository) GetMoodByID(id int64) (*models.Mood, error) {
	m := &models.Mood{}
	err := r.db.QueryRow(
		"SELECT id, child_id, date, mood, created_at FROM moods WHERE id = ?", id).
		Scan(&m.ID, &m.ChildID, &m.Date, &m.Mood, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mood: %w", err)
	}
	return m, nil
}

// ListMoods retrieves moods visible to a scope, newest first
func (r *RecordRepository) ListMoods(scope authz.Scope, filter RecordFilter) ([]models.Mood, error) {
	query, args := r.scopedQuery("r.id, r.child_id, r.date, r.mood, r.created_at", "moods", scope, filter)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	var moods []models.Mood
	for rows.Next() {
		var m models.Mood
		if err := rows.Scan(&m.ID, &m.ChildID, &m.Date, &m.Mood, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		moods = append(moods, m)
	}
	return moods, nil
}
