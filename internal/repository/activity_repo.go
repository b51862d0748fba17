package repository

import (
	"database/sql"
	"fmt"

	"kinderpost/internal/authz"
	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// ActivityRepository handles database operations for class activities and
// their participant links
type ActivityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// CreateActivity creates an activity and links its participants in one
// transaction
func (r *ActivityRepository) CreateActivity(a *models.Activity) (*models.Activity, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := tx.ExecReturningID(
		"INSERT INTO activities (name, time, class_id, image) VALUES (?, ?, ?, ?)",
		a.Name, a.Time, a.ClassID, a.Image,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	for _, childID := range a.Children {
		if _, err := tx.Exec("INSERT INTO activity_children (activity_id, child_id) VALUES (?, ?)", id, childID); err != nil {
			return nil, fmt.Errorf("failed to link activity child: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit activity: %w", err)
	}

	a.ID = id
	return a, nil
}

// GetActivityByID retrieves an activity with its participant ids
func (r *ActivityRepository) GetActivityByID(id int64) (*models.Activity, error) {
	a := &models.Activity{}
	err := r.db.QueryRow("SELECT id, name, time, class_id, image FROM activities WHERE id = ?", id).
		Scan(&a.ID, &a.Name, &a.Time, &a.ClassID, &a.Image)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if err := r.attachChildren([]*models.Activity{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateActivity updates an activity and replaces its participant links
func (r *ActivityRepository) UpdateActivity(a *models.Activity) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"UPDATE activities SET name = ?, time = ?, class_id = ?, image = ? WHERE id = ?",
		a.Name, a.Time, a.ClassID, a.Image, a.ID,
	); err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM activity_children WHERE activity_id = ?", a.ID); err != nil {
		return fmt.Errorf("failed to clear activity children: %w", err)
	}
	for _, childID := range a.Children {
		if _, err := tx.Exec("INSERT INTO activity_children (activity_id, child_id) VALUES (?, ?)", a.ID, childID); err != nil {
			return fmt.Errorf("failed to link activity child: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activity: %w", err)
	}
	return nil
}

// DeleteActivity removes an activity and its participant links
func (r *ActivityRepository) DeleteActivity(id int64) error {
	_, err := r.db.Exec("DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// ListActivities retrieves the activities of the classes visible to a scope,
// newest first. A parent sees activities of classes their children are
// placed in.
func (r *ActivityRepository) ListActivities(scope authz.Scope) ([]models.Activity, error) {
	var clause string
	var args []interface{}
	switch scope.Kind {
	case authz.ScopeAll:
		clause = "1 = 1"
	case authz.ScopeKindergarten:
		clause = "a.class_id IN (SELECT id FROM classes WHERE kindergarten_id = ?)"
		args = []interface{}{scope.KindergartenID}
	case authz.ScopeClasses:
		placeholders, inArgs := inClause(scope.ClassIDs)
		clause = "a.class_id IN (" + placeholders + ")"
		args = inArgs
	case authz.ScopeParent:
		clause = "a.class_id IN (SELECT class_id FROM children WHERE parent_id = ? AND class_id IS NOT NULL)"
		args = []interface{}{scope.ParentID}
	default:
		clause = "1 = 0"
	}

	query := "SELECT a.id, a.name, a.time, a.class_id, a.image FROM activities a WHERE " + clause + " ORDER BY a.time DESC, a.id DESC"
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		a := &models.Activity{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Time, &a.ClassID, &a.Image); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := r.attachChildren(activities); err != nil {
		return nil, err
	}

	result := make([]models.Activity, len(activities))
	for i, a := range activities {
		result[i] = *a
	}
	return result, nil
}

// ListActivitiesByChild retrieves the activities a child took part in,
// newest first
func (r *ActivityRepository) ListActivitiesByChild(childID int64) ([]models.Activity, error) {
	query := "SELECT a.id, a.name, a.time, a.class_id, a.image FROM activities a JOIN activity_children ac ON ac.activity_id = a.id WHERE ac.child_id = ? ORDER BY a.time DESC, a.id DESC"
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		a := &models.Activity{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Time, &a.ClassID, &a.Image); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := r.attachChildren(activities); err != nil {
		return nil, err
	}

	result := make([]models.Activity, len(activities))
	for i, a := range activities {
		result[i] = *a
	}
	return result, nil
}

func (r *ActivityRepository) attachChildren(activities []*models.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	ids := make([]int64, len(activities))
	byID := make(map[int64]*models.Activity, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
		byID[a.ID] = a
	}

	placeholders, args := inClause(ids)
	rows, err := r.db.Query(
		"SELECT activity_id, child_id FROM activity_children WHERE activity_id IN ("+placeholders+") ORDER BY child_id ASC",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to query activity children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var activityID, childID int64
		if err := rows.Scan(&activityID, &childID); err != nil {
			return fmt.Errorf("failed to scan activity child: %w", err)
		}
		if a := byID[activityID]; a != nil {
			a.Children = append(a.Children, childID)
		}
	}
	return nil
}
