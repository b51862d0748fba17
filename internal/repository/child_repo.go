package repository

import (
	"database/sql"
	"fmt"

	"kinderpost/internal/authz"
	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// ChildRepository handles database operations for children
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

const childColumns = "id, name, bio, date_of_birth, kindergarten_id, class_id, parent_id, profile_picture"

func scanChild(row interface{ Scan(...interface{}) error }) (*models.Child, error) {
	c := &models.Child{}
	var classID sql.NullInt64
	err := row.Scan(&c.ID, &c.Name, &c.Bio, &c.DateOfBirth, &c.KindergartenID, &classID, &c.ParentID, &c.ProfilePicture)
	if err != nil {
		return nil, err
	}
	if classID.Valid {
		c.ClassID = classID.Int64
	}
	return c, nil
}

// classIDValue maps the unplaced marker to NULL
func classIDValue(classID int64) interface{} {
	if classID == 0 {
		return nil
	}
	return classID
}

// CreateChild creates a new child
func (r *ChildRepository) CreateChild(c *models.Child) (*models.Child, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO children (name, bio, date_of_birth, kindergarten_id, class_id, parent_id, profile_picture) VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.Name, c.Bio, c.DateOfBirth, c.KindergartenID, classIDValue(c.ClassID), c.ParentID, c.ProfilePicture,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	c.ID = id
	return c, nil
}

// GetChildByID retrieves a child by ID
func (r *ChildRepository) GetChildByID(id int64) (*models.Child, error) {
	child, err := scanChild(r.db.QueryRow("SELECT "+childColumns+" FROM children WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

// UpdateChild updates a child's mutable fields
func (r *ChildRepository) UpdateChild(c *models.Child) error {
	_, err := r.db.Exec(
		"UPDATE children SET name = ?, bio = ?, date_of_birth = ?, class_id = ?, profile_picture = ? WHERE id = ?",
		c.Name, c.Bio, c.DateOfBirth, classIDValue(c.ClassID), c.ProfilePicture, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

// DeleteChild removes a child and, via cascades, its daily records
func (r *ChildRepository) DeleteChild(id int64) error {
	_, err := r.db.Exec("DELETE FROM children WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// ListChildren retrieves the children visible to a scope
func (r *ChildRepository) ListChildren(scope authz.Scope) ([]models.Child, error) {
	clause, args := childScopeClause(scope, "c")
	query := "SELECT " + childColumns + " FROM children c WHERE " + clause + " ORDER BY c.name ASC"
	return r.listChildren(query, args...)
}

// ListChildrenByClass retrieves the children placed in a class
func (r *ChildRepository) ListChildrenByClass(classID int64) ([]models.Child, error) {
	return r.listChildren("SELECT "+childColumns+" FROM children WHERE class_id = ? ORDER BY name ASC", classID)
}

// ListChildrenByParent retrieves a parent's children
func (r *ChildRepository) ListChildrenByParent(parentID int64) ([]models.Child, error) {
	return r.listChildren("SELECT "+childColumns+" FROM children WHERE parent_id = ? ORDER BY name ASC", parentID)
}

// ListChildrenByIDs retrieves the children with the given ids
func (r *ChildRepository) ListChildrenByIDs(ids []int64) ([]models.Child, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders, args := inClause(ids)
	return r.listChildren("SELECT "+childColumns+" FROM children WHERE id IN ("+placeholders+") ORDER BY name ASC", args...)
}

func (r *ChildRepository) listChildren(query string, args ...interface{}) ([]models.Child, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		child, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, *child)
	}
	return children, nil
}

// ListChildIDsByParent returns the child ids belonging to a parent. This is
// what populates a parent Actor's child set.
func (r *ChildRepository) ListChildIDsByParent(parentID int64) ([]int64, error) {
	rows, err := r.db.Query("SELECT id FROM children WHERE parent_id = ? ORDER BY id ASC", parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan child id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CountChildren counts the children visible to a scope
func (r *ChildRepository) CountChildren(scope authz.Scope) (int, error) {
	clause, args := childScopeClause(scope, "c")
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM children c WHERE "+clause, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return count, nil
}
