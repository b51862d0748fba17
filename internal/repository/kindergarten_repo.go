package repository

import (
	"database/sql"
	"fmt"

	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// KindergartenRepository handles database operations for the organizational
// hierarchy: kindergartens, classes, teacher and admin affiliations, and
// teacher-class assignments.
type KindergartenRepository struct {
	db *database.DB
}

// NewKindergartenRepository creates a new kindergarten repository
func NewKindergartenRepository(db *database.DB) *KindergartenRepository {
	return &KindergartenRepository{db: db}
}

// CreateKindergarten creates a new kindergarten
func (r *KindergartenRepository) CreateKindergarten(name, location string) (*models.Kindergarten, error) {
	id, err := r.db.ExecReturningID("INSERT INTO kindergartens (name, location) VALUES (?, ?)", name, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create kindergarten: %w", err)
	}
	return &models.Kindergarten{ID: id, Name: name, Location: location}, nil
}

// GetKindergartenByID retrieves a kindergarten by ID
func (r *KindergartenRepository) GetKindergartenByID(id int64) (*models.Kindergarten, error) {
	k := &models.Kindergarten{}
	err := r.db.QueryRow("SELECT id, name, location FROM kindergartens WHERE id = ?", id).
		Scan(&k.ID, &k.Name, &k.Location)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kindergarten: %w", err)
	}
	return k, nil
}

// ListKindergartens retrieves all kindergartens
func (r *KindergartenRepository) ListKindergartens() ([]models.Kindergarten, error) {
	rows, err := r.db.Query("SELECT id, name, location FROM kindergartens ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query kindergartens: %w", err)
	}
	defer rows.Close()

	var kindergartens []models.Kindergarten
	for rows.Next() {
		var k models.Kindergarten
		if err := rows.Scan(&k.ID, &k.Name, &k.Location); err != nil {
			return nil, fmt.Errorf("failed to scan kindergarten: %w", err)
		}
		kindergartens = append(kindergartens, k)
	}
	return kindergartens, nil
}

// DeleteKindergarten removes a kindergarten; classes, children and their
// records cascade.
func (r *KindergartenRepository) DeleteKindergarten(id int64) error {
	_, err := r.db.Exec("DELETE FROM kindergartens WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete kindergarten: %w", err)
	}
	return nil
}

// CountKindergartens counts all kindergartens
func (r *KindergartenRepository) CountKindergartens() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM kindergartens").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count kindergartens: %w", err)
	}
	return count, nil
}

// CreateClass creates a class inside a kindergarten
func (r *KindergartenRepository) CreateClass(name string, kindergartenID int64) (*models.Class, error) {
	id, err := r.db.ExecReturningID("INSERT INTO classes (name, kindergarten_id) VALUES (?, ?)", name, kindergartenID)
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return &models.Class{ID: id, Name: name, KindergartenID: kindergartenID}, nil
}

// GetClassByID retrieves a class by ID
func (r *KindergartenRepository) GetClassByID(id int64) (*models.Class, error) {
	c := &models.Class{}
	err := r.db.QueryRow("SELECT id, name, kindergarten_id FROM classes WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.KindergartenID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return c, nil
}

// ListClassesByKindergarten retrieves all classes of a kindergarten
func (r *KindergartenRepository) ListClassesByKindergarten(kindergartenID int64) ([]models.Class, error) {
	return r.listClasses("SELECT id, name, kindergarten_id FROM classes WHERE kindergarten_id = ? ORDER BY name ASC", kindergartenID)
}

// ListClassesByIDs retrieves the classes with the given ids
func (r *KindergartenRepository) ListClassesByIDs(ids []int64) ([]models.Class, error) {
	placeholders, args := inClause(ids)
	return r.listClasses("SELECT id, name, kindergarten_id FROM classes WHERE id IN ("+placeholders+") ORDER BY name ASC", args...)
}

// ListAllClasses retrieves every class
func (r *KindergartenRepository) ListAllClasses() ([]models.Class, error) {
	return r.listClasses("SELECT id, name, kindergarten_id FROM classes ORDER BY name ASC")
}

func (r *KindergartenRepository) listClasses(query string, args ...interface{}) ([]models.Class, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.KindergartenID); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// DeleteClass removes a class; children placed in it become unplaced
func (r *KindergartenRepository) DeleteClass(id int64) error {
	_, err := r.db.Exec("DELETE FROM classes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	return nil
}

// CountClasses counts all classes
func (r *KindergartenRepository) CountClasses() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM classes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count classes: %w", err)
	}
	return count, nil
}

// CreateTeacherProfile links a teacher account to a kindergarten
func (r *KindergartenRepository) CreateTeacherProfile(userID, kindergartenID int64) (*models.TeacherProfile, error) {
	id, err := r.db.ExecReturningID("INSERT INTO teacher_profiles (user_id, kindergarten_id) VALUES (?, ?)", userID, kindergartenID)
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher profile: %w", err)
	}
	return &models.TeacherProfile{ID: id, UserID: userID, KindergartenID: kindergartenID}, nil
}

// GetTeacherProfileByUserID retrieves a teacher affiliation by account ID
func (r *KindergartenRepository) GetTeacherProfileByUserID(userID int64) (*models.TeacherProfile, error) {
	t := &models.TeacherProfile{}
	err := r.db.QueryRow("SELECT id, user_id, kindergarten_id FROM teacher_profiles WHERE user_id = ?", userID).
		Scan(&t.ID, &t.UserID, &t.KindergartenID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher profile: %w", err)
	}
	return t, nil
}

// GetTeacherProfileByID retrieves a teacher affiliation by its own ID
func (r *KindergartenRepository) GetTeacherProfileByID(id int64) (*models.TeacherProfile, error) {
	t := &models.TeacherProfile{}
	err := r.db.QueryRow("SELECT id, user_id, kindergarten_id FROM teacher_profiles WHERE id = ?", id).
		Scan(&t.ID, &t.UserID, &t.KindergartenID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher profile: %w", err)
	}
	return t, nil
}

// ListTeachersByKindergarten retrieves teacher affiliations of a kindergarten
func (r *KindergartenRepository) ListTeachersByKindergarten(kindergartenID int64) ([]models.TeacherProfile, error) {
	return r.listTeachers("SELECT id, user_id, kindergarten_id FROM teacher_profiles WHERE kindergarten_id = ? ORDER BY id ASC", kindergartenID)
}

// ListAllTeachers retrieves every teacher affiliation
func (r *KindergartenRepository) ListAllTeachers() ([]models.TeacherProfile, error) {
	return r.listTeachers("SELECT id, user_id, kindergarten_id FROM teacher_profiles ORDER BY id ASC")
}

func (r *KindergartenRepository) listTeachers(query string, args ...interface{}) ([]models.TeacherProfile, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teacher profiles: %w", err)
	}
	defer rows.Close()

	var teachers []models.TeacherProfile
	for rows.Next() {
		var t models.TeacherProfile
		if err := rows.Scan(&t.ID, &t.UserID, &t.KindergartenID); err != nil {
			return nil, fmt.Errorf("failed to scan teacher profile: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, nil
}

// DeleteTeacherProfileByUserID removes a teacher affiliation
func (r *KindergartenRepository) DeleteTeacherProfileByUserID(userID int64) error {
	_, err := r.db.Exec("DELETE FROM teacher_profiles WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete teacher profile: %w", err)
	}
	return nil
}

// CountTeachers counts all teacher affiliations
func (r *KindergartenRepository) CountTeachers() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM teacher_profiles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}
	return count, nil
}

// CreateAdminProfile links an admin account to a kindergarten. The unique
// constraints reject a second admin for the same kindergarten and a second
// kindergarten for the same admin.
func (r *KindergartenRepository) CreateAdminProfile(userID, kindergartenID int64) (*models.AdminProfile, error) {
	id, err := r.db.ExecReturningID("INSERT INTO admin_profiles (user_id, kindergarten_id) VALUES (?, ?)", userID, kindergartenID)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin profile: %w", err)
	}
	return &models.AdminProfile{ID: id, UserID: userID, KindergartenID: kindergartenID}, nil
}

// GetAdminProfileByUserID retrieves an admin affiliation by account ID
func (r *KindergartenRepository) GetAdminProfileByUserID(userID int64) (*models.AdminProfile, error) {
	a := &models.AdminProfile{}
	err := r.db.QueryRow("SELECT id, user_id, kindergarten_id FROM admin_profiles WHERE user_id = ?", userID).
		Scan(&a.ID, &a.UserID, &a.KindergartenID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin profile: %w", err)
	}
	return a, nil
}

// GetAdminProfileByKindergarten retrieves the admin affiliation of a kindergarten
func (r *KindergartenRepository) GetAdminProfileByKindergarten(kindergartenID int64) (*models.AdminProfile, error) {
	a := &models.AdminProfile{}
	err := r.db.QueryRow("SELECT id, user_id, kindergarten_id FROM admin_profiles WHERE kindergarten_id = ?", kindergartenID).
		Scan(&a.ID, &a.UserID, &a.KindergartenID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin profile: %w", err)
	}
	return a, nil
}

// DeleteAdminProfile detaches the admin of a kindergarten
func (r *KindergartenRepository) DeleteAdminProfile(kindergartenID int64) error {
	_, err := r.db.Exec("DELETE FROM admin_profiles WHERE kindergarten_id = ?", kindergartenID)
	if err != nil {
		return fmt.Errorf("failed to delete admin profile: %w", err)
	}
	return nil
}

// CreateTeacherClass assigns a teacher to a class
func (r *KindergartenRepository) CreateTeacherClass(teacherID, classID int64) (*models.TeacherClass, error) {
	id, err := r.db.ExecReturningID("INSERT INTO teacher_classes (teacher_id, class_id) VALUES (?, ?)", teacherID, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher assignment: %w", err)
	}
	return &models.TeacherClass{ID: id, TeacherID: teacherID, ClassID: classID}, nil
}

// GetTeacherClassByID retrieves an assignment by ID
func (r *KindergartenRepository) GetTeacherClassByID(id int64) (*models.TeacherClass, error) {
	tc := &models.TeacherClass{}
	err := r.db.QueryRow("SELECT id, teacher_id, class_id FROM teacher_classes WHERE id = ?", id).
		Scan(&tc.ID, &tc.TeacherID, &tc.ClassID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher assignment: %w", err)
	}
	return tc, nil
}

// ListTeacherClasses retrieves assignments, optionally restricted to one teacher
func (r *KindergartenRepository) ListTeacherClasses(teacherID int64) ([]models.TeacherClass, error) {
	query := "SELECT id, teacher_id, class_id FROM teacher_classes ORDER BY id ASC"
	var args []interface{}
	if teacherID != 0 {
		query = "SELECT id, teacher_id, class_id FROM teacher_classes WHERE teacher_id = ? ORDER BY id ASC"
		args = append(args, teacherID)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teacher assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.TeacherClass
	for rows.Next() {
		var tc models.TeacherClass
		if err := rows.Scan(&tc.ID, &tc.TeacherID, &tc.ClassID); err != nil {
			return nil, fmt.Errorf("failed to scan teacher assignment: %w", err)
		}
		assignments = append(assignments, tc)
	}
	return assignments, nil
}

// ListClassIDsByTeacherUser returns the class ids a teacher account is
// assigned to. This is what populates a teacher Actor's class set.
func (r *KindergartenRepository) ListClassIDsByTeacherUser(userID int64) ([]int64, error) {
	query := `
		SELECT tc.class_id
		FROM teacher_classes tc
		JOIN teacher_profiles tp ON tp.id = tc.teacher_id
		WHERE tp.user_id = ?
		ORDER BY tc.class_id ASC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned classes: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan class id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DeleteTeacherClass removes an assignment
func (r *KindergartenRepository) DeleteTeacherClass(id int64) error {
	_, err := r.db.Exec("DELETE FROM teacher_classes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete teacher assignment: %w", err)
	}
	return nil
}
