package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// UserRepository handles database operations for accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, password_hash, name, role, pin_hash, device_token, profile_picture, oauth_provider, oauth_subject, created_at, updated_at"

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Role,
		&u.PinHash,
		&u.DeviceToken,
		&u.ProfilePicture,
		&u.OAuthProvider,
		&u.OAuthSubject,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser creates a new account with the given role
func (r *UserRepository) CreateUser(email, passwordHash, name string, role models.Role) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, role, pin_hash, device_token, profile_picture, oauth_provider, oauth_subject)
		VALUES (?, ?, ?, ?, '', '', '', '', '')
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetUserByEmail retrieves an account by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves an account by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByOAuth retrieves an account by its linked OAuth identity
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE oauth_provider = ? AND oauth_subject = ?", provider, subject)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by oauth: %w", err)
	}
	return user, nil
}

// LinkOAuthProvider attaches an OAuth identity to an existing account
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	_, err := r.db.Exec("UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", provider, subject, userID)
	if err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}
	return nil
}

// UpdateProfile updates the mutable profile fields
func (r *UserRepository) UpdateProfile(id int64, name, profilePicture string) error {
	_, err := r.db.Exec("UPDATE users SET name = ?, profile_picture = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", name, profilePicture, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password hash
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	_, err := r.db.Exec("UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdatePin replaces the PIN hash
func (r *UserRepository) UpdatePin(id int64, pinHash string) error {
	_, err := r.db.Exec("UPDATE users SET pin_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", pinHash, id)
	if err != nil {
		return fmt.Errorf("failed to update pin: %w", err)
	}
	return nil
}

// UpdateDeviceToken stores the push registration token sent at login
func (r *UserRepository) UpdateDeviceToken(id int64, deviceToken string) error {
	_, err := r.db.Exec("UPDATE users SET device_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", deviceToken, id)
	if err != nil {
		return fmt.Errorf("failed to update device token: %w", err)
	}
	return nil
}

// DeleteUser removes an account; dependent rows cascade
func (r *UserRepository) DeleteUser(id int64) error {
	_, err := r.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ListUsersByRole retrieves all accounts with the given role
func (r *UserRepository) ListUsersByRole(role models.Role) ([]models.User, error) {
	rows, err := r.db.Query("SELECT "+userColumns+" FROM users WHERE role = ? ORDER BY name ASC", string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, nil
}

// CountUsersByRole counts accounts with the given role
func (r *UserRepository) CountUsersByRole(role models.Role) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = ?", string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
