package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
	"kinderpost/internal/security"
	"kinderpost/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPin         = errors.New("invalid email or pin")
	ErrPinNotSet          = errors.New("no pin configured for this account")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles account registration and authentication
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenIssuer
	email    *EmailService
}

// NewAuthService creates a new auth service. email may be nil; welcome mail
// is then skipped.
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer, email *EmailService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		email:    email,
	}
}

// Register creates a new account with the given role
func (s *AuthService) Register(email, password, name string, role models.Role) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, name, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.email != nil {
		// Welcome mail is best effort; registration already succeeded
		if err := s.email.SendWelcome(user.Email, user.Name); err != nil {
			slog.Warn("welcome email failed", "email", user.Email, "error", err)
		}
	}

	return user, nil
}

// Login authenticates with email and password and returns a bearer token
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}

	if !security.VerifyPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// SetPin configures a quick-login PIN for an account
func (s *AuthService) SetPin(userID int64, pin string) error {
	if err := validation.ValidatePin(pin); err != nil {
		return err
	}

	pinHash, err := security.HashPin(pin)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}
	if err := s.userRepo.UpdatePin(userID, pinHash); err != nil {
		return fmt.Errorf("failed to set pin: %w", err)
	}
	return nil
}

// LoginWithPin authenticates with email and PIN and returns a bearer token.
// The email is required so a PIN alone never identifies an account.
func (s *AuthService) LoginWithPin(email, pin string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidPin
	}
	if user.PinHash == "" {
		return "", nil, ErrPinNotSet
	}

	if !security.VerifyPin(user.PinHash, pin) {
		return "", nil, ErrInvalidPin
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to its account
func (s *AuthService) Authenticate(token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes an account's display name and profile picture
func (s *AuthService) UpdateProfile(userID int64, name, profilePicture string) (*models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(userID, name, profilePicture); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *AuthService) ChangePassword(userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !security.VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateDeviceToken stores the push delivery token of a user's device
func (s *AuthService) UpdateDeviceToken(userID int64, deviceToken string) error {
	if err := s.userRepo.UpdateDeviceToken(userID, deviceToken); err != nil {
		return fmt.Errorf("failed to update device token: %w", err)
	}
	return nil
}

// LoginWithOAuth signs a user in via a verified external identity. A first
// login with an unknown identity creates a parent account; returning
// identities are matched by provider and subject, then by email.
func (s *AuthService) LoginWithOAuth(provider, subject, email, name string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil && email != "" {
		user, err = s.userRepo.GetUserByEmail(email)
		if err != nil {
			return "", nil, fmt.Errorf("failed to get user: %w", err)
		}
		if user != nil {
			if err := s.userRepo.LinkOAuthProvider(user.ID, provider, subject); err != nil {
				return "", nil, fmt.Errorf("failed to link oauth identity: %w", err)
			}
		}
	}

	if user == nil {
		if err := validation.ValidateEmail(email); err != nil {
			return "", nil, err
		}
		if name == "" {
			name = email
		}
		// No usable password; the account signs in through the provider
		randomHash, err := security.HashPassword(randomSecret())
		if err != nil {
			return "", nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user, err = s.userRepo.CreateUser(email, randomHash, name, models.RoleParent)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create user: %w", err)
		}
		if err := s.userRepo.LinkOAuthProvider(user.ID, provider, subject); err != nil {
			return "", nil, fmt.Errorf("failed to link oauth identity: %w", err)
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// DeleteAccount removes a user and everything owned by it
func (s *AuthService) DeleteAccount(userID int64) error {
	if err := s.userRepo.DeleteUser(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// DeleteUser removes another user's account. Only the superadmin may do
// this, and only for teachers and parents; admins are detached from their
// kindergarten first.
func (s *AuthService) DeleteUser(actor authz.Actor, userID int64) error {
	if actor.Role != models.RoleSuperadmin {
		return ErrAccessDenied
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Role != models.RoleTeacher && user.Role != models.RoleParent {
		return ErrWrongRole
	}
	return s.DeleteAccount(userID)
}

func randomSecret() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), security.RandomID())
}
