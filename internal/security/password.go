package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its bcrypt hash
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPin hashes a short numeric PIN. PINs go through bcrypt like passwords;
// their weakness against offline brute force is accepted because they only
// work together with the account email.
func HashPin(pin string) (string, error) {
	return HashPassword(pin)
}

// VerifyPin checks a PIN against its hash
func VerifyPin(hash, pin string) bool {
	return VerifyPassword(hash, pin)
}
