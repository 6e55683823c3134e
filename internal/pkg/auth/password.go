package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored passwords
const BcryptCost = 12

// OTPBcryptCost is lower because codes are short-lived and attempt-limited
const OTPBcryptCost = bcrypt.DefaultCost

// HashPassword hashes a password for storage
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a stored hash with a candidate password
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
