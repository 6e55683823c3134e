package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// GenerateOTP returns a uniformly random numeric code of the given length.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("otp length must be positive, got %d", length)
	}
	digits := make([]byte, length)
	ten := big.NewInt(10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate otp: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// HashOTP hashes a verification code for storage
func HashOTP(code string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(code), OTPBcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckOTP compares a stored code hash with the submitted code
func CheckOTP(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
