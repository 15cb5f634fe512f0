package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost keeps verification in the tens-of-milliseconds range on current
// hardware, slow enough to resist brute force without hurting login latency.
const hashCost = 12

// HashPassword hashes a password using bcrypt. The salt is generated by
// bcrypt and embedded in the returned digest.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword checks whether a password matches the given bcrypt digest.
// A mismatch returns (false, nil); an error means the digest itself is
// unusable and the caller should treat it as an internal failure.
func VerifyPassword(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
