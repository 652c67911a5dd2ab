// Package auth holds credential derivation and verification shared by the
// login flow, the seeder, and the moderation manager's verify transition.
package auth

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DeriveInitialCredential returns the first-login secret for a freshly
// verified account: the last six characters of the student id (the whole
// id when shorter). Deterministic so support staff can tell a student
// their initial password without a reset flow.
func DeriveInitialCredential(studentID string) string {
	s := strings.TrimSpace(studentID)
	if len(s) <= 6 {
		return s
	}
	return s[len(s)-6:]
}

// HashCredential is the storage form of a derived initial credential.
// sha256 keeps the derivation reproducible; user-chosen passwords set at
// activation go through bcrypt instead.
func HashCredential(credential string) string {
	h := sha256.Sum256([]byte(credential))
	return fmt.Sprintf("%x", h)
}

// HashPassword hashes an activation-time, user-chosen password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks a presented secret against either storage form. Accounts
// keep the sha256 form until activation replaces it with bcrypt.
func Verify(stored, presented string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return stored == HashCredential(presented)
}
