package session

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/shomrim/patrol-cad-client/cache"
	"github.com/shomrim/patrol-cad-client/models"
)

var passcodePattern = regexp.MustCompile(`^[0-9]{4}$`)

// SetPasscode stores the 4-digit quick-unlock code. Only a bcrypt hash ever
// reaches the cache.
func (s *Session) SetPasscode(code string) error {
	if !passcodePattern.MatchString(code) {
		return &models.ValidationError{Field: "passcode", Reason: "must be exactly 4 digits"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if s.m.Cache == nil {
		return nil
	}
	return s.m.Cache.Put(cache.KeyPasscode, string(hash))
}

// VerifyPasscode checks an entered code against the stored hash. A missing
// stored passcode counts as a mismatch, not an error.
func (s *Session) VerifyPasscode(code string) bool {
	var hash string
	if s.m.Cache == nil || !s.m.Cache.Get(cache.KeyPasscode, &hash) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
