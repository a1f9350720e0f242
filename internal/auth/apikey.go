package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashAPIKey produces the bcrypt hash stored in config. The plain key
// itself is never written to disk.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckAPIKey(hash, key string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}
