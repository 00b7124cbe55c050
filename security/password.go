// password.go - One-way password hashing and verification

// Package security wraps bcrypt for password storage. Plaintext passwords
// never leave this package's call sites: they are hashed on the way into the
// database and compared in constant time on the way back.
package security

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// HashPassword returns a salted bcrypt digest of plaintext. Each call embeds
// a fresh random salt, so hashing the same password twice yields different
// digests.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
