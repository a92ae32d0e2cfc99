// Package cryptox holds the password hashing used for account credentials.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of a freshly generated password salt.
	SaltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives the stored hash for password with Argon2id.
func HashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// CheckPassword reports whether password matches hash, in constant time.
func CheckPassword(password string, salt, hash []byte) bool {
	return subtle.ConstantTimeCompare(hash, HashPassword(password, salt)) == 1
}
