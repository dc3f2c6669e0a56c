package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SchemeArgon2id hashes with argon2id.
	SchemeArgon2id = "argon2id"
	// SchemeBcrypt hashes with bcrypt, the format of digests written by earlier deployments.
	SchemeBcrypt = "bcrypt"
)

// Hasher creates password digests with one scheme and verifies digests of any supported scheme.
type Hasher struct {
	scheme string
}

// NewHasher returns a Hasher creating digests with scheme.
func NewHasher(scheme string) (*Hasher, error) {
	switch scheme {
	case SchemeArgon2id, SchemeBcrypt:
		return &Hasher{scheme: scheme}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// Scheme returns the scheme used for new digests.
func (h *Hasher) Scheme() string {
	return h.scheme
}

// Hash returns a salted digest of password.
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == SchemeBcrypt {
		digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}

		return string(digest), nil
	}

	digest, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("argon2id: %w", err)
	}

	return digest, nil
}

// Verify reports whether password matches digest. The scheme is read from the digest prefix.
func (h *Hasher) Verify(password, digest string) (bool, error) {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		match, err := argon2id.ComparePasswordAndHash(password, digest)
		if err != nil {
			return false, fmt.Errorf("argon2id: %w", err)
		}

		return match, nil
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}

		if err != nil {
			return false, fmt.Errorf("bcrypt: %w", err)
		}

		return true, nil
	default:
		return false, ErrUnknownScheme
	}
}
