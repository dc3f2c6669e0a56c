package uniuri

import (
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// StdLen is the default length of a generated password.
	StdLen = 16

	// MinLen is the shortest password Password accepts.
	MinLen = 8

	// maxBufLen caps the random buffer read per round.
	maxBufLen = 2048

	byteRange = 256
)

var (
	// StdChars is the alphanumeric alphabet.
	StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

	// URLChars is the alphabet of URL safe base64, as used by the previous password generator.
	URLChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")

	// ErrCharset is returned for an alphabet with fewer than 2 or more than 256 symbols.
	ErrCharset = errors.New("uniuri: charset must hold between 2 and 256 characters")

	// ErrTooShort is returned when a password shorter than MinLen is requested.
	ErrTooShort = fmt.Errorf("uniuri: length must be at least %d", MinLen)
)

// Password returns a random URL safe password of the given length.
func Password(length int) (string, error) {
	if length < MinLen {
		return "", ErrTooShort
	}

	return NewLenChars(length, URLChars)
}

// NewLenChars returns a random string of length symbols drawn from chars.
// Random bytes above the largest multiple of len(chars) are discarded so
// every symbol is equally likely.
func NewLenChars(length int, chars []byte) (string, error) {
	if length <= 0 {
		return "", nil
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		return "", ErrCharset
	}

	maxRb := byteRange - (byteRange % clen) - 1

	buf := make([]byte, min(length*2, maxBufLen))
	out := make([]byte, 0, length)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("uniuri: read random bytes: %w", err)
		}

		for _, rb := range buf {
			if int(rb) > maxRb {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
