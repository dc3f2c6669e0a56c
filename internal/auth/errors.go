package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthentication is returned when a name and password pair is rejected.
	// Its message is the one shown to callers.
	ErrAuthentication = errors.New("incorrect name or password")

	// ErrUserNotFound is returned when no user has the given name.
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrAuthentication)

	// ErrBadCredentials is returned when the password does not match the stored digest.
	ErrBadCredentials = fmt.Errorf("%w: incorrect password", ErrAuthentication)

	// ErrNoRole is returned when a user without a role tries to log in.
	ErrNoRole = errors.New("user has no role assigned")

	// ErrCredentials is returned for a missing, malformed, expired or badly signed token,
	// and for a token whose subject no longer exists.
	ErrCredentials = errors.New("could not validate credentials")

	// ErrInsufficientScope is returned when a valid token lacks a required scope.
	ErrInsufficientScope = errors.New("not enough permissions")

	// ErrInactiveUser is returned when the token's user is inactive or deleted.
	ErrInactiveUser = errors.New("inactive user")

	// ErrUnknownScheme is returned for a password scheme or digest format this package cannot handle.
	ErrUnknownScheme = errors.New("unknown password scheme")

	// ErrUnsupportedAlgorithm is returned when tokens are configured with a non HMAC algorithm.
	ErrUnsupportedAlgorithm = errors.New("unsupported token algorithm")
)

// ChallengeError is a token rejection carrying the scopes the route required.
// It matches its cause (ErrCredentials or ErrInsufficientScope) with errors.Is.
type ChallengeError struct {
	Err    error
	Scopes []string
}

func (e *ChallengeError) Error() string {
	return e.Err.Error()
}

func (e *ChallengeError) Unwrap() error {
	return e.Err
}

// Challenge returns the WWW-Authenticate header value for the rejection.
func (e *ChallengeError) Challenge() string {
	if len(e.Scopes) == 0 {
		return "Bearer"
	}

	return fmt.Sprintf(`Bearer scope="%s"`, strings.Join(e.Scopes, " "))
}
