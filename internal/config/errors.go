package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrEmptySecretKey error if no token signing secret was configured.
	ErrEmptySecretKey = errors.New("config auth.secretkey can not be empty")

	// ErrUnsupportedAlgorithm error if the token signing algorithm is not an HMAC variant.
	ErrUnsupportedAlgorithm = errors.New("config auth.algorithm must be one of HS256, HS384, HS512")

	// ErrUnsupportedPasswordScheme error if the password scheme is unknown.
	ErrUnsupportedPasswordScheme = errors.New("config auth.passwordscheme must be argon2id or bcrypt")

	// ErrUnsupportedEngine error if db.gormengine is unknown.
	ErrUnsupportedEngine = errors.New("config db.gormengine must be one of mysql, postgres, sqlite")
)
