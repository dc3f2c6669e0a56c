package config

import (
	"time"

	"github.com/umsproject/ums/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	Port           int       // listening port for the webserver
	ShutDownTime   int       // wait time for shutdown
	URL            string    // base url for the webserver
	AllowOrigins   string    // comma separated CORS origins, empty disables CORS
	LoginRateLimit RateLimit // throttling of POST /login
}

// RateLimit configures the login limiter.
type RateLimit struct {
	Enabled    bool
	Max        int
	Expiration time.Duration
}

// Auth holds the token and password settings.
type Auth struct {
	SecretKey         string        // shared HMAC secret used to sign access tokens
	Algorithm         string        // HS256, HS384 or HS512
	AccessTokenExpire time.Duration // lifetime of an issued access token
	PasswordScheme    string        // argon2id or bcrypt, used for new digests
}

// Seed holds the bootstrap data settings.
type Seed struct {
	Enabled       bool
	AdminName     string
	AdminPassword string // generated and logged once when empty
	AdminEmail    string
}
