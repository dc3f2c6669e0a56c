// Package config handles input from etc/*.toml files and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of every environment override (UMS_AUTH_SECRETKEY, ...).
	EnvPrefix = "UMS"

	// EnvConfigJSON holds a JSON document merged over the file configuration.
	EnvConfigJSON = "UMS_CONFIG_JSON"

	// envTokenExpireMinutes keeps the minute based variable of earlier deployments working.
	envTokenExpireMinutes = "AUTH_ACCESS_TOKEN_EXPIRE_MINUTES"

	defaultShutDownTime      = 5
	defaultAlgorithm         = "HS256"
	defaultPasswordScheme    = "argon2id"
	defaultAccessTokenExpire = 10 * time.Minute
	defaultRateLimitMax      = 10
	defaultRateLimitWindow   = time.Minute
	redacted                 = "***"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(path + "main.toml")
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// aliases used by the deployments of the previous implementation
	_ = v.BindEnv("auth.secretkey", "UMS_AUTH_SECRETKEY", "UMS_AUTH_SECRET_KEY", "AUTH_SECRET_KEY")
	_ = v.BindEnv("auth.algorithm", "UMS_AUTH_ALGORITHM", "AUTH_HASHING_ALGORITHM")

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	if minutes := os.Getenv(envTokenExpireMinutes); minutes != "" {
		m, errAtoi := strconv.Atoi(minutes)
		if errAtoi != nil {
			return Config{}, errors.Wrap(errAtoi, envTokenExpireMinutes)
		}

		c.Auth.AccessTokenExpire = time.Duration(m) * time.Minute
	}

	// override it from env
	if configAsJSON := os.Getenv(EnvConfigJSON); configAsJSON != "" {
		c, err = decodeAndMergeConfig(c, configAsJSON)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String. The token secret is redacted.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(redact(*c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String. The token secret is redacted.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(redact(*c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func redact(c Config) Config {
	if c.Auth.SecretKey != "" {
		c.Auth.SecretKey = redacted
	}

	if c.DB.Password != "" {
		c.DB.Password = redacted
	}

	if c.Seed.AdminPassword != "" {
		c.Seed.AdminPassword = redacted
	}

	return c
}

// validate the config and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Auth.SecretKey == "" {
		return errors.Wrap(ErrEmptySecretKey, invalidErrMessage)
	}

	if c.Auth.Algorithm == "" {
		c.Auth.Algorithm = defaultAlgorithm
	}

	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return errors.Wrap(ErrUnsupportedAlgorithm, invalidErrMessage)
	}

	if c.Auth.PasswordScheme == "" {
		c.Auth.PasswordScheme = defaultPasswordScheme
	}

	if c.Auth.PasswordScheme != "argon2id" && c.Auth.PasswordScheme != "bcrypt" {
		return errors.Wrap(ErrUnsupportedPasswordScheme, invalidErrMessage)
	}

	if c.Auth.AccessTokenExpire <= 0 {
		c.Auth.AccessTokenExpire = defaultAccessTokenExpire
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineMySQL
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnsupportedEngine, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.LoginRateLimit.Max <= 0 {
		c.Webserver.LoginRateLimit.Max = defaultRateLimitMax
	}

	if c.Webserver.LoginRateLimit.Expiration <= 0 {
		c.Webserver.LoginRateLimit.Expiration = defaultRateLimitWindow
	}

	return nil
}
