package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// The server's auth settings are secrets, so unlike the rest of Config they
// never come from the JSON file: defaults first, environment on top, then
// validation.

// JWTConfig holds configuration for session token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig assembles token settings from JWT_SECRET (required) and
// JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{ExpirationHours: 24}

	cfg.Secret = os.Getenv("JWT_SECRET")
	if err := envInt("JWT_EXPIRATION_HOURS", &cfg.ExpirationHours); err != nil {
		return nil, err
	}

	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if cfg.ExpirationHours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", cfg.ExpirationHours)
	}
	return cfg, nil
}

// PasswordConfig holds configuration for hashing and verifying the shared
// access password that gates the service.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig assembles password settings from BCRYPT_COST
// (default: 12) and the optional PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	cfg := &PasswordConfig{BcryptCost: 12}

	cfg.Pepper = os.Getenv("PASSWORD_PEPPER")
	if err := envInt("BCRYPT_COST", &cfg.BcryptCost); err != nil {
		return nil, err
	}

	if cfg.BcryptCost < 10 || cfg.BcryptCost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cfg.BcryptCost)
	}
	return cfg, nil
}

// HashPassword hashes a password using bcrypt, with the pepper applied when
// one is configured.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}

// envInt overwrites *dst with the named variable's value when it is set.
func envInt(name string, dst *int) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", name, err)
	}
	*dst = value
	return nil
}
