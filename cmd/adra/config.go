package main

import (
	"encoding/base64"
	"fmt"

	"adra/pkg/types"

	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.Environment == "production" {
		if c.AdminPassword == "" {
			return nil, fmt.Errorf("set ADMIN_PASSWORD")
		}
		if c.AdminSessionSecret == "" {
			return nil, fmt.Errorf("set ADMIN_SESSION_SECRET")
		}
		if c.JWTSecret == "" {
			return nil, fmt.Errorf("set JWT_SECRET")
		}
		if c.CookieHashKey == "" || c.CookieBlockKey == "" {
			return nil, fmt.Errorf("set COOKIE_HASH_KEY and COOKIE_BLOCK_KEY")
		}
		return c, nil
	}

	// Development fallbacks, never used in production.
	if c.AdminPassword == "" {
		c.AdminPassword = "admin"
	}
	if c.AdminSessionSecret == "" {
		c.AdminSessionSecret = "admin-dev-secret"
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "dev-secret"
	}
	if c.CookieHashKey == "" {
		c.CookieHashKey = base64.StdEncoding.EncodeToString([]byte("dev-hash-key-dev-hash-key-dev-ha"))
	}
	if c.CookieBlockKey == "" {
		c.CookieBlockKey = base64.StdEncoding.EncodeToString([]byte("dev-block-key-dev-block-key-dev-"))
	}

	return c, nil
}
