package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Defaults returns the values used for settings no other source provides.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:       "dev",
			LogLevel:      "info",
			BcryptCost:    bcrypt.DefaultCost,
			TokenIssuer:   "go-community",
			TokenDuration: time.Hour,
		},
		Server: Server{
			HTTPAddress:       "localhost:8080",
			RequestTimeout:    30 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}
