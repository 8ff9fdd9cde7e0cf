// Package device registers app installations and issues their bearer tokens.
package device

import (
	"errors"
	"time"
)

const (
	PlatformWeb     = "web"
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformCLI     = "cli"
)

var ErrNotFound = errors.New("device not found")

type Device struct {
	ID         string     `json:"id"`
	Platform   string     `json:"platform"`
	Name       string     `json:"name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt time.Time  `json:"last_seen_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// Registration is returned once, when the device is created.
type Registration struct {
	Device    Device    `json:"device"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
