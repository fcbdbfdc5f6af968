// Package config loads server settings and endpoint definitions from
// JSON or YAML files.
package config

import (
	"time"

	"github.com/getmockd/reflectd/pkg/endpoint"
)

// Settings holds the runtime tunables of the server.
type Settings struct {
	// Listen is the mock server bind address
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty"`

	// AdminListen is the admin API bind address
	AdminListen string `json:"adminListen,omitempty" yaml:"adminListen,omitempty"`

	// MaxDelaySeconds caps DELAY actions; 0 means uncapped
	MaxDelaySeconds float64 `json:"maxDelaySeconds,omitempty" yaml:"maxDelaySeconds,omitempty"`

	// SessionTTLMinutes is the lifetime of STORE entries; 0 means they
	// never expire
	SessionTTLMinutes float64 `json:"sessionTtlMinutes,omitempty" yaml:"sessionTtlMinutes,omitempty"`

	LogLevel  string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFormat string `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
}

// DefaultSettings returns the settings used when no file or flag says
// otherwise.
func DefaultSettings() Settings {
	return Settings{
		Listen:            ":4000",
		AdminListen:       ":4001",
		MaxDelaySeconds:   10,
		SessionTTLMinutes: 30,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// MaxDelay returns the DELAY ceiling as a duration.
func (s *Settings) MaxDelay() time.Duration {
	return time.Duration(s.MaxDelaySeconds * float64(time.Second))
}

// SessionTTL returns the STORE entry lifetime as a duration.
func (s *Settings) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMinutes * float64(time.Minute))
}

// merge overlays non-zero fields of other onto s.
func (s *Settings) merge(other Settings) {
	if other.Listen != "" {
		s.Listen = other.Listen
	}
	if other.AdminListen != "" {
		s.AdminListen = other.AdminListen
	}
	if other.MaxDelaySeconds != 0 {
		s.MaxDelaySeconds = other.MaxDelaySeconds
	}
	if other.SessionTTLMinutes != 0 {
		s.SessionTTLMinutes = other.SessionTTLMinutes
	}
	if other.LogLevel != "" {
		s.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		s.LogFormat = other.LogFormat
	}
}

// File is the on-disk configuration document.
type File struct {
	Settings  Settings             `json:"settings,omitempty" yaml:"settings,omitempty"`
	Endpoints []*endpoint.Endpoint `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
}
