// Package id generates identifiers for records created through the admin API.
package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// Prefixes for the record types that get server-assigned IDs.
const (
	PrefixEndpoint = "ep"
	PrefixResponse = "rsp"
)

// New generates a prefixed random ID, e.g. "ep_1a2b3c4d5e6f7a8b".
func New(prefix string) string {
	return prefix + "_" + Short()
}

// Short generates a short random hex ID (16 characters).
func Short() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UUID generates a UUID v4 string.
func UUID() string {
	return uuid.New().String()
}
