// Package domain defines the types and interfaces for the api key service
package domain

import "time"

const (
	// KeyPrefix marks keys issued by this service
	KeyPrefix = "sp_"

	// MsgInvalidKey is the one message callers see for every authentication failure
	MsgInvalidKey = "Nevažeći API ključ"
)

// Key is a stored api key record. Inactive keys are kept, never deleted
type Key struct {
	Key       string    `json:"api_key"`
	Company   string    `json:"firma"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Masked returns the key with everything but the prefix and last 4 chars hidden
func (k Key) Masked() string {
	if len(k.Key) <= len(KeyPrefix)+4 {
		return KeyPrefix + "****"
	}
	return k.Key[:len(KeyPrefix)] + "****" + k.Key[len(k.Key)-4:]
}
