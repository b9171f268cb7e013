// Package domain defines the types and interfaces for the audit log
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one served prediction: who asked, what they sent, what they got
// entries are append only
type Entry struct {
	ID         uuid.UUID       `json:"id"`
	APIKey     string          `json:"api_key"`
	Company    string          `json:"firma"`
	Input      json.RawMessage `json:"ulaz_json"`
	Output     json.RawMessage `json:"rezultat_json"`
	ClientAddr string          `json:"ip_adresa"`
	RequestID  string          `json:"request_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ListFilter narrows a listing; zero values match everything
type ListFilter struct {
	APIKey  string
	Company string
	Limit   int
}
