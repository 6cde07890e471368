package domain

import "time"

// Entry represents a shortened URL and its lifecycle state.
type Entry struct {
	ID              string    `json:"id"`
	LongURL         string    `json:"long_url"`
	ShortCode       string    `json:"short_code"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	Clicks          int64     `json:"clicks"`
	IsValid         bool      `json:"is_valid"`
	CustomShortCode string    `json:"custom_short_code,omitempty"` // Set only when the caller supplied the code
}

// IsExpired reports whether the entry is past its expiry at the given time.
func (e *Entry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// IsLive reports whether the entry can still be served at the given time.
func (e *Entry) IsLive(now time.Time) bool {
	return e.IsValid && !e.IsExpired(now)
}

// Clone creates a copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}
