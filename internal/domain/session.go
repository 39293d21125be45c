// internal/domain/session.go
package domain

import "github.com/google/uuid"

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "IDR"

// Session identifies who is driving a ledger operation.
// It is passed explicitly into every service call instead of being read
// from a process-wide settings row.
type Session struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Currency    string `json:"currency"`
}

// NewSession creates a Session with a fresh random ID.
func NewSession(displayName, currency string) Session {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Session{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Currency:    currency,
	}
}

// LogAttrs returns key/value pairs identifying the session in structured logs.
func (s Session) LogAttrs() []any {
	return []any{"session_id", s.ID, "user", s.DisplayName}
}
