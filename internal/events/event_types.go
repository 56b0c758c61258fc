package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventSessionStarted EventType = "session_started"
	EventSessionEnded   EventType = "session_ended"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	ConfirmationCode string `json:"-"`
}

// SessionStartedPayload payload.
type SessionStartedPayload struct {
	Username       string `json:"username"`
	LedgerRecorded bool   `json:"ledger_recorded"`
}

// SessionEndedPayload payload.
type SessionEndedPayload struct {
	AuthorityInvalidated bool `json:"authority_invalidated"`
	LedgerRecordFound    bool `json:"ledger_record_found"`
	LedgerUpdated        bool `json:"ledger_updated"`
}
