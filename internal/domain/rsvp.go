package domain

import "time"

// RSVPStatus enumerates attendance answers.
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "GOING"
	RSVPMaybe    RSVPStatus = "MAYBE"
	RSVPNotGoing RSVPStatus = "NOT_GOING"
)

// Valid reports whether s is a known status.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPGoing, RSVPMaybe, RSVPNotGoing:
		return true
	}
	return false
}

// RSVP is a user's answer for an event. At most one exists per (user, event).
type RSVP struct {
	ID        string
	UserID    string
	EventID   string
	Status    RSVPStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	User  *UserSummary
	Event *EventSummary
}

// EventSummary is the short projection of an event embedded in RSVP payloads.
type EventSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// UpsertOutcome tells whether an upsert inserted a new row or updated an existing one.
type UpsertOutcome int

const (
	Created UpsertOutcome = iota + 1
	Updated
)

func (o UpsertOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	}
	return "unknown"
}
