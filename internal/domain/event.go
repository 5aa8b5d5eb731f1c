package domain

import "time"

// Event is a community event submitted by a user.
//
// Approved is false until an admin approves it, except for events created by an admin.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Location    string
	OrganizerID string
	Approved    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Organizer *UserSummary
	RSVPs     []RSVP
}

// EventPatch carries the optional fields of a partial event update.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Location == nil
}

// Apply copies the set fields onto e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
}
