package domain

import "time"

// Favorite marks an event as bookmarked by a user.
type Favorite struct {
	ID        string
	UserID    string
	EventID   string
	CreatedAt time.Time

	Event *Event
}
