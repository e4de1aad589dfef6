package domain

import "time"

// EventType categorizes a team event.
type EventType string

const (
	EventConference   EventType = "conference"
	EventSeminar      EventType = "seminar"
	EventWorkshop     EventType = "workshop"
	EventMeeting      EventType = "meeting"
	EventPresentation EventType = "presentation"
	EventOther        EventType = "other"
)

// Event is a scheduled team event members can register for.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Type            EventType `json:"event_type"`
	Location        string    `json:"location"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MaxParticipants int       `json:"max_participants,omitempty"`
	RegisteredCount int       `json:"registered_count"`
	IsFull          bool      `json:"is_full"`
	Active          bool      `json:"is_active"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// RegistrationStatus tracks an event registration's lifecycle.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// EventRegistration is one member's registration for an event.
type EventRegistration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event"`
	UserID       string             `json:"user"`
	UserName     string             `json:"user_name"`
	Status       RegistrationStatus `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	RegisteredAt time.Time          `json:"registration_date"`
}
