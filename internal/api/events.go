package api

import (
	"context"
	"strconv"
	"time"

	"github.com/laboissim/labctl/internal/domain"
)

// Events talks to the event and registration endpoints.
type Events struct {
	client *Client
}

// NewEvents creates an events client.
func NewEvents(client *Client) *Events {
	return &Events{client: client}
}

type eventDTO struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EventType       string `json:"event_type"`
	Location        string `json:"location"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	MaxParticipants *int   `json:"max_participants"`
	RegisteredCount int    `json:"registered_count"`
	IsFull          bool   `json:"is_full"`
	IsActive        bool   `json:"is_active"`
	CreatedBy       int64  `json:"created_by"`
	CreatedAt       string `json:"created_at"`
}

func (d eventDTO) toDomain() domain.Event {
	ev := domain.Event{
		ID:              strconv.FormatInt(d.ID, 10),
		Title:           d.Title,
		Description:     d.Description,
		Type:            domain.EventType(d.EventType),
		Location:        d.Location,
		StartDate:       parseTime(d.StartDate),
		EndDate:         parseTime(d.EndDate),
		RegisteredCount: d.RegisteredCount,
		IsFull:          d.IsFull,
		Active:          d.IsActive,
		CreatedBy:       strconv.FormatInt(d.CreatedBy, 10),
		CreatedAt:       parseTime(d.CreatedAt),
	}
	if d.MaxParticipants != nil {
		ev.MaxParticipants = *d.MaxParticipants
	}
	return ev
}

// List fetches all events.
func (e *Events) List(ctx context.Context, bearer string) ([]domain.Event, error) {
	var dtos []eventDTO
	if err := e.client.get(ctx, "/events/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Create schedules a new event.
func (e *Events) Create(ctx context.Context, bearer string, ev domain.Event) (domain.Event, error) {
	body := struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		EventType       string `json:"event_type"`
		Location        string `json:"location"`
		StartDate       string `json:"start_date"`
		EndDate         string `json:"end_date"`
		MaxParticipants int    `json:"max_participants,omitempty"`
	}{
		Title:           ev.Title,
		Description:     ev.Description,
		EventType:       string(ev.Type),
		Location:        ev.Location,
		StartDate:       ev.StartDate.Format(time.RFC3339),
		EndDate:         ev.EndDate.Format(time.RFC3339),
		MaxParticipants: ev.MaxParticipants,
	}

	var dto eventDTO
	if err := e.client.post(ctx, "/events/", bearer, body, &dto); err != nil {
		return domain.Event{}, err
	}
	return dto.toDomain(), nil
}

// Register signs the caller up for an event.
func (e *Events) Register(ctx context.Context, bearer, eventID, notes string) error {
	var body any
	if notes != "" {
		body = struct {
			Notes string `json:"notes"`
		}{notes}
	}
	return e.client.post(ctx, "/events/"+eventID+"/register/", bearer, body, nil)
}

// Unregister withdraws the caller's registration.
func (e *Events) Unregister(ctx context.Context, bearer, eventID string) error {
	return e.client.post(ctx, "/events/"+eventID+"/unregister/", bearer, nil, nil)
}

type registrationDTO struct {
	ID               int64  `json:"id"`
	Event            int64  `json:"event"`
	User             int64  `json:"user"`
	UserName         string `json:"user_name"`
	Status           string `json:"status"`
	Notes            string `json:"notes"`
	RegistrationDate string `json:"registration_date"`
}

func (d registrationDTO) toDomain() domain.EventRegistration {
	return domain.EventRegistration{
		ID:           strconv.FormatInt(d.ID, 10),
		EventID:      strconv.FormatInt(d.Event, 10),
		UserID:       strconv.FormatInt(d.User, 10),
		UserName:     d.UserName,
		Status:       domain.RegistrationStatus(d.Status),
		Notes:        d.Notes,
		RegisteredAt: parseTime(d.RegistrationDate),
	}
}

// Registrations lists an event's registrations (organizer view).
func (e *Events) Registrations(ctx context.Context, bearer, eventID string) ([]domain.EventRegistration, error) {
	var dtos []registrationDTO
	if err := e.client.get(ctx, "/events/"+eventID+"/registrations/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.EventRegistration, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpdateRegistrationStatus confirms or cancels one registration.
func (e *Events) UpdateRegistrationStatus(ctx context.Context, bearer, eventID, registrationID string, status domain.RegistrationStatus) error {
	body := struct {
		RegistrationID string                    `json:"registration_id"`
		Status         domain.RegistrationStatus `json:"status"`
	}{registrationID, status}
	return e.client.patch(ctx, "/events/"+eventID+"/update_registration_status/", bearer, body, nil)
}
