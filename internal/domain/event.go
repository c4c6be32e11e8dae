package domain

import (
	"context"
	"time"
)

// Event urgency levels.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Event lifecycle statuses.
const (
	EventStatusOpen      = "open"
	EventStatusClosed    = "closed"
	EventStatusCancelled = "cancelled"
)

// Event represents a volunteer event in the organization's catalog.
// StartTime and EndTime are "HH:MM" (24h) on EventDate; EndTime must be
// after StartTime. RequiredSkills come from the skill vocabulary.
// swagger:model Event
type Event struct {
	ID             string    `json:"id"`
	PublicID       int64     `json:"public_id"`
	Title          string    `json:"title" validate:"required,min=3,max=100"`
	Description    string    `json:"description" validate:"max=500"`
	Category       string    `json:"category" validate:"required,min=3,max=50"`
	RequiredSkills []string  `json:"required_skills" validate:"max=10"`
	Urgency        string    `json:"urgency" validate:"required,oneof=low medium high"`
	EventDate      time.Time `json:"event_date"`
	StartTime      string    `json:"start_time" validate:"required,len=5"`
	EndTime        string    `json:"end_time" validate:"required,len=5"`
	Location       string    `json:"location" validate:"required,min=3,max=100"`
	Capacity       int       `json:"capacity" validate:"required,gte=1,lte=10000"`
	Status         string    `json:"status" validate:"required,oneof=open closed cancelled"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EventUpdate is a partial update; nil fields are left unchanged.
type EventUpdate struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	RequiredSkills *[]string  `json:"required_skills"`
	Urgency        *string    `json:"urgency"`
	EventDate      *time.Time `json:"event_date"`
	StartTime      *string    `json:"start_time"`
	EndTime        *string    `json:"end_time"`
	Location       *string    `json:"location"`
	Capacity       *int       `json:"capacity"`
	Status         *string    `json:"status"`
}

// EventFilter narrows event listings. Zero values mean "no filter".
type EventFilter struct {
	Search   string
	Category string
	Status   string
	PaginationParams
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, int, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines business logic for the event catalog.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, int, error)
	Update(ctx context.Context, id string, update *EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}
