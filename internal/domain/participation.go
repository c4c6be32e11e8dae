package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for participation operations.
var (
	ErrAlreadyParticipating  = errors.New("already participating in this event")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrInvalidTransition     = errors.New("invalid participation status transition")
)

// Participation statuses.
const (
	ParticipationPending   = "pending"
	ParticipationConfirmed = "confirmed"
	ParticipationCompleted = "completed"
	ParticipationCancelled = "cancelled"
	ParticipationNoShow    = "no_show"
)

// Participation is the authoritative record that a volunteer did (or is
// expected to) take part in an event. At most one participation exists per
// (volunteer, event) pair.
// swagger:model Participation
type Participation struct {
	ID                string    `json:"id"`
	PublicID          int64     `json:"public_id"`
	EventID           string    `json:"event_id"`
	VolunteerID       string    `json:"volunteer_id"`
	ParticipationDate time.Time `json:"participation_date"`
	HoursVolunteered  float64   `json:"hours_volunteered"`
	Status            string    `json:"status"`
	JoinedAt          time.Time `json:"joined_at"`
}

// VolunteerStats is a pure aggregate over one volunteer's participations.
// CompletionRate is completed/total, 0.0 when total is 0.
// swagger:model VolunteerStats
type VolunteerStats struct {
	VolunteerID     string  `json:"volunteer_id"`
	TotalEvents     int     `json:"total_events"`
	PendingEvents   int     `json:"pending_events"`
	ConfirmedEvents int     `json:"confirmed_events"`
	CompletedEvents int     `json:"completed_events"`
	CancelledEvents int     `json:"cancelled_events"`
	NoShowEvents    int     `json:"no_show_events"`
	CompletionRate  float64 `json:"completion_rate"`
	TotalHours      float64 `json:"total_hours"`
}

// ParticipationRepository defines storage operations for participations.
// Create must enforce the at-most-one-per-pair invariant against concurrent
// requests (unique constraint or equivalent serialization point).
type ParticipationRepository interface {
	// Create stores a new participation. Returns ErrAlreadyParticipating if
	// one already exists for the (volunteer, event) pair, of any status.
	Create(ctx context.Context, p *Participation) error
	GetByEventAndVolunteer(ctx context.Context, eventID, volunteerID string) (*Participation, error)
	// UpdateStatus moves the pair's record from one status to another and
	// returns the updated row. Returns ErrParticipationNotFound when no row
	// matches both the pair and the expected current status, so two
	// transitions from the same state cannot both win.
	UpdateStatus(ctx context.Context, eventID, volunteerID, from, to string) (*Participation, error)
	ListByVolunteerID(ctx context.Context, volunteerID string) ([]*Participation, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Participation, error)
	ListAll(ctx context.Context) ([]*Participation, error)
}

// ParticipationService manages the participation lifecycle and statistics.
type ParticipationService interface {
	// Participate records a self-service join; the new record is pending.
	Participate(ctx context.Context, volunteerID, eventID string) (*Participation, error)
	// Assign records an administrator-driven assignment; the new record is
	// confirmed.
	Assign(ctx context.Context, volunteerID, eventID string) (*Participation, error)
	// UpdateStatus applies a transition. Allowed: pending to confirmed or
	// cancelled; confirmed to completed, cancelled, or no_show. Completed,
	// cancelled, and no_show are terminal.
	UpdateStatus(ctx context.Context, volunteerID, eventID, status string) (*Participation, error)
	GetHistory(ctx context.Context, volunteerID string) ([]*Participation, error)
	ListAll(ctx context.Context) ([]*Participation, error)
	GetStats(ctx context.Context, volunteerID string) (*VolunteerStats, error)
}
