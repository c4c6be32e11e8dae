package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for signup operations.
var (
	ErrAlreadySignedUp = errors.New("already signed up for this event")
	ErrSignupNotFound  = errors.New("signup not found or already cancelled")
)

// Signup statuses. Cancelled is terminal for a signup instance; a volunteer
// may sign up again afterwards, which creates a new instance.
const (
	SignupStatusPending   = "pending"
	SignupStatusConfirmed = "confirmed"
	SignupStatusCancelled = "cancelled"
)

// Signup is a volunteer's voluntary request to join an event, prior to an
// authoritative participation record. At most one non-cancelled signup may
// exist per (volunteer, event) pair at any time.
// swagger:model Signup
type Signup struct {
	ID          string    `json:"id"`
	PublicID    int64     `json:"public_id"`
	EventID     string    `json:"event_id"`
	VolunteerID string    `json:"volunteer_id"`
	Status      string    `json:"status"`
	SignupTime  time.Time `json:"signup_time"`
}

// SignupRepository defines storage operations for signups. Create must be
// the serialization point for the at-most-one-active invariant: concurrent
// creates for the same (volunteer, event) pair may not both succeed.
type SignupRepository interface {
	// Create stores a new signup. Returns ErrAlreadySignedUp if an active
	// (non-cancelled) signup already exists for the pair.
	Create(ctx context.Context, signup *Signup) error
	// GetActiveByEventAndVolunteer returns the non-cancelled signup for the
	// pair, or ErrSignupNotFound.
	GetActiveByEventAndVolunteer(ctx context.Context, eventID, volunteerID string) (*Signup, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ListByEventID and ListByVolunteerID return non-cancelled signups only.
	ListByEventID(ctx context.Context, eventID string) ([]*Signup, error)
	ListByVolunteerID(ctx context.Context, volunteerID string) ([]*Signup, error)
}

// MatchingService ranks candidate volunteers for an event and manages the
// signup lifecycle.
type MatchingService interface {
	// AutoMatch returns ranked candidates for the event, best first. It is a
	// pure read: no signup or participation records are created.
	AutoMatch(ctx context.Context, eventID string) ([]*MatchCandidate, error)
	// SignupForEvent creates a pending signup. Fails with ErrAlreadySignedUp
	// when an active signup exists for the pair.
	SignupForEvent(ctx context.Context, volunteerID, eventID string) (*Signup, error)
	// CancelSignup cancels the active signup for the pair. Fails with
	// ErrSignupNotFound when none exists.
	CancelSignup(ctx context.Context, volunteerID, eventID string) error
	ListSignupsForEvent(ctx context.Context, eventID string) ([]*Signup, error)
	ListSignupsForVolunteer(ctx context.Context, volunteerID string) ([]*Signup, error)
}
