package domain

import (
	"context"
	"errors"
	"time"
)

// ErrProfileNotFound is returned when a volunteer has no profile yet.
var ErrProfileNotFound = errors.New("profile not found")

// SkillVocabulary is the closed set of skill labels a profile or event may
// reference. Matching uses case-sensitive exact label comparison.
var SkillVocabulary = map[string]struct{}{
	"First Aid":         {},
	"Teaching":          {},
	"Cooking":           {},
	"Driving":           {},
	"Organizing":        {},
	"Technical Support": {},
	"Childcare":         {},
	"Elderly Care":      {},
	"Translation":       {},
	"Event Planning":    {},
	"Fundraising":       {},
	"Marketing":         {},
	"Photography":       {},
	"Videography":       {},
	"Music":             {},
	"Art":               {},
	"Sports":            {},
	"Tutoring":          {},
}

// IsValidSkill reports whether the label belongs to the skill vocabulary.
func IsValidSkill(label string) bool {
	_, ok := SkillVocabulary[label]
	return ok
}

// AvailabilitySlot is a single date + time-of-day a volunteer can work.
// TimeOfDay is "HH:MM" (24h). Matching compares dates only.
type AvailabilitySlot struct {
	Date      time.Time `json:"date"`
	TimeOfDay string    `json:"time" validate:"required,len=5"`
}

// VolunteerProfile holds a volunteer's skills, availability, and location.
// swagger:model VolunteerProfile
type VolunteerProfile struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Address      string             `json:"address" validate:"required,min=5,max=100"`
	City         string             `json:"city" validate:"required,min=2,max=50"`
	StateCode    string             `json:"state_code" validate:"required,len=2"`
	ZipCode      string             `json:"zip_code" validate:"required"`
	Skills       []string           `json:"skills" validate:"required,min=1,max=10"`
	Preferences  string             `json:"preferences" validate:"max=500"`
	Availability []AvailabilitySlot `json:"availability" validate:"required,min=1,dive"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ProfileRepository defines storage operations for volunteer profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *VolunteerProfile) error
	GetByUserID(ctx context.Context, userID string) (*VolunteerProfile, error)
	Update(ctx context.Context, p *VolunteerProfile) error
	ListAll(ctx context.Context) ([]*VolunteerProfile, error)
}

// ProfileService defines business logic for volunteer profiles.
type ProfileService interface {
	Create(ctx context.Context, p *VolunteerProfile) error
	GetByUserID(ctx context.Context, userID string) (*VolunteerProfile, error)
	Update(ctx context.Context, p *VolunteerProfile) error
	ListAll(ctx context.Context) ([]*VolunteerProfile, error)
}
