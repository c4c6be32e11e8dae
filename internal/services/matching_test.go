package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []domain.Notification
}

func (n *recordingNotifier) Notify(ctx context.Context, userID string, kind domain.NotificationKind, title, message, eventID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, domain.Notification{
		UserID: userID, Kind: kind, Title: title, Message: message, EventID: eventID,
	})
}

func (n *recordingNotifier) len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type matchFixture struct {
	events         domain.EventRepository
	profiles       domain.ProfileRepository
	participations domain.ParticipationRepository
	signups        domain.SignupRepository
	svc            domain.MatchingService
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	f := &matchFixture{
		events:         memory.NewEventRepository(),
		profiles:       memory.NewProfileRepository(),
		participations: memory.NewParticipationRepository(),
		signups:        memory.NewSignupRepository(),
	}
	f.svc = NewMatchingService(f.events, f.profiles, f.participations, f.signups,
		nil, testLogger(), 2*time.Second)
	return f
}

func (f *matchFixture) addEvent(t *testing.T, ev *domain.Event) string {
	t.Helper()
	require.NoError(t, f.events.Create(context.Background(), ev))
	return ev.ID
}

func (f *matchFixture) addProfile(t *testing.T, p *domain.VolunteerProfile) {
	t.Helper()
	require.NoError(t, f.profiles.Create(context.Background(), p))
}

func TestMatchingService_AutoMatch_Scoring(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	f := newMatchFixture(t)
	eventID := f.addEvent(t, &domain.Event{
		Title:          "First Aid Training Day",
		Category:       "Health",
		RequiredSkills: []string{"Teaching", "First Aid"},
		Urgency:        domain.UrgencyHigh,
		EventDate:      eventDate,
		StartTime:      "09:00",
		EndTime:        "17:00",
		Location:       "Convention Center, Houston",
		Capacity:       30,
		Status:         domain.EventStatusOpen,
	})

	// Half the skills, available on the date, in the right city.
	f.addProfile(t, &domain.VolunteerProfile{
		UserID: "vol-a",
		City:   "Houston",
		Skills: []string{"Teaching"},
		Availability: []domain.AvailabilitySlot{
			{Date: eventDate, TimeOfDay: "09:00"},
		},
	})
	// Nothing matches at all.
	f.addProfile(t, &domain.VolunteerProfile{
		UserID: "vol-b",
		City:   "Dallas",
		Skills: []string{"Cooking"},
		Availability: []domain.AvailabilitySlot{
			{Date: eventDate.AddDate(0, 0, 1), TimeOfDay: "09:00"},
		},
	})

	candidates, err := f.svc.AutoMatch(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, candidates, 1, "zero-score volunteers must be dropped")

	got := candidates[0]
	assert.Equal(t, "vol-a", got.VolunteerID)
	assert.InDelta(t, 0.70, got.Score, 1e-9)
	assert.InDelta(t, 0.5, got.SkillScore, 1e-9)
	assert.Equal(t, []string{"Teaching"}, got.MatchedSkills)
	assert.Equal(t, []string{"First Aid"}, got.MissingSkills)
	assert.True(t, got.Available)
	assert.True(t, got.LocationMatch)
}

func TestMatchingService_AutoMatch_NoRequiredSkills(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	f := newMatchFixture(t)
	eventID := f.addEvent(t, &domain.Event{
		Title:     "Park Cleanup",
		Category:  "Environment",
		Urgency:   domain.UrgencyLow,
		EventDate: eventDate,
		StartTime: "08:00",
		EndTime:   "12:00",
		Location:  "Memorial Park",
		Capacity:  100,
		Status:    domain.EventStatusOpen,
	})
	f.addProfile(t, &domain.VolunteerProfile{
		UserID: "vol-a",
		City:   "Austin",
		Skills: []string{"Cooking"},
		Availability: []domain.AvailabilitySlot{
			{Date: eventDate.AddDate(0, 0, 5), TimeOfDay: "08:00"},
		},
	})

	candidates, err := f.svc.AutoMatch(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.InDelta(t, 1.0, candidates[0].SkillScore, 1e-9)
	assert.InDelta(t, 0.6, candidates[0].Score, 1e-9)
}

func TestMatchingService_AutoMatch_ExcludesParticipants(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	f := newMatchFixture(t)
	eventID := f.addEvent(t, &domain.Event{
		Title:     "Food Drive",
		Category:  "Community",
		Urgency:   domain.UrgencyMedium,
		EventDate: eventDate,
		StartTime: "10:00",
		EndTime:   "14:00",
		Location:  "Community Center",
		Capacity:  20,
		Status:    domain.EventStatusOpen,
	})
	for _, id := range []string{"vol-a", "vol-b"} {
		f.addProfile(t, &domain.VolunteerProfile{
			UserID: id,
			City:   "Houston",
			Skills: []string{"Organizing"},
			Availability: []domain.AvailabilitySlot{
				{Date: eventDate, TimeOfDay: "10:00"},
			},
		})
	}
	require.NoError(t, f.participations.Create(ctx, &domain.Participation{
		EventID:     eventID,
		VolunteerID: "vol-a",
		Status:      domain.ParticipationCancelled,
	}))

	candidates, err := f.svc.AutoMatch(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, candidates, 1, "participants of any status are excluded")
	assert.Equal(t, "vol-b", candidates[0].VolunteerID)
}

func TestMatchingService_AutoMatch_TieBreakByVolunteerID(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	f := newMatchFixture(t)
	eventID := f.addEvent(t, &domain.Event{
		Title:     "Tutoring Session",
		Category:  "Education",
		Urgency:   domain.UrgencyMedium,
		EventDate: eventDate,
		StartTime: "15:00",
		EndTime:   "18:00",
		Location:  "Library",
		Capacity:  10,
		Status:    domain.EventStatusOpen,
	})
	// Identical profiles give identical scores; order must still be stable.
	for _, id := range []string{"vol-c", "vol-a", "vol-b"} {
		f.addProfile(t, &domain.VolunteerProfile{
			UserID: id,
			City:   "Houston",
			Skills: []string{"Tutoring"},
			Availability: []domain.AvailabilitySlot{
				{Date: eventDate, TimeOfDay: "15:00"},
			},
		})
	}

	candidates, err := f.svc.AutoMatch(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "vol-a", candidates[0].VolunteerID)
	assert.Equal(t, "vol-b", candidates[1].VolunteerID)
	assert.Equal(t, "vol-c", candidates[2].VolunteerID)
}

func TestMatchingService_AutoMatch_EventNotFound(t *testing.T) {
	f := newMatchFixture(t)
	_, err := f.svc.AutoMatch(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatchingService_SignupLifecycle(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	f := newMatchFixture(t)
	eventID := f.addEvent(t, &domain.Event{
		Title:     "Beach Cleanup",
		Category:  "Environment",
		Urgency:   domain.UrgencyLow,
		EventDate: eventDate,
		StartTime: "08:00",
		EndTime:   "11:00",
		Location:  "Galveston Beach",
		Capacity:  40,
		Status:    domain.EventStatusOpen,
	})

	signup, err := f.svc.SignupForEvent(ctx, "vol-1", eventID)
	require.NoError(t, err)
	assert.Equal(t, domain.SignupStatusPending, signup.Status)
	assert.NotEmpty(t, signup.ID)

	// Second signup while one is active conflicts.
	_, err = f.svc.SignupForEvent(ctx, "vol-1", eventID)
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)

	// Cancel, then a fresh signup is allowed again.
	require.NoError(t, f.svc.CancelSignup(ctx, "vol-1", eventID))
	_, err = f.svc.SignupForEvent(ctx, "vol-1", eventID)
	require.NoError(t, err)

	// Cancelled signups are hidden from listings.
	signups, err := f.svc.ListSignupsForEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, signups, 1)
	assert.Equal(t, domain.SignupStatusPending, signups[0].Status)
}

func TestMatchingService_CancelSignup_NotFound(t *testing.T) {
	f := newMatchFixture(t)
	eventID := f.addEvent(t, &domain.Event{
		Title:     "Art Workshop",
		Category:  "Culture",
		Urgency:   domain.UrgencyLow,
		EventDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "13:00",
		EndTime:   "16:00",
		Location:  "Art Center",
		Capacity:  15,
		Status:    domain.EventStatusOpen,
	})
	err := f.svc.CancelSignup(context.Background(), "vol-1", eventID)
	require.ErrorIs(t, err, domain.ErrSignupNotFound)
}

func TestMatchingService_SignupForEvent_EventNotFound(t *testing.T) {
	f := newMatchFixture(t)
	_, err := f.svc.SignupForEvent(context.Background(), "vol-1", "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
