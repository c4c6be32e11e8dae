package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
	"volunteerhub/internal/services"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testTimeout = 2 * time.Second

type silentNotifier struct{}

func (silentNotifier) Notify(ctx context.Context, userID string, kind domain.NotificationKind, title, message, eventID string) {
}

// fixture wires real services over the in-memory repositories so controller
// tests exercise the numeric-id translation end to end.
type fixture struct {
	ids            *PublicIDs
	events         domain.EventService
	matching       domain.MatchingService
	participations domain.ParticipationService
	profiles       domain.ProfileRepository
	users          domain.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	eventRepo := memory.NewEventRepository()
	profileRepo := memory.NewProfileRepository()
	participationRepo := memory.NewParticipationRepository()
	signupRepo := memory.NewSignupRepository()
	userRepo := memory.NewUserRepository()
	resolver := services.NewPublicIDResolver(memory.NewPublicIDRepository(), testTimeout)

	return &fixture{
		ids:      NewPublicIDs(resolver),
		events:   services.NewEventService(eventRepo, profileRepo, silentNotifier{}, testLogger, testTimeout),
		matching: services.NewMatchingService(eventRepo, profileRepo, participationRepo, signupRepo, nil, testLogger, testTimeout),
		participations: services.NewParticipationService(participationRepo, eventRepo, userRepo,
			silentNotifier{}, nil, testLogger, testTimeout),
		profiles: profileRepo,
		users:    userRepo,
	}
}

// createVolunteer stores a volunteer account and returns its id.
func (f *fixture) createVolunteer(t *testing.T, email string) string {
	t.Helper()
	u := &domain.User{Email: email, Name: "Val", Role: domain.RoleVolunteer}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u.ID
}

// createEvent stores an event directly through the service and returns its
// public numeric id.
func (f *fixture) createEvent(t *testing.T) (internalID string, publicID int64) {
	t.Helper()
	ev := &domain.Event{
		Title:          "Community Cleanup",
		Category:       "Environment",
		RequiredSkills: []string{"Organizing"},
		Urgency:        domain.UrgencyMedium,
		EventDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:      "09:00",
		EndTime:        "13:00",
		Location:       "Central Park, Houston",
		Capacity:       50,
	}
	require.NoError(t, f.events.Create(context.Background(), ev))
	require.NoError(t, f.ids.FillEvent(context.Background(), ev))
	return ev.ID, ev.PublicID
}

func asUser(req *http.Request, userID string, roles ...string) *http.Request {
	ctx := middleware.SetUserID(req.Context(), userID)
	if len(roles) > 0 {
		ctx = middleware.SetRoles(ctx, roles)
	}
	return req.WithContext(ctx)
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}
