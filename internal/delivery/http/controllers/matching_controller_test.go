package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

func newMatchingController(f *fixture) *MatchingController {
	return NewMatchingController(testLogger, f.matching, f.participations, f.ids)
}

func TestMatchingController_Signup(t *testing.T) {
	f := newFixture(t)
	c := newMatchingController(f)
	_, publicID := f.createEvent(t)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/matching/signups",
			jsonBody(t, SignupRequest{EventID: publicID}))
		req = asUser(req, "vol-1", domain.RoleVolunteer)
		rr := httptest.NewRecorder()
		c.Signup(rr, req)
		return rr
	}

	rr := do()
	require.Equal(t, http.StatusCreated, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.Nil(t, envelope.Error)

	var signup domain.Signup
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &signup))
	assert.Equal(t, domain.SignupStatusPending, signup.Status)
	assert.Positive(t, signup.PublicID)
	assert.Equal(t, strconv.FormatInt(publicID, 10), signup.EventID,
		"event crosses the boundary as its numeric id")

	// Duplicate signup conflicts.
	rr = do()
	require.Equal(t, http.StatusConflict, rr.Code)
	envelope = decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeConflict, envelope.Error.Code)
}

func TestMatchingController_Signup_UnknownEvent(t *testing.T) {
	f := newFixture(t)
	c := newMatchingController(f)

	req := httptest.NewRequest(http.MethodPost, "/matching/signups",
		jsonBody(t, SignupRequest{EventID: 424242}))
	req = asUser(req, "vol-1", domain.RoleVolunteer)
	rr := httptest.NewRecorder()
	c.Signup(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}

func TestMatchingController_CancelSignup(t *testing.T) {
	f := newFixture(t)
	c := newMatchingController(f)
	internalID, publicID := f.createEvent(t)

	// Cancel without an active signup.
	req := httptest.NewRequest(http.MethodDelete, "/matching/signups",
		jsonBody(t, SignupRequest{EventID: publicID}))
	req = asUser(req, "vol-1", domain.RoleVolunteer)
	rr := httptest.NewRecorder()
	c.CancelSignup(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)

	_, err := f.matching.SignupForEvent(context.Background(), "vol-1", internalID)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodDelete, "/matching/signups",
		jsonBody(t, SignupRequest{EventID: publicID}))
	req = asUser(req, "vol-1", domain.RoleVolunteer)
	rr = httptest.NewRecorder()
	c.CancelSignup(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestMatchingController_AutoMatch(t *testing.T) {
	f := newFixture(t)
	c := newMatchingController(f)
	_, publicID := f.createEvent(t)

	require.NoError(t, f.profiles.Create(context.Background(), &domain.VolunteerProfile{
		UserID: "vol-1",
		City:   "Houston",
		Skills: []string{"Organizing"},
		Availability: []domain.AvailabilitySlot{
			{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TimeOfDay: "09:00"},
		},
	}))

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/matching/events/%d/auto-match", publicID), nil)
	req.SetPathValue("eventID", strconv.FormatInt(publicID, 10))
	req = asUser(req, "admin-1", domain.RoleAdmin)
	rr := httptest.NewRecorder()
	c.AutoMatch(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.Nil(t, envelope.Error)

	var candidates []*domain.MatchCandidate
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, "vol-1", candidates[0].VolunteerID)
	assert.InDelta(t, 1.0, candidates[0].Score, 1e-9)
}

func TestMatchingController_AutoMatch_BadEventID(t *testing.T) {
	f := newFixture(t)
	c := newMatchingController(f)

	req := httptest.NewRequest(http.MethodPost, "/matching/events/abc/auto-match", nil)
	req.SetPathValue("eventID", "abc")
	req = asUser(req, "admin-1", domain.RoleAdmin)
	rr := httptest.NewRecorder()
	c.AutoMatch(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchingController_Assign(t *testing.T) {
	f := newFixture(t)
	c := newMatchingController(f)
	_, publicID := f.createEvent(t)
	volID := f.createVolunteer(t, "vol@example.org")

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/matching/events/%d/assign", publicID),
		jsonBody(t, AssignRequest{VolunteerID: volID}))
	req.SetPathValue("eventID", strconv.FormatInt(publicID, 10))
	req = asUser(req, "admin-1", domain.RoleAdmin)
	rr := httptest.NewRecorder()
	c.Assign(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.Nil(t, envelope.Error)

	var participation domain.Participation
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &participation))
	assert.Equal(t, domain.ParticipationConfirmed, participation.Status)
	assert.Positive(t, participation.PublicID)
}

func TestMatchingController_Assign_UnknownVolunteer(t *testing.T) {
	f := newFixture(t)
	c := newMatchingController(f)
	_, publicID := f.createEvent(t)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/matching/events/%d/assign", publicID),
		jsonBody(t, AssignRequest{VolunteerID: "no-such-user"}))
	req.SetPathValue("eventID", strconv.FormatInt(publicID, 10))
	req = asUser(req, "admin-1", domain.RoleAdmin)
	rr := httptest.NewRecorder()
	c.Assign(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}
