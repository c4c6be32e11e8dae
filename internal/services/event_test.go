package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
)

func newEventService(t *testing.T) (domain.EventService, domain.ProfileRepository, *recordingNotifier) {
	t.Helper()
	profiles := memory.NewProfileRepository()
	notifier := &recordingNotifier{}
	svc := NewEventService(memory.NewEventRepository(), profiles, notifier,
		testLogger(), 2*time.Second)
	return svc, profiles, notifier
}

func validEvent() *domain.Event {
	return &domain.Event{
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
}

func TestEventService_Create(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(ev *domain.Event)
		wantErr bool
	}{
		{name: "valid event", mutate: func(ev *domain.Event) {}},
		{name: "title too short", mutate: func(ev *domain.Event) { ev.Title = "ab" }, wantErr: true},
		{name: "unknown skill", mutate: func(ev *domain.Event) { ev.RequiredSkills = []string{"Juggling"} }, wantErr: true},
		{name: "bad urgency", mutate: func(ev *domain.Event) { ev.Urgency = "urgent" }, wantErr: true},
		{name: "capacity zero", mutate: func(ev *domain.Event) { ev.Capacity = 0 }, wantErr: true},
		{name: "capacity too large", mutate: func(ev *domain.Event) { ev.Capacity = 10001 }, wantErr: true},
		{name: "end before start", mutate: func(ev *domain.Event) { ev.StartTime = "13:00"; ev.EndTime = "09:00" }, wantErr: true},
		{name: "end equals start", mutate: func(ev *domain.Event) { ev.EndTime = ev.StartTime }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newEventService(t)
			ev := validEvent()
			tt.mutate(ev)

			err := svc.Create(context.Background(), ev)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, ev.ID)
			assert.Equal(t, domain.EventStatusOpen, ev.Status, "status defaults to open")
		})
	}
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventService(t)

	ev := validEvent()
	require.NoError(t, svc.Create(ctx, ev))

	newTitle := "Community Cleanup (Rescheduled)"
	newStatus := domain.EventStatusClosed
	updated, err := svc.Update(ctx, ev.ID, &domain.EventUpdate{
		Title:  &newTitle,
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, domain.EventStatusClosed, updated.Status)
	assert.Equal(t, ev.Category, updated.Category, "unset fields keep their values")

	badCapacity := 0
	_, err = svc.Update(ctx, ev.ID, &domain.EventUpdate{Capacity: &badCapacity})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", &domain.EventUpdate{Title: &newTitle})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventService(t)

	first := validEvent()
	require.NoError(t, svc.Create(ctx, first))
	second := validEvent()
	second.Title = "Food Bank Sorting"
	second.Category = "Community"
	require.NoError(t, svc.Create(ctx, second))

	events, total, err := svc.List(ctx, domain.EventFilter{Category: "Community"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "Food Bank Sorting", events[0].Title)

	events, total, err = svc.List(ctx, domain.EventFilter{Search: "cleanup"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
}

func TestEventService_Create_AnnouncesToMatchingVolunteers(t *testing.T) {
	ctx := context.Background()
	svc, profiles, notifier := newEventService(t)

	require.NoError(t, profiles.Create(ctx, &domain.VolunteerProfile{
		UserID: "vol-organizer",
		City:   "Houston",
		Skills: []string{"Organizing"},
		Availability: []domain.AvailabilitySlot{
			{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TimeOfDay: "09:00"},
		},
	}))
	require.NoError(t, profiles.Create(ctx, &domain.VolunteerProfile{
		UserID: "vol-cook",
		City:   "Houston",
		Skills: []string{"Cooking"},
		Availability: []domain.AvailabilitySlot{
			{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TimeOfDay: "09:00"},
		},
	}))

	require.NoError(t, svc.Create(ctx, validEvent()))

	require.Equal(t, 1, notifier.len())
	assert.Equal(t, "vol-organizer", notifier.calls[0].UserID)
	assert.Equal(t, domain.NotificationNewEvent, notifier.calls[0].Kind)
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventService(t)

	ev := validEvent()
	require.NoError(t, svc.Create(ctx, ev))
	require.NoError(t, svc.Delete(ctx, ev.ID))
	require.ErrorIs(t, svc.Delete(ctx, ev.ID), domain.ErrNotFound)
}
