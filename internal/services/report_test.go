package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
)

func newReportFixture(t *testing.T) (ReportService, string, string) {
	t.Helper()
	ctx := context.Background()

	events := memory.NewEventRepository()
	users := memory.NewUserRepository()
	participations := memory.NewParticipationRepository()

	ev := &domain.Event{
		Title:     "Community Cleanup",
		Category:  "Environment",
		Urgency:   domain.UrgencyMedium,
		EventDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "13:00",
		Location:  "Central Park, Houston",
		Capacity:  50,
		Status:    domain.EventStatusOpen,
	}
	require.NoError(t, events.Create(ctx, ev))

	user := &domain.User{Email: "vol@example.org", Name: "Val Olunteer", Role: domain.RoleVolunteer}
	require.NoError(t, users.Create(ctx, user))

	require.NoError(t, participations.Create(ctx, &domain.Participation{
		EventID:          ev.ID,
		VolunteerID:      user.ID,
		Status:           domain.ParticipationCompleted,
		HoursVolunteered: 4.5,
	}))

	return NewReportService(participations, events, users, 2*time.Second), ev.ID, user.ID
}

func TestReportService_VolunteerHistory_CSV(t *testing.T) {
	svc, _, _ := newReportFixture(t)

	data, contentType, filename, err := svc.VolunteerHistory(context.Background(), ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "volunteer_history.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, volunteerHistoryHeader, records[0])
	assert.Equal(t, []string{
		"Val Olunteer", "vol@example.org", "Community Cleanup",
		"2026-03-01", "completed", "4.50",
	}, records[1])
}

func TestReportService_EventAssignments_XLSX(t *testing.T) {
	svc, _, _ := newReportFixture(t)

	data, contentType, filename, err := svc.EventAssignments(context.Background(), ReportFormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	assert.Equal(t, "event_assignments.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, eventAssignmentsHeader, rows[0])
	assert.Equal(t, "Community Cleanup", rows[1][0])
	assert.Equal(t, "Val Olunteer", rows[1][3])
}

func TestReportService_EventAssignments_SkipsCancelled(t *testing.T) {
	ctx := context.Background()

	events := memory.NewEventRepository()
	users := memory.NewUserRepository()
	participations := memory.NewParticipationRepository()

	ev := &domain.Event{
		Title:     "Food Drive",
		Category:  "Community",
		Urgency:   domain.UrgencyHigh,
		EventDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "14:00",
		Location:  "Community Center",
		Capacity:  20,
		Status:    domain.EventStatusOpen,
	}
	require.NoError(t, events.Create(ctx, ev))
	user := &domain.User{Email: "vol@example.org", Name: "Val", Role: domain.RoleVolunteer}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, participations.Create(ctx, &domain.Participation{
		EventID:     ev.ID,
		VolunteerID: user.ID,
		Status:      domain.ParticipationCancelled,
	}))

	svc := NewReportService(participations, events, users, 2*time.Second)
	data, _, _, err := svc.EventAssignments(ctx, ReportFormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "only the header remains")

	// The history report still includes the cancelled record.
	data, _, _, err = svc.VolunteerHistory(ctx, ReportFormatCSV)
	require.NoError(t, err)
	records, err = csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestReportService_SkipsDeletedEvent(t *testing.T) {
	ctx := context.Background()

	events := memory.NewEventRepository()
	users := memory.NewUserRepository()
	participations := memory.NewParticipationRepository()

	ev := &domain.Event{
		Title:     "Park Restoration",
		Category:  "Environment",
		Urgency:   domain.UrgencyLow,
		EventDate: time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC),
		StartTime: "08:00",
		EndTime:   "12:00",
		Location:  "Riverside Park",
		Capacity:  30,
		Status:    domain.EventStatusOpen,
	}
	require.NoError(t, events.Create(ctx, ev))
	user := &domain.User{Email: "vol@example.org", Name: "Val", Role: domain.RoleVolunteer}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, participations.Create(ctx, &domain.Participation{
		EventID:          ev.ID,
		VolunteerID:      user.ID,
		Status:           domain.ParticipationCompleted,
		HoursVolunteered: 4,
	}))

	require.NoError(t, events.Delete(ctx, ev.ID))

	// The orphaned participation is dropped instead of failing the report.
	svc := NewReportService(participations, events, users, 2*time.Second)
	for _, generate := range []func(context.Context, string) ([]byte, string, string, error){
		svc.VolunteerHistory, svc.EventAssignments,
	} {
		data, _, _, err := generate(ctx, ReportFormatCSV)
		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1, "only the header remains")
	}
}

func TestReportService_UnknownFormat(t *testing.T) {
	svc, _, _ := newReportFixture(t)
	_, _, _, err := svc.VolunteerHistory(context.Background(), "pdf")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
