package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"volunteerhub/internal/domain"
)

// Report output formats.
const (
	ReportFormatCSV  = "csv"
	ReportFormatXLSX = "xlsx"
)

// ReportService exports volunteer-history and event-assignment reports.
type ReportService interface {
	// VolunteerHistory exports one row per participation across all
	// volunteers, with the volunteer's name and the event title resolved.
	VolunteerHistory(ctx context.Context, format string) (data []byte, contentType, filename string, err error)
	// EventAssignments exports one row per (event, volunteer) assignment for
	// non-cancelled participations.
	EventAssignments(ctx context.Context, format string) (data []byte, contentType, filename string, err error)
}

type reportService struct {
	participationRepo domain.ParticipationRepository
	eventRepo         domain.EventRepository
	userRepo          domain.UserRepository
	contextTimeout    time.Duration
}

func NewReportService(
	participationRepo domain.ParticipationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) ReportService {
	return &reportService{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		userRepo:          userRepo,
		contextTimeout:    timeout,
	}
}

var volunteerHistoryHeader = []string{
	"Volunteer", "Email", "Event", "Event Date", "Status", "Hours",
}

var eventAssignmentsHeader = []string{
	"Event", "Event Date", "Location", "Volunteer", "Email", "Status",
}

func (s *reportService) VolunteerHistory(ctx context.Context, format string) ([]byte, string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rows, err := s.collectRows(ctx, false)
	if err != nil {
		return nil, "", "", err
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.volunteerName, r.volunteerEmail, r.eventTitle,
			r.eventDate, r.status, strconv.FormatFloat(r.hours, 'f', 2, 64),
		})
	}
	return render(format, "volunteer_history", volunteerHistoryHeader, records)
}

func (s *reportService) EventAssignments(ctx context.Context, format string) ([]byte, string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rows, err := s.collectRows(ctx, true)
	if err != nil {
		return nil, "", "", err
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.eventTitle, r.eventDate, r.eventLocation,
			r.volunteerName, r.volunteerEmail, r.status,
		})
	}
	return render(format, "event_assignments", eventAssignmentsHeader, records)
}

type reportRow struct {
	volunteerName  string
	volunteerEmail string
	eventTitle     string
	eventDate      string
	eventLocation  string
	status         string
	hours          float64
}

func (s *reportService) collectRows(ctx context.Context, skipCancelled bool) ([]reportRow, error) {
	participations, err := s.participationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}

	events := make(map[string]*domain.Event)
	users := make(map[string]*domain.User)
	rows := make([]reportRow, 0, len(participations))
	for _, p := range participations {
		if skipCancelled && p.Status == domain.ParticipationCancelled {
			continue
		}
		ev, ok := events[p.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, p.EventID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("get event %s: %w", p.EventID, err)
			}
			events[p.EventID] = ev
		}
		u, ok := users[p.VolunteerID]
		if !ok {
			u, err = s.userRepo.GetByID(ctx, p.VolunteerID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, fmt.Errorf("get user %s: %w", p.VolunteerID, err)
			}
			users[p.VolunteerID] = u
		}
		// The event or user may have been deleted since the participation
		// was recorded; drop the row rather than failing the whole report.
		if ev == nil || u == nil {
			continue
		}
		rows = append(rows, reportRow{
			volunteerName:  u.Name,
			volunteerEmail: u.Email,
			eventTitle:     ev.Title,
			eventDate:      ev.EventDate.Format("2006-01-02"),
			eventLocation:  ev.Location,
			status:         p.Status,
			hours:          p.HoursVolunteered,
		})
	}
	return rows, nil
}

func render(format, name string, header []string, records [][]string) ([]byte, string, string, error) {
	switch format {
	case ReportFormatCSV, "":
		data, err := renderCSV(header, records)
		if err != nil {
			return nil, "", "", err
		}
		return data, "text/csv", name + ".csv", nil
	case ReportFormatXLSX:
		data, err := renderXLSX(header, records)
		if err != nil {
			return nil, "", "", err
		}
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", name + ".xlsx", nil
	default:
		return nil, "", "", fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, format)
	}
}

func renderCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(header []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for rowIdx, record := range records {
		for colIdx, value := range record {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
	for i := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
