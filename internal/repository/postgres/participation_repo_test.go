package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"volunteerhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestParticipationRepository_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO participations`).
					WithArgs("ev-1", "vol-1", date, 0.0, "pending", joined).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pt-1"))
			},
			wantID: "pt-1",
		},
		{
			name: "duplicate pair",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO participations`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyParticipating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewParticipationRepository(db)
			p := &domain.Participation{
				EventID:           "ev-1",
				VolunteerID:       "vol-1",
				ParticipationDate: date,
				Status:            domain.ParticipationPending,
				JoinedAt:          joined,
			}
			err = repo.Create(ctx, p)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, p.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParticipationRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	t.Run("success returns updated row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE participations`).
			WithArgs("ev-1", "vol-1", "confirmed", "completed").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "volunteer_id", "participation_date", "hours_volunteered", "status", "joined_at"}).
				AddRow("pt-1", "ev-1", "vol-1", date, 4.5, "completed", joined))

		repo := NewParticipationRepository(db)
		p, err := repo.UpdateStatus(ctx, "ev-1", "vol-1", "confirmed", "completed")
		require.NoError(t, err)
		require.Equal(t, domain.ParticipationCompleted, p.Status)
		require.Equal(t, 4.5, p.HoursVolunteered)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE participations`).
			WithArgs("ev-9", "vol-9", "confirmed", "completed").
			WillReturnError(sql.ErrNoRows)

		repo := NewParticipationRepository(db)
		_, err = repo.UpdateStatus(ctx, "ev-9", "vol-9", "confirmed", "completed")
		require.ErrorIs(t, err, domain.ErrParticipationNotFound)
	})

	// The row exists but its status moved since it was read; the
	// compare-and-swap matches nothing.
	t.Run("stale expected status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE participations`).
			WithArgs("ev-1", "vol-1", "pending", "cancelled").
			WillReturnError(sql.ErrNoRows)

		repo := NewParticipationRepository(db)
		_, err = repo.UpdateStatus(ctx, "ev-1", "vol-1", "pending", "cancelled")
		require.ErrorIs(t, err, domain.ErrParticipationNotFound)
	})
}

func TestParticipationRepository_ListByVolunteerID(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, volunteer_id, participation_date, hours_volunteered, status, joined_at`).
		WithArgs("vol-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "volunteer_id", "participation_date", "hours_volunteered", "status", "joined_at"}).
			AddRow("pt-1", "ev-1", "vol-1", date, 0.0, "completed", joined).
			AddRow("pt-2", "ev-2", "vol-1", date, 0.0, "pending", joined))

	repo := NewParticipationRepository(db)
	participations, err := repo.ListByVolunteerID(ctx, "vol-1")
	require.NoError(t, err)
	require.Len(t, participations, 2)
	require.Equal(t, "ev-1", participations[0].EventID)
	require.NoError(t, mock.ExpectationsWereMet())
}
