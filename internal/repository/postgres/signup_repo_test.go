package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"volunteerhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestSignupRepository_Create(t *testing.T) {
	ctx := context.Background()
	signupTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		signup  *domain.Signup
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			signup: &domain.Signup{
				EventID:     "ev-1",
				VolunteerID: "vol-1",
				Status:      domain.SignupStatusPending,
				SignupTime:  signupTime,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO signups \(event_id, volunteer_id, status, signup_time\)`).
					WithArgs("ev-1", "vol-1", "pending", signupTime).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("su-1"))
			},
			wantID: "su-1",
		},
		{
			name: "duplicate active signup",
			signup: &domain.Signup{
				EventID:     "ev-1",
				VolunteerID: "vol-1",
				Status:      domain.SignupStatusPending,
				SignupTime:  signupTime,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO signups`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_signups_active"})
			},
			wantErr: domain.ErrAlreadySignedUp,
		},
		{
			name: "db error",
			signup: &domain.Signup{
				EventID:     "ev-1",
				VolunteerID: "vol-1",
				Status:      domain.SignupStatusPending,
				SignupTime:  signupTime,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO signups`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSignupRepository(db)
			err = repo.Create(ctx, tt.signup)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.signup.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignupRepository_GetActiveByEventAndVolunteer(t *testing.T) {
	ctx := context.Background()
	signupTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, volunteer_id, status, signup_time`).
			WithArgs("ev-1", "vol-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "volunteer_id", "status", "signup_time"}).
				AddRow("su-1", "ev-1", "vol-1", "pending", signupTime))

		repo := NewSignupRepository(db)
		s, err := repo.GetActiveByEventAndVolunteer(ctx, "ev-1", "vol-1")
		require.NoError(t, err)
		require.Equal(t, "su-1", s.ID)
		require.Equal(t, domain.SignupStatusPending, s.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, volunteer_id, status, signup_time`).
			WithArgs("ev-1", "vol-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewSignupRepository(db)
		_, err = repo.GetActiveByEventAndVolunteer(ctx, "ev-1", "vol-2")
		require.True(t, errors.Is(err, domain.ErrSignupNotFound))
	})
}

func TestSignupRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE signups SET status = \$2 WHERE id = \$1`).
			WithArgs("su-1", "cancelled").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSignupRepository(db)
		require.NoError(t, repo.UpdateStatus(ctx, "su-1", "cancelled"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE signups SET status = \$2 WHERE id = \$1`).
			WithArgs("su-9", "cancelled").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSignupRepository(db)
		require.ErrorIs(t, repo.UpdateStatus(ctx, "su-9", "cancelled"), domain.ErrSignupNotFound)
	})
}

func TestSignupRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	signupTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, volunteer_id, status, signup_time`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "volunteer_id", "status", "signup_time"}).
			AddRow("su-1", "ev-1", "vol-1", "pending", signupTime).
			AddRow("su-2", "ev-1", "vol-2", "confirmed", signupTime))

	repo := NewSignupRepository(db)
	signups, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, signups, 2)
	require.Equal(t, "vol-1", signups[0].VolunteerID)
	require.NoError(t, mock.ExpectationsWereMet())
}
