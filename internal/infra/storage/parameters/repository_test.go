package parameters

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func setupRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM agency_parameters p JOIN agencies a ON a.id = p.agency_id ORDER BY a.position ASC, a.id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"agency_id", "max_appointments_per_day", "available_hours", "created_at", "updated_at"}).
			AddRow("agency-1", 5, "{09:00,10:00,11:00,14:00,15:00}", now, now).
			AddRow("agency-2", 3, "{09:30,10:30,11:30}", now, now))

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "agency-1", all[0].AgencyID)
	assert.Equal(t, []types.TimeString{"09:30", "10:30", "11:30"}, all[1].AvailableHours)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByAgencyID_NotFound(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectQuery("SELECT .+ FROM agency_parameters WHERE agency_id = \\$1").
		WithArgs("agency-9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByAgencyID(context.Background(), "agency-9")
	assert.ErrorIs(t, err, ErrParametersNotFound)
}

func TestRepository_Create_Errors(t *testing.T) {
	tests := []struct {
		code pq.ErrorCode
		want error
	}{
		{pqUniqueViolation, ErrParametersExists},
		{pqForeignKeyViolation, ErrUnknownAgency},
		{"08006", ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			repo, mock := setupRepository(t)
			mock.ExpectQuery("INSERT INTO agency_parameters").
				WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), agency2())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectExec("DELETE FROM agency_parameters WHERE agency_id = \\$1").
		WithArgs("agency-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "agency-2"))

	mock.ExpectExec("DELETE FROM agency_parameters").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "agency-2"), ErrParametersNotFound)
}
