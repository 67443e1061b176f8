package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	parametersRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/parameters"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var friday = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

func newAppointment(id, requester string, hour types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		RequesterID: requester,
		Date:        friday,
		Hour:        hour,
		AgencyID:    "agency-2",
		Status:      domain.StatusBooked,
	}
}

func TestAppointments_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Appointments()

	_, err := repo.Create(ctx, newAppointment("a1", "req-1", "09:30"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newAppointment("a2", "req-2", "09:30"))
	assert.ErrorIs(t, err, appointmentRepo.ErrSlotOccupied)

	_, err = repo.Create(ctx, newAppointment("a3", "req-1", "10:30"))
	assert.ErrorIs(t, err, appointmentRepo.ErrRequesterHasBooked)

	// Отмена освобождает слот
	canceled, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	canceled.ApplyStatus(domain.StatusCanceled, ptr.Ptr("cambio de planes"), friday)
	require.NoError(t, repo.UpdateStatus(ctx, canceled))

	_, err = repo.Create(ctx, newAppointment("a4", "req-2", "09:30"))
	require.NoError(t, err)

	active, err := repo.GetByFilter(ctx, domain.AppointmentsFilter{
		AgencyID:   ptr.Ptr("agency-2"),
		DateFrom:   &friday,
		DateTo:     &friday,
		ActiveOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a4", active[0].ID)
}

func TestAppointments_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Appointments()

	_, err := repo.Create(ctx, newAppointment("a1", "req-1", "09:30"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	got.Status = domain.StatusCompleted

	again, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBooked, again.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, &domain.Appointment{ID: "missing"}), appointmentRepo.ErrAppointmentNotFound)
}

func TestParameters_CatalogOrderAndErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	agencies := store.Agencies()
	params := store.Parameters()

	require.NoError(t, agencies.Upsert(ctx, &domain.Agency{ID: "agency-2", Position: 2}))
	require.NoError(t, agencies.Upsert(ctx, &domain.Agency{ID: "agency-1", Position: 1}))

	_, err := params.Create(ctx, &domain.AgencyParameters{AgencyID: "agency-2", MaxAppointmentsPerDay: 3, AvailableHours: []types.TimeString{"09:30"}})
	require.NoError(t, err)
	_, err = params.Create(ctx, &domain.AgencyParameters{AgencyID: "agency-1", MaxAppointmentsPerDay: 5, AvailableHours: []types.TimeString{"09:00"}})
	require.NoError(t, err)

	_, err = params.Create(ctx, &domain.AgencyParameters{AgencyID: "agency-1", MaxAppointmentsPerDay: 5})
	assert.ErrorIs(t, err, parametersRepo.ErrParametersExists)

	_, err = params.Create(ctx, &domain.AgencyParameters{AgencyID: "agency-9", MaxAppointmentsPerDay: 5})
	assert.ErrorIs(t, err, parametersRepo.ErrUnknownAgency)

	all, err := params.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "agency-1", all[0].AgencyID)
	assert.Equal(t, "agency-2", all[1].AgencyID)

	require.NoError(t, params.Delete(ctx, "agency-2"))
	_, err = params.GetByAgencyID(ctx, "agency-2")
	assert.ErrorIs(t, err, parametersRepo.ErrParametersNotFound)
	assert.ErrorIs(t, params.Delete(ctx, "agency-2"), parametersRepo.ErrParametersNotFound)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Appointments()
	errAbort := errors.New("abort")

	err := store.TxManager().DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := repo.Create(txCtx, newAppointment("a1", "req-1", "09:30")); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	_, err = repo.GetByID(ctx, "a1")
	assert.ErrorIs(t, err, appointmentRepo.ErrAppointmentNotFound)
}

func TestTxManager_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	params := store.Parameters()
	appointments := store.Appointments()

	require.NoError(t, store.Agencies().Upsert(ctx, &domain.Agency{ID: "agency-2", Position: 2}))
	_, err := params.Create(ctx, &domain.AgencyParameters{
		AgencyID:              "agency-2",
		MaxAppointmentsPerDay: 3,
		AvailableHours:        []types.TimeString{"09:30"},
	})
	require.NoError(t, err)

	errSlotTaken := errors.New("slot taken")
	inTx := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- store.TxManager().DoSerializable(ctx, func(txCtx context.Context) error {
			if _, err := appointments.Create(txCtx, newAppointment("a1", "req-1", "09:30")); err != nil {
				return err
			}
			close(inTx)
			<-release
			return errSlotTaken
		})
	}()

	<-inTx
	// Параметризация меняется вне транзакции, пока запись не завершена
	_, err = params.Update(ctx, &domain.AgencyParameters{
		AgencyID:              "agency-2",
		MaxAppointmentsPerDay: 10,
		AvailableHours:        []types.TimeString{"09:30", "10:30"},
	})
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-done, errSlotTaken)

	updated, err := params.GetByAgencyID(ctx, "agency-2")
	require.NoError(t, err)
	assert.Equal(t, 10, updated.MaxAppointmentsPerDay)
	assert.Equal(t, []types.TimeString{"09:30", "10:30"}, updated.AvailableHours)

	_, err = appointments.GetByID(ctx, "a1")
	assert.ErrorIs(t, err, appointmentRepo.ErrAppointmentNotFound)
}

func TestTxManager_RollbackRestoresStatus(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Appointments()

	_, err := repo.Create(ctx, newAppointment("a1", "req-1", "09:30"))
	require.NoError(t, err)

	errAbort := errors.New("abort")
	err = store.TxManager().DoSerializable(ctx, func(txCtx context.Context) error {
		a, err := repo.GetByID(txCtx, "a1")
		if err != nil {
			return err
		}
		a.ApplyStatus(domain.StatusProcessed, nil, friday)
		if err := repo.UpdateStatus(txCtx, a); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	a, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBooked, a.Status)
	assert.Nil(t, a.ProcessedAt)
}
