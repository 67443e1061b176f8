package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store.Agencies(), nopLogger{})

	require.NoError(t, svc.Seed(ctx, store.Parameters(), DefaultSeed))
	require.NoError(t, svc.Seed(ctx, store.Parameters(), DefaultSeed))

	agencies, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, agencies, 4)
	assert.Equal(t, "agency-1", agencies[0].AgencyID)
	assert.Equal(t, "agency-4", agencies[3].AgencyID)

	params, err := store.Parameters().GetByAgencyID(ctx, "agency-3")
	require.NoError(t, err)
	assert.Equal(t, 7, params.MaxAppointmentsPerDay)
	assert.Len(t, params.AvailableHours, 7)
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store.Agencies(), nopLogger{})
	require.NoError(t, svc.Seed(ctx, store.Parameters(), DefaultSeed))

	agency, err := svc.GetByID(ctx, "agency-2")
	require.NoError(t, err)
	assert.Equal(t, "Agencia Valencia Centro", agency.Name)
	assert.Equal(t, "Av. Bolívar, Valencia", agency.Address)

	_, err = svc.GetByID(ctx, "agency-9")
	assert.ErrorIs(t, err, ErrAgencyNotFound)
}
