package parameters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetAll(ctx context.Context) ([]*domain.AgencyParameters, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.AgencyParameters), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error) {
	args := m.Called(ctx, agencyID)
	if v := args.Get(0); v != nil {
		return v.(*domain.AgencyParameters), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, p *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	args := m.Called(ctx, p)
	return p, args.Error(0)
}

func (m *mockStore) Update(ctx context.Context, p *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	args := m.Called(ctx, p)
	return p, args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, agencyID string) error {
	return m.Called(ctx, agencyID).Error(0)
}

type mapCache struct {
	data   map[string][]byte
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func agency2() *domain.AgencyParameters {
	return &domain.AgencyParameters{
		AgencyID:              "agency-2",
		MaxAppointmentsPerDay: 3,
		AvailableHours:        []types.TimeString{"09:30", "10:30", "11:30"},
	}
}

func TestCachedStore_GetAllReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &mockStore{}
	inner.On("GetAll", ctx).Return([]*domain.AgencyParameters{agency2()}, nil).Once()

	store := NewCachedStore(inner, newMapCache(), time.Minute, nopLogger{})

	first, err := store.GetAll(ctx)
	require.NoError(t, err)
	second, err := store.GetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []types.TimeString{"09:30", "10:30", "11:30"}, second[0].AvailableHours)
	inner.AssertExpectations(t)
}

func TestCachedStore_InvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	inner := &mockStore{}
	cache := newMapCache()
	store := NewCachedStore(inner, cache, time.Minute, nopLogger{})

	inner.On("GetByAgencyID", ctx, "agency-2").Return(agency2(), nil).Twice()
	inner.On("Update", ctx, mock.Anything).Return(nil).Once()

	_, err := store.GetByAgencyID(ctx, "agency-2")
	require.NoError(t, err)
	assert.Contains(t, cache.data, cacheKeyByAgency+"agency-2")

	updated := agency2()
	updated.MaxAppointmentsPerDay = 4
	_, err = store.Update(ctx, updated)
	require.NoError(t, err)
	assert.NotContains(t, cache.data, cacheKeyByAgency+"agency-2")

	_, err = store.GetByAgencyID(ctx, "agency-2")
	require.NoError(t, err)
	inner.AssertExpectations(t)
}

func TestCachedStore_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	inner := &mockStore{}
	cache := newMapCache()
	cache.getErr = errors.New("redis: connection refused")

	inner.On("GetByAgencyID", ctx, "agency-9").Return(nil, ErrParametersNotFound).Once()
	inner.On("GetAll", ctx).Return([]*domain.AgencyParameters{agency2()}, nil).Once()

	store := NewCachedStore(inner, cache, time.Minute, nopLogger{})

	_, err := store.GetByAgencyID(ctx, "agency-9")
	assert.ErrorIs(t, err, ErrParametersNotFound)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	inner.AssertExpectations(t)
}
