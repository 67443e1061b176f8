package parameters

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	cacheKeyAll      = "agency_parameters:all"
	cacheKeyByAgency = "agency_parameters:agency:"
)

// CachedStore read-through кэш поверх хранилища параметризации.
// Ошибки кэша не прерывают запрос: значение читается из хранилища
type CachedStore struct {
	inner  Store
	cache  Cache
	ttl    time.Duration
	logger Logger
}

// NewCachedStore создает кэширующую обёртку
func NewCachedStore(inner Store, cache Cache, ttl time.Duration, logger Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetAll возвращает параметризацию всех агентств
func (s *CachedStore) GetAll(ctx context.Context) ([]*domain.AgencyParameters, error) {
	var cached []*domain.AgencyParameters
	if s.load(ctx, cacheKeyAll, &cached) {
		return cached, nil
	}

	result, err := s.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, cacheKeyAll, result)
	return result, nil
}

// GetByAgencyID получает параметризацию агентства
func (s *CachedStore) GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error) {
	key := cacheKeyByAgency + agencyID

	var cached domain.AgencyParameters
	if s.load(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := s.inner.GetByAgencyID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, result)
	return result, nil
}

// Create сохраняет параметризацию и сбрасывает кэш
func (s *CachedStore) Create(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	result, err := s.inner.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, params.AgencyID)
	return result, nil
}

// Update обновляет параметризацию и сбрасывает кэш
func (s *CachedStore) Update(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	result, err := s.inner.Update(ctx, params)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, params.AgencyID)
	return result, nil
}

// Delete удаляет параметризацию и сбрасывает кэш
func (s *CachedStore) Delete(ctx context.Context, agencyID string) error {
	if err := s.inner.Delete(ctx, agencyID); err != nil {
		return err
	}
	s.invalidate(ctx, agencyID)
	return nil
}

func (s *CachedStore) load(ctx context.Context, key string, dst interface{}) bool {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("parameters cache: get key=%s failed: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("parameters cache: decode key=%s failed: %v", key, err)
		return false
	}
	return true
}

func (s *CachedStore) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("parameters cache: encode key=%s failed: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("parameters cache: set key=%s failed: %v", key, err)
	}
}

func (s *CachedStore) invalidate(ctx context.Context, agencyID string) {
	for _, key := range []string{cacheKeyAll, cacheKeyByAgency + agencyID} {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Error("parameters cache: invalidate key=%s failed: %v", key, err)
		}
	}
}
