package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache"
	agencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/agency"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	parametersRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/parameters"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// Интерфейсы хранилищ, общие для postgres и memory

type agencyStore interface {
	GetAll(ctx context.Context) ([]*domain.Agency, error)
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
	Upsert(ctx context.Context, a *domain.Agency) error
}

type appointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, a *domain.Appointment) error
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	agencies     agencyStore
	parameters   parametersRepo.Store
	appointments appointmentStore
	tx           txManager

	closers []func() error
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

// openStorage подключает postgres или memory и оборачивает параметризацию кэшем
func openStorage(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopCh <-chan struct{}) (*storage, error) {
	st := &storage{}

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		st.agencies = store.Agencies()
		st.parameters = store.Parameters()
		st.appointments = store.Appointments()
		st.tx = store.TxManager()
		log.Info("Using in-memory storage")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		st.closers = append(st.closers, db.Close)

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			st.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrapped *dbmetrics.DB
		if m != nil {
			wrapped = dbmetrics.WrapWithDefault(db, m, stopCh)
			log.Info("Database metrics collection started")
		} else {
			wrapped = dbmetrics.Wrap(db, nil)
		}

		st.agencies = agencyRepo.NewRepository(wrapped)
		st.parameters = parametersRepo.NewRepository(wrapped)
		st.appointments = appointmentRepo.NewRepository(wrapped)
		st.tx = txmanager.NewTransactionManager(wrapped).WithMaxAttempts(cfg.Database.TxMaxAttempts)
	}

	// Кэш параметризации
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		st.closers = append(st.closers, redisCache.Close)
		st.parameters = parametersRepo.NewCachedStore(
			st.parameters,
			redisCache,
			time.Duration(cfg.Redis.TTL)*time.Second,
			log,
		)
		log.Info("Agency parameters cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	} else {
		st.parameters = parametersRepo.NewCachedStore(st.parameters, cache.NewNoop(), 0, log)
	}

	return st, nil
}
