package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	agencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/agency"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	parametersRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/parameters"
)

// Store хранилище в памяти процесса. Возвращает те же ошибки, что и postgres-репозитории,
// и поддерживает те же инварианты уникальности, что индексы таблицы appointments
type Store struct {
	mu           sync.RWMutex
	agencies     map[string]*domain.Agency
	parameters   map[string]*domain.AgencyParameters
	appointments []*domain.Appointment

	txMu sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		agencies:   make(map[string]*domain.Agency),
		parameters: make(map[string]*domain.AgencyParameters),
	}
}

// Agencies репозиторий каталога
func (s *Store) Agencies() *AgencyRepository {
	return &AgencyRepository{s: s}
}

// Parameters репозиторий параметризации
func (s *Store) Parameters() *ParametersRepository {
	return &ParametersRepository{s: s}
}

// Appointments журнал записей
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

// TxManager менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

// AgencyRepository каталог агентств в памяти
type AgencyRepository struct {
	s *Store
}

// GetAll возвращает агентства в порядке каталога
func (r *AgencyRepository) GetAll(ctx context.Context) ([]*domain.Agency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Agency, 0, len(r.s.agencies))
	for _, a := range r.s.agencies {
		copied := *a
		result = append(result, &copied)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// GetByID получает агентство по ID
func (r *AgencyRepository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.agencies[id]
	if !ok {
		return nil, agencyRepo.ErrAgencyNotFound
	}
	copied := *a
	return &copied, nil
}

// Upsert создает или обновляет агентство
func (r *AgencyRepository) Upsert(ctx context.Context, a *domain.Agency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	previous, existed := r.s.agencies[a.ID]
	recordUndo(ctx, func() {
		if existed {
			r.s.agencies[a.ID] = previous
			return
		}
		delete(r.s.agencies, a.ID)
	})

	copied := *a
	r.s.agencies[a.ID] = &copied
	return nil
}

// ParametersRepository параметризация в памяти
type ParametersRepository struct {
	s *Store
}

// GetAll возвращает параметризацию в порядке каталога
func (r *ParametersRepository) GetAll(ctx context.Context) ([]*domain.AgencyParameters, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.AgencyParameters, 0, len(r.s.parameters))
	for _, p := range r.s.parameters {
		result = append(result, copyParameters(p))
	}
	sort.SliceStable(result, func(i, j int) bool {
		pi, pj := r.s.position(result[i].AgencyID), r.s.position(result[j].AgencyID)
		if pi != pj {
			return pi < pj
		}
		return result[i].AgencyID < result[j].AgencyID
	})
	return result, nil
}

// GetByAgencyID получает параметризацию агентства
func (r *ParametersRepository) GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.parameters[agencyID]
	if !ok {
		return nil, parametersRepo.ErrParametersNotFound
	}
	return copyParameters(p), nil
}

// Create сохраняет параметризацию агентства из каталога
func (r *ParametersRepository) Create(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.agencies[params.AgencyID]; !ok {
		return nil, parametersRepo.ErrUnknownAgency
	}
	if _, ok := r.s.parameters[params.AgencyID]; ok {
		return nil, parametersRepo.ErrParametersExists
	}

	stored := copyParameters(params)
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.s.parameters[params.AgencyID] = stored
	recordUndo(ctx, func() { delete(r.s.parameters, params.AgencyID) })
	return copyParameters(stored), nil
}

// Update меняет параметризацию агентства
func (r *ParametersRepository) Update(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.parameters[params.AgencyID]
	if !ok {
		return nil, parametersRepo.ErrParametersNotFound
	}

	stored := copyParameters(params)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	r.s.parameters[params.AgencyID] = stored
	recordUndo(ctx, func() { r.s.parameters[params.AgencyID] = existing })
	return copyParameters(stored), nil
}

// Delete удаляет параметризацию агентства
func (r *ParametersRepository) Delete(ctx context.Context, agencyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.parameters[agencyID]
	if !ok {
		return parametersRepo.ErrParametersNotFound
	}
	delete(r.s.parameters, agencyID)
	recordUndo(ctx, func() { r.s.parameters[agencyID] = existing })
	return nil
}

// AppointmentRepository журнал записей в памяти
type AppointmentRepository struct {
	s *Store
}

// Create добавляет запись, проверяя уникальность слота и записи заявителя
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.appointments {
		if a.IsActive() && existing.IsActive() &&
			existing.AgencyID == a.AgencyID && existing.Date.Equal(a.Date) && existing.Hour == a.Hour {
			return nil, appointmentRepo.ErrSlotOccupied
		}
		if a.IsBooked() && existing.IsBooked() && existing.RequesterID == a.RequesterID {
			return nil, appointmentRepo.ErrRequesterHasBooked
		}
	}

	r.s.appointments = append(r.s.appointments, copyAppointment(a))
	recordUndo(ctx, func() { r.s.removeAppointment(a.ID) })
	return copyAppointment(a), nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.appointments {
		if a.ID == id {
			return copyAppointment(a), nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

// GetByFilter получает записи по фильтру в том же порядке, что и postgres-репозиторий
func (r *AppointmentRepository) GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if filter.Matches(a) {
			result = append(result, copyAppointment(a))
		}
	}

	if filter.IsSingleDay() {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Hour.IsBefore(result[j].Hour)
		})
	} else {
		sort.SliceStable(result, func(i, j int) bool {
			if !result[i].Date.Equal(result[j].Date) {
				return result[i].Date.After(result[j].Date)
			}
			return result[i].Hour.IsAfter(result[j].Hour)
		})
	}

	return result, nil
}

// UpdateStatus сохраняет статус и отметки времени записи
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, existing := range r.s.appointments {
		if existing.ID == a.ID {
			updated := copyAppointment(existing)
			updated.Status = a.Status
			updated.CancelReason = a.CancelReason
			updated.ProcessedAt = a.ProcessedAt
			updated.CanceledAt = a.CanceledAt
			updated.CompletedAt = a.CompletedAt
			r.s.appointments[i] = updated
			recordUndo(ctx, func() { r.s.replaceAppointment(existing) })
			return nil
		}
	}
	return appointmentRepo.ErrAppointmentNotFound
}

// TxManager сериализует пишущие транзакции одним мьютексом.
// При ошибке fn откатываются только записи, сделанные внутри fn
type TxManager struct {
	s *Store
}

type txKey struct{}

// undoLog откаты изменений транзакции в порядке применения
type undoLog struct {
	steps []func()
}

// recordUndo запоминает откат изменения, если ctx несет транзакцию.
// Вызывается под s.mu
func recordUndo(ctx context.Context, step func()) {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok {
		log.steps = append(log.steps, step)
	}
}

// DoSerializable выполняет fn, пока другие транзакции ждут
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Вложенный вызов переиспользует внешнюю транзакцию
	if _, ok := ctx.Value(txKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		m.s.rollback(log)
		return err
	}
	return nil
}

func (s *Store) rollback(log *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(log.steps) - 1; i >= 0; i-- {
		log.steps[i]()
	}
}

func (s *Store) removeAppointment(id string) {
	for i, a := range s.appointments {
		if a.ID == id {
			s.appointments = append(s.appointments[:i:i], s.appointments[i+1:]...)
			return
		}
	}
}

func (s *Store) replaceAppointment(previous *domain.Appointment) {
	for i, a := range s.appointments {
		if a.ID == previous.ID {
			s.appointments[i] = previous
			return
		}
	}
}

func (s *Store) position(agencyID string) int {
	if a, ok := s.agencies[agencyID]; ok {
		return a.Position
	}
	return int(^uint(0) >> 1)
}

func copyParameters(p *domain.AgencyParameters) *domain.AgencyParameters {
	copied := *p
	copied.AvailableHours = append(copied.AvailableHours[:0:0], p.AvailableHours...)
	return &copied
}

func copyAppointment(a *domain.Appointment) *domain.Appointment {
	copied := *a
	return &copied
}
