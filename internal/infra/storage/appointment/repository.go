package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	pqUniqueViolation = "23505"

	constraintActiveSlot      = "uq_appointments_active_slot"
	constraintBookedRequester = "uq_appointments_booked_requester"
)

var columns = []string{
	"id",
	"requester_id",
	"applicant_kind",
	"appointment_date",
	"appointment_hour",
	"agency_id",
	"contact_email",
	"notification_email",
	"status",
	"cancel_reason",
	"processed_at",
	"canceled_at",
	"completed_at",
	"created_at",
}

// Repository журнал записей на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал.
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникальных индексов слота и заявителя возвращается как
// ErrSlotOccupied и ErrRequesterHasBooked
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(columns...).
		Values(
			a.ID,
			a.RequesterID,
			a.ApplicantKind,
			a.Date,
			a.Hour,
			a.AgencyID,
			a.ContactEmail,
			a.NotificationEmail,
			a.Status,
			a.CancelReason,
			a.ProcessedAt,
			a.CanceledAt,
			a.CompletedAt,
			a.CreatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			switch pqErr.Constraint {
			case constraintActiveSlot:
				return nil, ErrSlotOccupied
			case constraintBookedRequester:
				return nil, ErrRequesterHasBooked
			}
		}
		// %w для исходной ошибки: менеджер транзакций распознаёт конфликт сериализации
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// GetByFilter получает записи по фильтру.
//
// Примеры использования:
//
// 1. Активные записи агентства на дату (проверка лимита и слотов):
//    filter := domain.AppointmentsFilter{AgencyID: &id, DateFrom: &d, DateTo: &d, ActiveOnly: true}
//
// 2. Записи заявителя в статусе booked:
//    filter := domain.AppointmentsFilter{RequesterID: &req, Status: &booked}
//
// Внутри транзакции запрос на одну дату выполняется с FOR UPDATE:
// параллельная запись в то же агентство на ту же дату ждёт фиксации
func (r *Repository) GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From("appointments")

	if filter.AgencyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"agency_id": *filter.AgencyID})
	}
	if filter.RequesterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.DateTo})
	}

	// Конкретный статус важнее признака активности
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.IsSingleDay() {
		selectBuilder = selectBuilder.OrderBy("appointment_hour ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "appointment_hour DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFilter - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus сохраняет статус записи вместе с отметками времени и причиной отмены
func (r *Repository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", a.Status).
		Set("cancel_reason", a.CancelReason).
		Set("processed_at", a.ProcessedAt).
		Set("canceled_at", a.CanceledAt).
		Set("completed_at", a.CompletedAt).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a            domain.Appointment
		cancelReason sql.NullString
		processedAt  sql.NullTime
		canceledAt   sql.NullTime
		completedAt  sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.RequesterID,
		&a.ApplicantKind,
		&a.Date,
		&a.Hour,
		&a.AgencyID,
		&a.ContactEmail,
		&a.NotificationEmail,
		&a.Status,
		&cancelReason,
		&processedAt,
		&canceledAt,
		&completedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Date = domain.DateOnly(a.Date)
	if cancelReason.Valid {
		a.CancelReason = &cancelReason.String
	}
	if processedAt.Valid {
		a.ProcessedAt = &processedAt.Time
	}
	if canceledAt.Valid {
		a.CanceledAt = &canceledAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}

	return &a, nil
}
