package parameters

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
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Repository репозиторий параметризации агентств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория параметризации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает параметризацию всех агентств в порядке каталога
func (r *Repository) GetAll(ctx context.Context) ([]*domain.AgencyParameters, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.agency_id",
		"p.max_appointments_per_day",
		"p.available_hours",
		"p.created_at",
		"p.updated_at",
	).
		From("agency_parameters p").
		Join("agencies a ON a.id = p.agency_id").
		OrderBy("a.position ASC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AgencyParameters, 0)
	for rows.Next() {
		params, err := scanParameters(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		result = append(result, params)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetByAgencyID получает параметризацию агентства
func (r *Repository) GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"agency_id",
		"max_appointments_per_day",
		"available_hours",
		"created_at",
		"updated_at",
	).
		From("agency_parameters").
		Where(squirrel.Eq{"agency_id": agencyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgencyID - build select query: %v", ErrBuildQuery, err)
	}

	params, err := scanParameters(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParametersNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgencyID - scan parameters: %v", ErrScanRow, err)
	}

	return params, nil
}

// Create сохраняет параметризацию нового агентства
func (r *Repository) Create(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("agency_parameters").
		Columns("agency_id", "max_appointments_per_day", "available_hours").
		Values(params.AgencyID, params.MaxAppointmentsPerDay, pq.Array(hoursToStrings(params.AvailableHours))).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&params.CreatedAt, &params.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return nil, ErrParametersExists
			case pqForeignKeyViolation:
				return nil, ErrUnknownAgency
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return params, nil
}

// Update меняет лимит и часы приема агентства
func (r *Repository) Update(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("agency_parameters").
		Set("max_appointments_per_day", params.MaxAppointmentsPerDay).
		Set("available_hours", pq.Array(hoursToStrings(params.AvailableHours))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"agency_id": params.AgencyID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&params.CreatedAt, &params.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParametersNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return params, nil
}

// Delete снимает агентство с записи. Существующие записи на прием сохраняются
func (r *Repository) Delete(ctx context.Context, agencyID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("agency_parameters").
		Where(squirrel.Eq{"agency_id": agencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrParametersNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParameters(row rowScanner) (*domain.AgencyParameters, error) {
	var (
		params domain.AgencyParameters
		hours  pq.StringArray
	)

	if err := row.Scan(
		&params.AgencyID,
		&params.MaxAppointmentsPerDay,
		&hours,
		&params.CreatedAt,
		&params.UpdatedAt,
	); err != nil {
		return nil, err
	}

	params.AvailableHours = make([]types.TimeString, 0, len(hours))
	for _, h := range hours {
		ts, err := types.NewTimeStringFromString(h)
		if err != nil {
			return nil, err
		}
		params.AvailableHours = append(params.AvailableHours, ts)
	}

	return &params, nil
}

func hoursToStrings(hours []types.TimeString) []string {
	out := make([]string, len(hours))
	for i, h := range hours {
		out[i] = h.String()
	}
	return out
}
