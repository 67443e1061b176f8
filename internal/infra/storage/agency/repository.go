package agency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var columns = []string{"id", "name", "address", "region", "position"}

// Repository каталог агентств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория агентств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все агентства в порядке каталога
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Agency, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("agencies").
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	agencies := make([]*domain.Agency, 0)
	for rows.Next() {
		var a domain.Agency
		if err := rows.Scan(&a.ID, &a.Name, &a.Address, &a.Region, &a.Position); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		agencies = append(agencies, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return agencies, nil
}

// GetByID получает агентство по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("agencies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var a domain.Agency
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Name, &a.Address, &a.Region, &a.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAgencyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan agency: %v", ErrScanRow, err)
	}

	return &a, nil
}

// Upsert создает агентство или обновляет его реквизиты (используется при загрузке каталога)
func (r *Repository) Upsert(ctx context.Context, a *domain.Agency) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("agencies").
		Columns(columns...).
		Values(a.ID, a.Name, a.Address, a.Region, a.Position).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, " +
			"region = EXCLUDED.region, position = EXCLUDED.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
