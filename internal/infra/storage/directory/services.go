package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const (
	tableServices  = "services"
	tableSchedules = "schedules"
)

// ServiceRepository чтение каталога услуг вместе с расписанием
type ServiceRepository struct {
	db DBExecutor
}

// NewServiceRepository создает репозиторий услуг
func NewServiceRepository(db DBExecutor) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Exists проверяет наличие услуги
func (r *ServiceRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "ServiceRepository.Exists", tableServices, squirrel.Eq{"id": id})
}

// GetByID возвращает услугу с окнами расписания, упорядоченными по id
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"duration_minutes",
		"price",
		"booking_limit",
		"company_cif",
	).
		From(tableServices).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ServiceRepository.GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		service     domain.Service
		description sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&description,
		&service.DurationMinutes,
		&service.Price,
		&service.BookingLimit,
		&service.CompanyCIF,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ServiceRepository.GetByID - scan service: %v", ErrScanRow, err)
	}
	service.Description = description.String

	schedules, err := r.getSchedules(ctx, executor, service.ID)
	if err != nil {
		return nil, err
	}
	service.Schedules = schedules

	return &service, nil
}

func (r *ServiceRepository) getSchedules(ctx context.Context, executor DBExecutor, serviceID int64) ([]domain.Schedule, error) {
	query, args, err := psqlbuilder.Select("id", "weekdays", "start_time", "end_time", "service_id", "company_cif").
		From(tableSchedules).
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ServiceRepository.getSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ServiceRepository.getSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		var (
			schedule domain.Schedule
			tokens   []string
		)
		err := rows.Scan(
			&schedule.ID,
			pq.Array(&tokens),
			&schedule.Start,
			&schedule.End,
			&schedule.ServiceID,
			&schedule.CompanyCIF,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ServiceRepository.getSchedules - scan row: %v", ErrScanRow, err)
		}

		schedule.Weekdays, err = domain.ParseWeekdays(tokens)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %d: %v", ErrInvalidSchedule, schedule.ID, err)
		}
		if !schedule.IsValid() {
			return nil, fmt.Errorf("%w: schedule %d: start %s is not before end %s", ErrInvalidSchedule, schedule.ID, schedule.Start, schedule.End)
		}

		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ServiceRepository.getSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}
