package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"client_dni",
	"company_cif",
	"service_id",
	"booking_date",
	"booking_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"client_dni",
			"company_cif",
			"service_id",
			"booking_date",
			"booking_time",
			"status",
		).
		Values(
			booking.ClientDNI,
			booking.CompanyCIF,
			booking.ServiceID,
			domain.DateOnly(booking.Date),
			booking.Time,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.Date = domain.DateOnly(booking.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку до конца обновления
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClient получает все бронирования клиента, новые первыми
func (r *Repository) GetByClient(ctx context.Context, clientDNI string) ([]*domain.Booking, error) {
	return r.list(ctx, "GetByClient", squirrel.Eq{"client_dni": clientDNI}, "booking_date DESC, booking_time DESC")
}

// GetByCompany получает все бронирования компании, новые первыми
func (r *Repository) GetByCompany(ctx context.Context, companyCIF string) ([]*domain.Booking, error) {
	return r.list(ctx, "GetByCompany", squirrel.Eq{"company_cif": companyCIF}, "booking_date DESC, booking_time DESC")
}

// GetActiveByDateRange получает активные бронирования с датой в [from, to] включительно
// Используется рассылкой напоминаний
func (r *Repository) GetActiveByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	where := squirrel.And{
		squirrel.GtOrEq{"booking_date": domain.DateOnly(from)},
		squirrel.LtOrEq{"booking_date": domain.DateOnly(to)},
		squirrel.NotEq{"status": inactiveStatusStrings()},
	}
	return r.list(ctx, "GetActiveByDateRange", where, "booking_date ASC, booking_time ASC")
}

// CountByServiceAndDate считает активные бронирования услуги на дату.
// excludeID исключает из подсчета редактируемое бронирование.
func (r *Repository) CountByServiceAndDate(ctx context.Context, serviceID int64, date time.Time, excludeID *int64) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(tableBookings).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"booking_date": domain.DateOnly(date)}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByServiceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByServiceAndDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// LockServiceDate берет транзакционную advisory-блокировку на пару (услуга, дата).
// Блокировка снимается при COMMIT/ROLLBACK, поэтому писатели одной пары
// выполняют "подсчет, затем запись" строго по очереди.
func (r *Repository) LockServiceDate(ctx context.Context, serviceID int64, date time.Time) error {
	tx, ok := txmanager.TxFromContext(ctx)
	if !ok {
		return ErrNotInTransaction
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?, ?)", int32(serviceID), dateLockKey(date))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockServiceDate - build query: %v", ErrBuildQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockServiceDate - acquire lock: %v", ErrExecQuery, err)
	}

	return nil
}

// Update сохраняет все изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("client_dni", booking.ClientDNI).
		Set("company_cif", booking.CompanyCIF).
		Set("service_id", booking.ServiceID).
		Set("booking_date", domain.DateOnly(booking.Date)).
		Set("booking_time", booking.Time).
		Set("status", booking.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	affected, err := r.delete(ctx, "Delete", squirrel.Eq{"id": id})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// DeleteByClient удаляет все бронирования клиента и возвращает их количество
func (r *Repository) DeleteByClient(ctx context.Context, clientDNI string) (int64, error) {
	return r.delete(ctx, "DeleteByClient", squirrel.Eq{"client_dni": clientDNI})
}

// DeleteByCompany удаляет все бронирования компании и возвращает их количество
func (r *Repository) DeleteByCompany(ctx context.Context, companyCIF string) (int64, error) {
	return r.delete(ctx, "DeleteByCompany", squirrel.Eq{"company_cif": companyCIF})
}

func (r *Repository) delete(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(where).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer, orderBy string) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(where).
		OrderBy(orderBy).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientDNI,
		&booking.CompanyCIF,
		&booking.ServiceID,
		&booking.Date,
		&booking.Time,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOnly(booking.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// dateLockKey номер дня от эпохи Unix, второй ключ advisory-блокировки
func dateLockKey(date time.Time) int32 {
	return int32(domain.DateOnly(date).Unix() / 86400)
}
