package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const tableClients = "clients"

// ClientRepository чтение справочника клиентов
type ClientRepository struct {
	db DBExecutor
}

// NewClientRepository создает репозиторий клиентов
func NewClientRepository(db DBExecutor) *ClientRepository {
	return &ClientRepository{db: db}
}

// Exists проверяет наличие клиента с указанным DNI
func (r *ClientRepository) Exists(ctx context.Context, dni string) (bool, error) {
	return exists(ctx, r.db, "ClientRepository.Exists", tableClients, squirrel.Eq{"dni": dni})
}

// GetByDNI возвращает клиента по DNI
func (r *ClientRepository) GetByDNI(ctx context.Context, dni string) (*domain.Client, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("dni", "name", "surname", "email", "phone").
		From(tableClients).
		Where(squirrel.Eq{"dni": dni}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ClientRepository.GetByDNI - build select query: %v", ErrBuildQuery, err)
	}

	var (
		client  domain.Client
		surname sql.NullString
		phone   sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.DNI,
		&client.Name,
		&surname,
		&client.Email,
		&phone,
	)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ClientRepository.GetByDNI - scan client: %v", ErrScanRow, err)
	}

	client.Surname = surname.String
	if phone.Valid {
		client.Phone = &phone.String
	}

	return &client, nil
}

// exists выполняет SELECT EXISTS(...) по произвольному условию
func exists(ctx context.Context, db DBExecutor, op, table string, where squirrel.Sqlizer) (bool, error) {
	executor := txmanager.GetExecutor(ctx, db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS(").
		From(table).
		Where(where).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build exists query: %v", ErrBuildQuery, op, err)
	}

	var found bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("%w: %s - scan exists: %v", ErrExecQuery, op, err)
	}

	return found, nil
}
