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

const tableCompanies = "companies"

// CompanyRepository чтение справочника компаний
type CompanyRepository struct {
	db DBExecutor
}

// NewCompanyRepository создает репозиторий компаний
func NewCompanyRepository(db DBExecutor) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Exists проверяет наличие компании с указанным CIF
func (r *CompanyRepository) Exists(ctx context.Context, cif string) (bool, error) {
	return exists(ctx, r.db, "CompanyRepository.Exists", tableCompanies, squirrel.Eq{"cif": cif})
}

// GetByCIF возвращает компанию по CIF
func (r *CompanyRepository) GetByCIF(ctx context.Context, cif string) (*domain.Company, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("cif", "name", "contact_name", "email").
		From(tableCompanies).
		Where(squirrel.Eq{"cif": cif}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CompanyRepository.GetByCIF - build select query: %v", ErrBuildQuery, err)
	}

	var (
		company     domain.Company
		contactName sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&company.CIF,
		&company.Name,
		&contactName,
		&company.Email,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CompanyRepository.GetByCIF - scan company: %v", ErrScanRow, err)
	}
	company.ContactName = contactName.String

	return &company, nil
}
