package notification

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notifications (client_dni,company_cif,message,type,email_sent) VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at")).
		WithArgs("12345678Z", nil, "Reserva creada", "INFORMACION", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	n, err := NewRepository(db).Create(context.Background(), &domain.Notification{
		ClientDNI: ptr.Ptr("12345678Z"),
		Message:   "Reserva creada",
		Type:      domain.NotificationInfo,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), n.ID)
	assert.Equal(t, now, n.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_RequiresSingleRecipient(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	_, err = repo.Create(context.Background(), &domain.Notification{Message: "x", Type: domain.NotificationInfo})
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = repo.Create(context.Background(), &domain.Notification{
		ClientDNI:  ptr.Ptr("12345678Z"),
		CompanyCIF: ptr.Ptr("B12345678"),
		Message:    "x",
		Type:       domain.NotificationInfo,
	})
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestRepository_MarkEmailSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET email_sent = $1 WHERE id = $2")).
		WithArgs(true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE notifications").
		WithArgs(true, int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	require.NoError(t, repo.MarkEmailSent(context.Background(), 5))
	assert.ErrorIs(t, repo.MarkEmailSent(context.Background(), 6), ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
