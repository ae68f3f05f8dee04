package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/compralista/shopping-list-platform/internal/models"
	repository "github.com/compralista/shopping-list-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentRepo(t *testing.T) (sqlmock.Sqlmock, repository.PaymentRepository) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return mock, repository.NewPaymentRepo(db)
}

var paymentRowColumns = []string{
	"id", "user_id", "type", "description", "is_default", "enabled", "created_at", "updated_at",
}

func TestCreatePaymentMethodRow(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("Success - Non-Default Skips The Unset", func(t *testing.T) {
		// Arrange
		mock, repo := setupPaymentRepo(t)
		method := &models.PaymentMethod{ID: uuid.NewString(), UserID: userID, Type: models.PaymentTypePix, Enabled: true}
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_methods")).
			WithArgs(method.ID, userID, models.PaymentTypePix, nil, false, true).
			WillReturnRows(mock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
		mock.ExpectCommit()

		// Act
		err := repo.Create(ctx, method)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - New Default Unsets The Previous One", func(t *testing.T) {
		// Arrange
		mock, repo := setupPaymentRepo(t)
		method := &models.PaymentMethod{ID: uuid.NewString(), UserID: userID, Type: models.PaymentTypeCredit, IsDefault: true, Enabled: true}
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE payment_methods SET is_default = FALSE, updated_at = NOW\(\)\s+WHERE user_id = \$1 AND is_default = TRUE AND deleted_at IS NULL`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_methods")).
			WithArgs(method.ID, userID, models.PaymentTypeCredit, nil, true, true).
			WillReturnRows(mock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
		mock.ExpectCommit()

		// Act
		err := repo.Create(ctx, method)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePaymentMethodRow(t *testing.T) {
	ctx := context.Background()
	methodID := uuid.NewString()
	userID := uuid.NewString()

	t.Run("Success - Promoting To Default Demotes Siblings", func(t *testing.T) {
		// Arrange
		mock, repo := setupPaymentRepo(t)
		now := time.Now()
		isDefault := true

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE payment_methods SET is_default = FALSE, updated_at = NOW\(\)\s+WHERE user_id = \$1 AND id <> \$2 AND is_default = TRUE AND deleted_at IS NULL`).
			WithArgs(userID, methodID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE payment_methods SET updated_at = NOW\(\), is_default = \$1\s+WHERE id = \$2 AND user_id = \$3 AND deleted_at IS NULL`).
			WithArgs(true, methodID, userID).
			WillReturnRows(mock.NewRows(paymentRowColumns).
				AddRow(methodID, userID, "credit", nil, true, true, now, now))
		mock.ExpectCommit()

		// Act
		method, err := repo.Update(ctx, methodID, userID, &models.UpdatePaymentMethodRequest{IsDefault: &isDefault})

		// Assert
		require.NoError(t, err)
		assert.True(t, method.IsDefault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSoftDeletePaymentMethod(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Row Disabled And Demoted", func(t *testing.T) {
		// Arrange
		mock, repo := setupPaymentRepo(t)
		methodID := uuid.NewString()
		userID := uuid.NewString()
		now := time.Now()
		mock.ExpectQuery(`UPDATE payment_methods SET deleted_at = NOW\(\), enabled = FALSE, is_default = FALSE, updated_at = NOW\(\)`).
			WithArgs(methodID, userID).
			WillReturnRows(mock.NewRows(paymentRowColumns).
				AddRow(methodID, userID, "pix", nil, false, false, now, now))

		// Act
		method, err := repo.SoftDelete(ctx, methodID, userID)

		// Assert
		require.NoError(t, err)
		assert.False(t, method.Enabled)
		assert.False(t, method.IsDefault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListPaymentMethodsByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("Success - Default First", func(t *testing.T) {
		// Arrange
		mock, repo := setupPaymentRepo(t)
		now := time.Now()
		mock.ExpectQuery(`WHERE user_id = \$1 AND deleted_at IS NULL\s+ORDER BY is_default DESC, created_at ASC`).
			WithArgs(userID).
			WillReturnRows(mock.NewRows(paymentRowColumns).
				AddRow(uuid.NewString(), userID, "credit", "Cartão principal", true, true, now, now).
				AddRow(uuid.NewString(), userID, "pix", nil, false, true, now, now))

		// Act
		methods, err := repo.ListByUser(ctx, userID)

		// Assert
		require.NoError(t, err)
		require.Len(t, methods, 2)
		assert.True(t, methods[0].IsDefault)
		assert.Equal(t, models.PaymentTypeCredit, methods[0].Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
