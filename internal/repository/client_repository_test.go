package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clienttrack/internal/model"
)

// newMockDB opens a GORM connection over a sqlmock driver so tests can
// assert the SQL the repositories actually issue, ownership predicates
// included.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return db, mock
}

func TestClientRepository_FindByIDFiltersByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "company", "email", "phone", "status", "created_at", "updated_at"}).
		AddRow(7, 3, "Acme Ltd", "Acme", "hello@acme.test", "0117 000000", "Active", time.Now(), time.Now())
	mock.ExpectQuery("SELECT \\* FROM `clients` WHERE clients\\.id = \\? AND clients\\.user_id = \\? ORDER BY `clients`\\.`id` LIMIT \\?").
		WithArgs(7, 3, 1).
		WillReturnRows(rows)

	client, err := repo.FindByID(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.Equal(t, "Acme Ltd", client.Name)
	assert.Equal(t, uint(3), client.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_FindByIDForeignClientNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM `clients` WHERE clients\\.id = \\? AND clients\\.user_id = \\? ORDER BY `clients`\\.`id` LIMIT \\?").
		WithArgs(7, 99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), 99, 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_UpdateScopesToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `clients` SET .+ WHERE clients\\.id = \\? AND clients\\.user_id = \\?").
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			7, 3,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), 3, &model.Client{
		ID:     7,
		Name:   "Acme Ltd",
		Status: model.ClientStatusActive,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_UpdateUnchangedValuesIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, zap.NewNop())

	// MySQL reports zero affected rows when the new values equal the stored
	// ones. Resubmitting an edit form unchanged must not read as not-found.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `clients` SET .+ WHERE clients\\.id = \\? AND clients\\.user_id = \\?").
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			7, 3,
		).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), 3, &model.Client{
		ID:     7,
		Name:   "Acme Ltd",
		Status: model.ClientStatusActive,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_DeleteCascadesProjectsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `projects` WHERE client_id = \\? AND client_id IN \\(SELECT `id` FROM `clients` WHERE user_id = \\?\\)").
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `clients` WHERE id = \\? AND user_id = \\?").
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 3, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_DeleteForeignClientIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, zap.NewNop())

	// Both statements carry the ownership filter, so neither table loses a
	// row when the client belongs to someone else.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `projects` WHERE client_id = \\? AND client_id IN \\(SELECT `id` FROM `clients` WHERE user_id = \\?\\)").
		WithArgs(7, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `clients` WHERE id = \\? AND user_id = \\?").
		WithArgs(7, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 99, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
