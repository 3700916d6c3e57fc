package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestOrganizationDelete(t *testing.T) {
	t.Run("cascades over memberships in one transaction", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewOrganizationRepository(gdb)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "organizations"`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "members" SET "memberships"=array_remove`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "members" WHERE cardinality\(memberships\) = 0`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), id)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown organization rolls the transaction back", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewOrganizationRepository(gdb)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "organizations"`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("membership prune failure aborts the whole cascade", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewOrganizationRepository(gdb)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "organizations"`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "members" SET "memberships"=array_remove`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), id)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrOrganizationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
