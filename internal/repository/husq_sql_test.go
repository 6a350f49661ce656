package repository

import (
	"context"
	"testing"

	"husq/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func husqRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "text", "author_id", "like_count", "reply_count", "liked"})
}

func TestHusqRepository_LikedProjectionSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHusqRepository(db)
	ctx := context.Background()

	t.Run("authenticated reader binds their id into the EXISTS subquery", func(t *testing.T) {
		mock.ExpectQuery(`SELECT husqs\.\*.*like_count.*reply_count.*EXISTS\(SELECT 1 FROM likes WHERE likes\.husq_id = husqs\.id AND likes\.user_id = \$1\) as liked`).
			WithArgs(int64(7), false, 42, 1).
			WillReturnRows(husqRows().AddRow(42, "hello", 3, 0, 0, true))
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).AddRow(3, "author", "Author"))

		husq, err := repo.GetByID(ctx, 42, 7)
		require.NoError(t, err)
		assert.True(t, husq.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("anonymous reader gets a constant false", func(t *testing.T) {
		mock.ExpectQuery(`SELECT husqs\.\*.*false as liked`).
			WithArgs(false, 42, 1).
			WillReturnRows(husqRows().AddRow(42, "hello", 3, 0, 0, false))
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).AddRow(3, "author", "Author"))

		husq, err := repo.GetByID(ctx, 42, 0)
		require.NoError(t, err)
		assert.False(t, husq.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT husqs\.\*`).
			WillReturnRows(husqRows())

		_, err := repo.GetByID(ctx, 42, 0)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
