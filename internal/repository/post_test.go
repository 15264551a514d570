package repository

import (
	"context"
	"regexp"
	"testing"

	"devconnector/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Like_Inserted(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Like(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Like_AlreadyLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	// ON CONFLICT DO NOTHING reports zero affected rows for a duplicate.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Like(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.Unlike(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostRepository_Unlike_NotLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.Unlike(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts"`)).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), 404)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
