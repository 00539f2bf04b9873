package repository

import (
	"context"
	"testing"
	"time"

	repo "devmarket/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rtColumns = []string{"id", "user_id", "token_hash", "expires_at", "created_at", "updated_at"}

func TestRefreshTokenRepo_FindByUserID_Found(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRefreshTokenRepository(gdb)

	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(rtColumns).AddRow(1, 7, "hash", exp, exp, exp))

	tok, err := r.FindByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), tok.UserID)
	assert.Equal(t, "hash", tok.TokenHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepo_FindByUserID_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRefreshTokenRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(rtColumns))

	_, err := r.FindByUserID(context.Background(), 7)
	assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 行ロックが付く
func TestRefreshTokenRepo_FindByUserIDForUpdate(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRefreshTokenRepository(gdb)

	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE user_id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(rtColumns).AddRow(1, 7, "hash", exp, exp, exp))

	_, err := r.FindByUserIDForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// user_id衝突時は上書き
func TestRefreshTokenRepo_Upsert(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRefreshTokenRepository(gdb)

	mock.ExpectQuery(`INSERT INTO "refresh_tokens" .* ON CONFLICT \("user_id"\) DO UPDATE SET .*"token_hash"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := r.Upsert(context.Background(), 7, "new-hash", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 0件でもエラーにならない
func TestRefreshTokenRepo_DeleteByUserID_Idempotent(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRefreshTokenRepository(gdb)

	mock.ExpectExec(`DELETE FROM "refresh_tokens" WHERE user_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, r.DeleteByUserID(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
