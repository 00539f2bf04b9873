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

var itemColumns = []string{"id", "name", "price", "image_path", "brand", "is_new", "created_at", "updated_at"}

func TestItemRepo_FindAll(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewItemGormRepository(gdb)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "items" ORDER BY id$`).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(1, "keyboard", 120000, nil, "devmarket", true, now, now).
			AddRow(2, "mouse", 30000, "https://cdn.example/2.png", "devmarket", false, now, now))

	items, err := r.FindAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].IsNew)
	require.NotNil(t, items[1].ImagePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// isNew指定でWHEREが付く
func TestItemRepo_FindAll_IsNew(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewItemGormRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "items" WHERE is_new = \$1 ORDER BY id`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(itemColumns))

	isNew := false
	items, err := r.FindAll(context.Background(), &isNew)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_FindByID_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewItemGormRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "items" WHERE id = \$1 LIMIT`).
		WillReturnRows(sqlmock.NewRows(itemColumns))

	_, err := r.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, repo.ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
