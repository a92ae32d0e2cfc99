package collections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestAdd(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^INSERT INTO collections \(user_id, item_id\) VALUES \(\$1, \$2\) ON CONFLICT \(user_id, item_id\) DO NOTHING$`
	mock.ExpectExec(q).WithArgs("u1", "i1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("u1", "i1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("u1", "i2").WillReturnError(errors.New("fk"))

	added, err := repo.Add(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = repo.Add(context.Background(), "u1", "i2")
	assert.ErrorContains(t, err, "db error: fk")
}

func TestRemove(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `^DELETE FROM collections WHERE user_id = \$1 AND item_id = \$2$`
	mock.ExpectExec(q).WithArgs("u1", "i1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("u1", "i1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("u1", "foo").WillReturnError(&pgconn.PgError{Code: "22P02"})

	removed, err := repo.Remove(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.Remove(context.Background(), "u1", "foo")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^SELECT v\.id, .* FROM collections c JOIN vault_items v ON v\.id = c\.item_id WHERE c\.user_id = \$1 ORDER BY c\.added_at DESC$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject", "brand", "title", "slug", "category", "year", "tags",
			"stitch_type", "origin", "image_key", "verification_count", "score", "contributor_id", "created_at"}).
			AddRow("i1", "Misfits", "", "", "misfits", "Band", "1982", "punk,horror", "single", "USA", "items/i1.jpg", 3, 5, "u2", now).
			AddRow("i2", "Sonic Youth", "", "", "sonic-youth", "Band", "1990", "", "", "", nil, 0, 0, "u3", now))

	items, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"punk", "horror"}, items[0].Tags)
	require.NotNil(t, items[0].ImageKey)
	assert.Nil(t, items[1].ImageKey)
	assert.Equal(t, []string{}, items[1].Tags)
}
