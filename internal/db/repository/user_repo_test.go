package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
)

func newRepoWithMock(t *testing.T) (dom.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db, logging.NewNop()), mock
}

func userColumns() []string {
	return []string{"id", "name", "email", "created_at", "updated_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("Alice", "alice@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(int64(1), "Alice", "alice@example.com", now, now))

	u := &dom.User{Name: "Alice", Email: "alice@example.com"}
	err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, u.CreatedAt, u.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_EmailTaken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("Bob", "alice@example.com").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &dom.User{Name: "Bob", Email: "alice@example.com"})
	require.ErrorIs(t, err, dom.ErrEmailTaken)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("Bob", "bob@example.com").
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &dom.User{Name: "Bob", Email: "bob@example.com"})
	require.Error(t, err)
	require.NotErrorIs(t, err, dom.ErrEmailTaken)
	require.Contains(t, err.Error(), "insert user")
}

func TestGetById_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(getUserQuery)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(int64(7), "Alice", "alice@example.com", created, updated))

	u, err := repo.GetById(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, created, u.CreatedAt)
	require.Equal(t, updated, u.UpdatedAt)
}

func TestGetById_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(getUserQuery)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetById(context.Background(), 404)
	require.ErrorIs(t, err, dom.ErrNotFound)
}

func TestGetById_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(getUserQuery)).
		WithArgs(int64(7)).
		WillReturnError(errors.New("db down"))

	_, err := repo.GetById(context.Background(), 7)
	require.Error(t, err)
	require.NotErrorIs(t, err, dom.ErrNotFound)
}

func TestList_ReturnsWindowAndTotal(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(2), "B", "b@example.com", base.Add(time.Minute), base.Add(time.Minute)).
		AddRow(int64(1), "A", "a@example.com", base, base)

	mock.ExpectQuery(regexp.QuoteMeta(listUsersQuery)).
		WithArgs(10, 10).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(countUsersQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(15)))

	users, total, err := repo.List(context.Background(), dom.ListFilter{Limit: 10, Offset: 10})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, int64(15), total)
	// created_at DESC ordering is preserved as returned.
	require.True(t, users[0].CreatedAt.After(users[1].CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(listUsersQuery)).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectQuery(regexp.QuoteMeta(countUsersQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	users, total, err := repo.List(context.Background(), dom.ListFilter{Limit: 10, Offset: 0})
	require.NoError(t, err)
	require.Empty(t, users)
	require.Zero(t, total)
}

func TestUpdate_PartialNameKeepsEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	name := "B"
	mock.ExpectQuery(regexp.QuoteMeta(updateUserQuery)).
		WithArgs("B", nil, int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(int64(7), "B", "a@x.com", created, created.Add(time.Hour)))

	u, err := repo.Update(context.Background(), 7, dom.Patch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "B", u.Name)
	require.Equal(t, "a@x.com", u.Email)
	require.True(t, u.UpdatedAt.After(u.CreatedAt))
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	name := "B"
	mock.ExpectQuery(regexp.QuoteMeta(updateUserQuery)).
		WithArgs("B", nil, int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 404, dom.Patch{Name: &name})
	require.ErrorIs(t, err, dom.ErrNotFound)
}

func TestUpdate_EmailTaken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	email := "taken@example.com"
	mock.ExpectQuery(regexp.QuoteMeta(updateUserQuery)).
		WithArgs(nil, "taken@example.com", int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Update(context.Background(), 7, dom.Patch{Email: &email})
	require.ErrorIs(t, err, dom.ErrEmailTaken)
}

func TestDelete_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteUserQuery)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteUserQuery)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), 404), dom.ErrNotFound)
}
