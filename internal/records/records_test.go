package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func setupTestStore(t *testing.T) *SQL {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var finishedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func record(difficulty string, won bool, d time.Duration) Record {
	return Record{
		Id:         uuid.New(),
		Difficulty: difficulty,
		Width:      9,
		Height:     9,
		Mines:      10,
		Won:        won,
		Duration:   d,
		FinishedAt: finishedAt,
	}
}

func TestSQLTop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slow := record("easy", true, 90*time.Second)
	fast := record("easy", true, 12*time.Second)
	lost := record("easy", false, time.Second)
	hard := record("hard", true, 40*time.Second)
	for _, r := range []Record{slow, fast, lost, hard} {
		require.NoError(t, s.Save(ctx, r))
	}

	all, err := s.Top(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, fast.Id, all[0].Id)
	assert.Equal(t, hard.Id, all[1].Id)
	assert.Equal(t, slow.Id, all[2].Id)
	assert.Equal(t, 12*time.Second, all[0].Duration)
	assert.True(t, finishedAt.Equal(all[0].FinishedAt), all[0].FinishedAt)
	assert.True(t, all[0].Won)

	easy, err := s.Top(ctx, Filter{Difficulty: "easy", Limit: 1})
	require.NoError(t, err)
	require.Len(t, easy, 1)
	assert.Equal(t, fast.Id, easy[0].Id)

	none, err := s.Top(ctx, Filter{Difficulty: "insane"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLDuplicate(t *testing.T) {
	s := setupTestStore(t)
	r := record("easy", true, time.Second)

	require.NoError(t, s.Save(context.Background(), r))
	assert.ErrorIs(t, s.Save(context.Background(), r), ErrDuplicate)
}

func TestSQLDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS records").
		WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := NewSQL(context.Background(), db)
	require.NoError(t, err)

	boom := errors.New("disk full")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).WillReturnError(boom)
	err = s.Save(context.Background(), record("easy", true, time.Second))
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, difficulty")).
		WithArgs("medium", DefaultLimit).
		WillReturnError(sql.ErrConnDone)
	_, err = s.Top(context.Background(), Filter{Difficulty: "medium"})
	assert.ErrorIs(t, err, sql.ErrConnDone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSQLCreateTableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("read-only"))
	_, err = NewSQL(context.Background(), db)
	assert.ErrorContains(t, err, "read-only")
}

func TestFilterLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, Filter{}.limit())
	assert.Equal(t, DefaultLimit, Filter{Limit: -3}.limit())
	assert.Equal(t, 7, Filter{Limit: 7}.limit())
	assert.Equal(t, MaxLimit, Filter{Limit: 5000}.limit())
}

func TestFromGame(t *testing.T) {
	g := mines.NewGame()
	_, err := FromGame(g)
	assert.ErrorIs(t, err, ErrNotFinished)

	require.NoError(t, g.StartCustom(
		mines.Params{Width: 1, Height: 1, SpawnChance: 1},
		rand.New(rand.NewPCG(1, 2)),
	))
	_, err = FromGame(g)
	assert.ErrorIs(t, err, ErrNotFinished)

	status, err := g.Open(0, 0)
	require.NoError(t, err)
	require.Equal(t, mines.Lost, status)

	r, err := FromGame(g)
	require.NoError(t, err)
	assert.Equal(t, "custom", r.Difficulty)
	assert.Equal(t, 1, r.Width)
	assert.Equal(t, 1, r.Mines)
	assert.False(t, r.Won)
	assert.Equal(t, g.EndedAt, r.FinishedAt)
	assert.NotEqual(t, uuid.Nil, r.Id)
}

type failingDB struct {
	err error
}

func (db failingDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, db.err
}

func (db failingDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, db.err
}

func TestPostgresDuplicate(t *testing.T) {
	p := NewPostgres(failingDB{err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}})
	err := p.Save(context.Background(), record("easy", true, time.Second))
	assert.ErrorIs(t, err, ErrDuplicate)

	p = NewPostgres(failingDB{err: errors.New("conn reset")})
	err = p.Save(context.Background(), record("easy", true, time.Second))
	assert.ErrorContains(t, err, "conn reset")
	assert.NotErrorIs(t, err, ErrDuplicate)

	_, err = p.Top(context.Background(), Filter{})
	assert.ErrorContains(t, err, "conn reset")
}

func TestWhereClause(t *testing.T) {
	where, args := Filter{}.whereClause()
	assert.Equal(t, "won = true", where)
	assert.Equal(t, pgx.NamedArgs{"limit": DefaultLimit}, args)

	where, args = Filter{Difficulty: "hard", Limit: 3}.whereClause()
	assert.Equal(t, "won = true AND difficulty = @difficulty", where)
	assert.Equal(t, pgx.NamedArgs{"limit": 3, "difficulty": "hard"}, args)
}

func TestRecordJSON(t *testing.T) {
	r := record("hard", true, 1500*time.Millisecond)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"duration_ms":1500`)
	assert.Contains(t, string(b), `"id":"`+r.Id.String()+`"`)

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r.Duration, back.Duration)
	assert.Equal(t, r.Id, back.Id)
}
