package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Postgres struct {
	db DBTX
}

func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

type recordRow struct {
	Id         uuid.UUID `db:"id"`
	Difficulty string    `db:"difficulty"`
	Width      int       `db:"width"`
	Height     int       `db:"height"`
	Mines      int       `db:"mines"`
	Won        bool      `db:"won"`
	DurationMs int64     `db:"duration_ms"`
	FinishedAt time.Time `db:"finished_at"`
}

func (r recordRow) record() Record {
	return Record{
		Id:         r.Id,
		Difficulty: r.Difficulty,
		Width:      r.Width,
		Height:     r.Height,
		Mines:      r.Mines,
		Won:        r.Won,
		Duration:   time.Duration(r.DurationMs) * time.Millisecond,
		FinishedAt: r.FinishedAt,
	}
}

func (p *Postgres) Save(ctx context.Context, r Record) error {
	args := pgx.NamedArgs{
		"id":          r.Id,
		"difficulty":  r.Difficulty,
		"width":       r.Width,
		"height":      r.Height,
		"mines":       r.Mines,
		"won":         r.Won,
		"duration_ms": r.Duration.Milliseconds(),
		"finished_at": r.FinishedAt,
	}
	_, err := p.db.Exec(
		ctx,
		`INSERT INTO record (
			id, difficulty, width, height, mines, won, duration_ms, finished_at
		)
		VALUES (
			@id, @difficulty, @width, @height, @mines, @won, @duration_ms, @finished_at
		);`,
		args,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (f Filter) whereClause() (string, pgx.NamedArgs) {
	clauses := []string{"won = true"}
	args := pgx.NamedArgs{"limit": f.limit()}
	if f.Difficulty != "" {
		clauses = append(clauses, "difficulty = @difficulty")
		args["difficulty"] = f.Difficulty
	}
	return strings.Join(clauses, " AND "), args
}

func (p *Postgres) Top(ctx context.Context, f Filter) ([]Record, error) {
	where, args := f.whereClause()
	rows, err := p.db.Query(
		ctx,
		`SELECT id, difficulty, width, height, mines, won, duration_ms, finished_at
		FROM record
		WHERE `+where+`
		ORDER BY duration_ms ASC, finished_at ASC
		LIMIT @limit`,
		args,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	rs, err := pgx.CollectRows(rows, pgx.RowToStructByName[recordRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect records: %w", err)
	}
	records := make([]Record, len(rs))
	for i, r := range rs {
		records[i] = r.record()
	}
	return records, nil
}
