package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

const tableName = "records"

// SQL is a [Store] over database/sql, written for the sqlite3 driver.
type SQL struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	s, err := NewSQL(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQL(ctx context.Context, db *sql.DB) (*SQL, error) {
	s := &SQL{db: db}
	if err := s.createTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQL) createTable(ctx context.Context) error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id TEXT PRIMARY KEY,
		difficulty TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		mines INTEGER NOT NULL,
		won BOOLEAN NOT NULL,
		duration_ms INTEGER NOT NULL,
		finished_at DATETIME NOT NULL
	);`

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create %s table: %w", tableName, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) Save(ctx context.Context, r Record) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (id, difficulty, width, height, mines, won, duration_ms, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.ExecContext(ctx, insertSQL,
		r.Id.String(),
		r.Difficulty,
		r.Width,
		r.Height,
		r.Mines,
		r.Won,
		r.Duration.Milliseconds(),
		r.FinishedAt.UTC(),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *SQL) Top(ctx context.Context, f Filter) ([]Record, error) {
	where := []string{"won = 1"}
	args := []any{}
	if f.Difficulty != "" {
		where = append(where, "difficulty = ?")
		args = append(args, f.Difficulty)
	}
	args = append(args, f.limit())

	query := `
	SELECT id, difficulty, width, height, mines, won, duration_ms, finished_at
	FROM ` + tableName + `
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY duration_ms ASC, finished_at ASC
	LIMIT ?;`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			r  Record
			ms int64
		)
		err := rows.Scan(
			&r.Id, &r.Difficulty, &r.Width, &r.Height, &r.Mines, &r.Won, &ms, &r.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating records: %w", err)
	}

	return records, nil
}
