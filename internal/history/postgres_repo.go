package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var historyColumns = []string{
	"position", "title", "authors", "read_status", "format", "star_rating",
	"isbn", "date_added", "last_date_read", "dates_read",
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Load returns every stored row in export order.
func (r *PostgresRepo) Load(ctx context.Context) ([]Record, error) {
	const query = `
		SELECT title, authors, read_status, format, star_rating, isbn, date_added, last_date_read, dates_read
		FROM reading_history
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.Title, &rec.Authors, &rec.ReadStatus, &rec.Format, &rec.StarRating,
			&rec.Identifier, &rec.DateAdded, &rec.LastDateRead, &rec.DatesRead,
		); err != nil {
			return nil, err
		}
		inUTC(&rec)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// inUTC undoes pgx decoding timestamptz into the local zone, so read
// year and month match what the CSV path produced.
func inUTC(rec *Record) {
	if rec.DateAdded != nil {
		t := rec.DateAdded.UTC()
		rec.DateAdded = &t
	}
	if rec.LastDateRead != nil {
		t := rec.LastDateRead.UTC()
		rec.LastDateRead = &t
	}
}

// ReplaceAll swaps the stored history for records in one transaction.
func (r *PostgresRepo) ReplaceAll(ctx context.Context, records []Record) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM reading_history"); err != nil {
		return 0, fmt.Errorf("clear reading history: %w", err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"reading_history"}, historyColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{
				i, rec.Title, rec.Authors, rec.ReadStatus, rec.Format, rec.StarRating,
				rec.Identifier, rec.DateAdded, rec.LastDateRead, rec.DatesRead,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy reading history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *PostgresRepo) RecordRun(ctx context.Context, run *ImportRun) error {
	const sql = `
		INSERT INTO import_runs (source, started_at, finished_at, status, rows_total, rows_read, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return r.db.QueryRow(ctx, sql,
		run.Source, run.StartedAt, run.FinishedAt, run.Status, run.RowsTotal, run.RowsRead, run.Error,
	).Scan(&run.ID)
}
