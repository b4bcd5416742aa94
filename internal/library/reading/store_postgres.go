package reading

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func progressSelectColumns(prefix string) string {
	t := schema.LibraryReadingProgress
	columns := ""
	for i, column := range t.Columns() {
		if i > 0 {
			columns += ", "
		}
		columns += prefix + column
	}
	return columns
}

func scanProgress(row pgx.Row) (*ReadingProgress, error) {
	progress := &ReadingProgress{}
	err := row.Scan(
		&progress.ID, &progress.UserID, &progress.BookID,
		&progress.CurrentPage, &progress.TotalPages, &progress.Status,
		&progress.ReadingTimeMinutes, &progress.StartedAt, &progress.LastReadAt,
		&progress.CompletedAt, &progress.CreatedAt, &progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// Start inserts the progress row and bumps the book's read count and the
// author's total reads in one transaction. The unique (userid, bookid)
// constraint turns a concurrent double-start into a Conflict.
func (repository *PostgresRepository) Start(context context.Context, progress *ReadingProgress) error {
	t := schema.LibraryReadingProgress
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NULL, NULL, NOW(), NOW())
		RETURNING %s, %s, %s`,
		t.Table, t.ID, t.UserID, t.BookID, t.CurrentPage, t.TotalPages,
		t.Status, t.ReadingTimeMinutes, t.StartedAt, t.LastReadAt,
		t.CompletedAt, t.CreatedAt, t.UpdatedAt,
		t.StartedAt, t.CreatedAt, t.UpdatedAt,
	)

	b := schema.CoreBook
	readCountQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		b.Table, b.ReadCount, b.ReadCount, b.ID,
	)

	a := schema.CoreAuthor
	totalReadsQuery := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1
		WHERE %s = (SELECT %s FROM %s WHERE %s = $1)`,
		a.Table, a.TotalReads, a.TotalReads,
		a.ID, b.AuthorID, b.Table, b.ID,
	)

	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(context, insertQuery,
			progress.ID, progress.UserID, progress.BookID,
			progress.CurrentPage, progress.TotalPages, progress.Status,
			progress.ReadingTimeMinutes,
		).Scan(&progress.StartedAt, &progress.CreatedAt, &progress.UpdatedAt); err != nil {
			return err
		}

		if _, err := tx.Exec(context, readCountQuery, progress.BookID); err != nil {
			return err
		}

		_, err := tx.Exec(context, totalReadsQuery, progress.BookID)
		return err
	})

	return dberr.Wrap(err, "start_reading")
}

func (repository *PostgresRepository) Find(context context.Context, userID, bookID string) (*ReadingProgress, error) {
	t := schema.LibraryReadingProgress
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		progressSelectColumns(""), t.Table, t.UserID, t.BookID,
	)

	progress, err := scanProgress(repository.db.QueryRow(context, query, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_reading_progress")
	}
	return progress, nil
}

func (repository *PostgresRepository) Update(context context.Context, progress *ReadingProgress) error {
	t := schema.LibraryReadingProgress
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s`,
		t.Table, t.CurrentPage, t.Status, t.ReadingTimeMinutes,
		t.StartedAt, t.LastReadAt, t.CompletedAt, t.UpdatedAt,
		t.UserID, t.BookID, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		progress.UserID, progress.BookID,
		progress.CurrentPage, progress.Status, progress.ReadingTimeMinutes,
		progress.StartedAt, progress.LastReadAt, progress.CompletedAt,
	).Scan(&progress.UpdatedAt)
	return dberr.Wrap(err, "update_reading_progress")
}

// Delete removes the progress row only. Read counts are historical and stay.
func (repository *PostgresRepository) Delete(context context.Context, userID, bookID string) error {
	t := schema.LibraryReadingProgress
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, t.Table, t.UserID, t.BookID)

	cmd, err := repository.db.Exec(context, query, userID, bookID)
	if err != nil {
		return dberr.Wrap(err, "delete_reading_progress")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_reading_progress")
	}
	return nil
}

func (repository *PostgresRepository) CurrentlyReading(context context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	t := schema.LibraryReadingProgress
	whereClause := fmt.Sprintf("p.%s = $1 AND p.%s != $2", t.UserID, t.Status)
	orderClause := fmt.Sprintf("p.%s DESC NULLS LAST", t.LastReadAt)

	return repository.listEntries(context, whereClause, orderClause, []any{userID, StatusCompleted}, limit, offset)
}

func (repository *PostgresRepository) History(context context.Context, userID, status string, limit, offset int) ([]*Entry, int, error) {
	t := schema.LibraryReadingProgress
	whereClause := fmt.Sprintf("p.%s = $1", t.UserID)
	args := []any{userID}

	if status != "" {
		whereClause += fmt.Sprintf(" AND p.%s = $2", t.Status)
		args = append(args, status)
	}

	orderClause := fmt.Sprintf("p.%s DESC", t.UpdatedAt)
	return repository.listEntries(context, whereClause, orderClause, args, limit, offset)
}

// listEntries runs the shared progress/book/author join behind both list views.
func (repository *PostgresRepository) listEntries(context context.Context, whereClause, orderClause string, args []any, limit, offset int) ([]*Entry, int, error) {
	t := schema.LibraryReadingProgress
	b := schema.CoreBook
	a := schema.CoreAuthor

	fromClause := fmt.Sprintf(`
		FROM %s p
		JOIN %s b ON b.%s = p.%s
		JOIN %s a ON a.%s = b.%s
		WHERE %s`,
		t.Table, b.Table, b.ID, t.BookID, a.Table, a.ID, b.AuthorID, whereClause,
	)

	countQuery := "SELECT count(*) " + fromClause

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reading_entries")
	}

	query := fmt.Sprintf(`SELECT %s, b.%s, a.%s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		progressSelectColumns("p."), b.Title, a.PenName,
		fromClause, orderClause, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reading_entries")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		progress := &ReadingProgress{}
		entry := &Entry{Progress: progress}
		err := rows.Scan(
			&progress.ID, &progress.UserID, &progress.BookID,
			&progress.CurrentPage, &progress.TotalPages, &progress.Status,
			&progress.ReadingTimeMinutes, &progress.StartedAt, &progress.LastReadAt,
			&progress.CompletedAt, &progress.CreatedAt, &progress.UpdatedAt,
			&entry.BookTitle, &entry.AuthorName,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_reading_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) BookStats(context context.Context, bookID string) (*BookStats, error) {
	t := schema.LibraryReadingProgress
	query := fmt.Sprintf(`
		SELECT
			count(*),
			count(*) FILTER (WHERE %s = $2),
			count(*) FILTER (WHERE %s != $2)
		FROM %s
		WHERE %s = $1`,
		t.Status, t.Status, t.Table, t.BookID,
	)

	stats := &BookStats{}
	err := repository.db.QueryRow(context, query, bookID, StatusCompleted).Scan(
		&stats.TotalReaders, &stats.CompletedReaders, &stats.CurrentlyReading,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "book_reading_stats")
	}
	return stats, nil
}
