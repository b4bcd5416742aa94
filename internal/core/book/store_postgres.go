package book

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

func bookSelectColumns() string {
	t := schema.CoreBook
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.AuthorID, t.Title, t.Slug, t.Description, t.Genre, t.Language,
		t.ISBN, t.Publisher, t.TotalPages, t.CoverImageURL, t.FileURL,
		t.FileSize, t.FileType, t.IsPublished, t.PublishedAt, t.ReadCount,
		t.CreatedAt, t.UpdatedAt,
	)
}

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(
		&b.ID, &b.AuthorID, &b.Title, &b.Slug, &b.Description, &b.Genre,
		&b.Language, &b.ISBN, &b.Publisher, &b.TotalPages, &b.CoverImageURL,
		&b.FileURL, &b.FileSize, &b.FileType, &b.IsPublished, &b.PublishedAt,
		&b.ReadCount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBook inserts the book and bumps the author's total_books within one
// transaction so the counter can never drift.
func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	t := schema.CoreBook
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 0, NOW(), NOW())
		RETURNING %s, %s`,
		t.Table,
		t.ID, t.AuthorID, t.Title, t.Slug, t.Description, t.Genre, t.Language,
		t.ISBN, t.Publisher, t.TotalPages, t.CoverImageURL, t.FileURL,
		t.FileSize, t.FileType, t.IsPublished, t.PublishedAt, t.ReadCount,
		t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	a := schema.CoreAuthor
	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + 1, %s = NOW() WHERE %s = $1`,
		a.Table, a.TotalBooks, a.TotalBooks, a.UpdatedAt, a.ID,
	)

	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(context, insertQuery,
			b.ID, b.AuthorID, b.Title, b.Slug, b.Description, b.Genre,
			b.Language, b.ISBN, b.Publisher, b.TotalPages, b.CoverImageURL,
			b.FileURL, b.FileSize, b.FileType, b.IsPublished, b.PublishedAt,
		).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
			return err
		}

		_, err := tx.Exec(context, counterQuery, b.AuthorID)
		return err
	})

	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) GetBook(context context.Context, id string) (*Book, error) {
	t := schema.CoreBook
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, bookSelectColumns(), t.Table, t.ID)

	b, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return b, nil
}

func (repository *PostgresRepository) TitleExists(context context.Context, authorID, title, excludeID string) (bool, error) {
	t := schema.CoreBook
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s != $3)`,
		t.Table, t.AuthorID, t.Title, t.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, authorID, title, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "book_title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	t := schema.CoreBook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15,
			%s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		t.Table,
		t.Title, t.Slug, t.Description, t.Genre, t.Language, t.ISBN, t.Publisher,
		t.TotalPages, t.CoverImageURL, t.FileURL, t.FileSize, t.FileType,
		t.IsPublished, t.PublishedAt,
		t.UpdatedAt, t.ID, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.Title, b.Slug, b.Description, b.Genre, b.Language, b.ISBN,
		b.Publisher, b.TotalPages, b.CoverImageURL, b.FileURL, b.FileSize,
		b.FileType, b.IsPublished, b.PublishedAt,
	).Scan(&b.UpdatedAt)
	return dberr.Wrap(err, "update_book")
}

// DeleteBook removes the book row (progress rows cascade via FK) and
// decrements the author's total_books counter, floored at zero.
func (repository *PostgresRepository) DeleteBook(context context.Context, id, authorID string) error {
	t := schema.CoreBook
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	a := schema.CoreAuthor
	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = GREATEST(%s - 1, 0), %s = NOW() WHERE %s = $1`,
		a.Table, a.TotalBooks, a.TotalBooks, a.UpdatedAt, a.ID,
	)

	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(context, deleteQuery, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		_, err = tx.Exec(context, counterQuery, authorID)
		return err
	})

	return dberr.Wrap(err, "delete_book")
}

func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	t := schema.CoreBook
	where := " WHERE 1=1"
	args := []any{}

	if f.PublishedOnly {
		where += fmt.Sprintf(" AND %s = TRUE", t.IsPublished)
	}
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		where += fmt.Sprintf(" AND %s = $%d", t.AuthorID, len(args))
	}
	if f.Genre != "" {
		args = append(args, "%"+f.Genre+"%")
		where += fmt.Sprintf(" AND %s ILIKE $%d", t.Genre, len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			t.Title, n, t.Description, n, t.Genre, n,
		)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, t.Table) + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, bookSelectColumns(), t.Table) + where
	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", t.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}
