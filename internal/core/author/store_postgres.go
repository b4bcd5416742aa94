package author

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

func authorSelectColumns() string {
	t := schema.CoreAuthor
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.UserID, t.PenName, t.Bio, t.Website, t.SocialLinks,
		t.TotalBooks, t.TotalReads, t.CreatedAt, t.UpdatedAt,
	)
}

func scanAuthor(row pgx.Row) (*Author, error) {
	a := &Author{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.PenName, &a.Bio, &a.Website, &a.SocialLinks,
		&a.TotalBooks, &a.TotalReads, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateProfile inserts the author row and flips users.account.isauthor
// inside one transaction so the flag can never drift from profile existence.
func (repository *PostgresRepository) CreateProfile(context context.Context, a *Author) error {
	t := schema.CoreAuthor
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, NOW(), NOW())
		RETURNING %s, %s`,
		t.Table, t.ID, t.UserID, t.PenName, t.Bio, t.Website, t.SocialLinks,
		t.TotalBooks, t.TotalReads, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	u := schema.UserAccount
	flagQuery := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1`,
		u.Table, u.IsAuthor, u.UpdatedAt, u.ID,
	)

	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(context, insertQuery,
			a.ID, a.UserID, a.PenName, a.Bio, a.Website, a.SocialLinks,
		).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}

		cmd, err := tx.Exec(context, flagQuery, a.UserID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})

	return dberr.Wrap(err, "create_author_profile")
}

func (repository *PostgresRepository) GetAuthor(context context.Context, id string) (*Author, error) {
	t := schema.CoreAuthor
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, authorSelectColumns(), t.Table, t.ID)

	a, err := scanAuthor(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}
	return a, nil
}

func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Author, error) {
	t := schema.CoreAuthor
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, authorSelectColumns(), t.Table, t.UserID)

	a, err := scanAuthor(repository.db.QueryRow(context, query, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_author_by_user")
	}
	return a, nil
}

func (repository *PostgresRepository) ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	t := schema.CoreAuthor
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, authorSelectColumns(), t.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE 1=1`, t.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := fmt.Sprintf(" AND %s ILIKE $1", t.PenName)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", t.PenName, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, a *Author) error {
	t := schema.CoreAuthor
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		t.Table, t.PenName, t.Bio, t.Website, t.SocialLinks, t.UpdatedAt,
		t.ID, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.ID, a.PenName, a.Bio, a.Website, a.SocialLinks).Scan(&a.UpdatedAt)
	return dberr.Wrap(err, "update_author")
}
