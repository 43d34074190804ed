package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/dbx"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
	"github.com/dmitrijs2005/userdirectory/internal/timex"
)

// MailConstraint is the name of the UNIQUE constraint on users.mail.
const MailConstraint = "users_mail_key"

const selectColumns = `SELECT id, mail, first_name, last_name, birth_date, address, tel FROM users`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	query := selectColumns + `
		 ORDER BY id`

	return r.queryUsers(ctx, query)
}

func (r *PostgresRepository) FindByBirthDateRange(ctx context.Context, from, to timex.Date) ([]*models.User, error) {
	query := selectColumns + `
		 WHERE $1 <= birth_date AND birth_date < $2
		 ORDER BY id`

	return r.queryUsers(ctx, query, from, to)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := selectColumns + `
		 WHERE id = $1`

	return r.queryUser(ctx, query, id)
}

func (r *PostgresRepository) FindByMail(ctx context.Context, mail string) (*models.User, error) {
	query := selectColumns + `
		 WHERE mail = $1`

	return r.queryUser(ctx, query, mail)
}

func (r *PostgresRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	saved := user.Clone()

	var err error
	if saved.HasID() {
		err = r.update(ctx, saved)
	} else {
		err = r.insert(ctx, saved)
	}
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) insert(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (mail, first_name, last_name, birth_date, address, tel)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Mail, user.FirstName, user.LastName, user.BirthDate, user.Address, user.Tel).Scan(&user.ID)

	return mapWriteError(err)
}

func (r *PostgresRepository) update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET mail = $2, first_name = $3, last_name = $4, birth_date = $5, address = $6, tel = $7
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Mail, user.FirstName, user.LastName, user.BirthDate, user.Address, user.Tel)
	if err != nil {
		return mapWriteError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) queryUser(ctx context.Context, query string, args ...any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Mail, &user.FirstName, &user.LastName, &user.BirthDate, &user.Address, &user.Tel)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case dbx.IsUniqueViolation(err, MailConstraint):
		return common.ErrDuplicateMail
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
