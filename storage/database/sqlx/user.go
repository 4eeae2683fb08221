package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kozi/core"
	"github.com/trezcool/kozi/core/user"
)

type dbUser struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	Username            string    `db:"username"`
	Email               string    `db:"email"`
	IsActive            bool      `db:"is_active"`
	PasswordHash        []byte    `db:"password_hash"`
	CertificateEligible bool      `db:"certificate_eligible"`
	CourseCompletedAt   null.Time `db:"course_completed_at"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
	LastLogin           null.Time `db:"last_login"`
}

func (du dbUser) toUser() user.User {
	return user.User{
		ID:                  du.ID,
		Name:                du.Name,
		Username:            du.Username,
		Email:               du.Email,
		IsActive:            du.IsActive,
		PasswordHash:        du.PasswordHash,
		CertificateEligible: du.CertificateEligible,
		CourseCompletedAt:   du.CourseCompletedAt,
		CreatedAt:           du.CreatedAt,
		UpdatedAt:           du.UpdatedAt,
		LastLogin:           du.LastLogin,
	}
}

type userRepository struct {
	db core.DBExecutor
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db core.DBExecutor) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	query := `SELECT username, email FROM users WHERE (username = ? OR email = ?)`
	args := []interface{}{username, email}

	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		query += ` AND id NOT IN (?)`
		args = append(args, ids)
	}

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var matches []dbUser
	if err = repo.db.SelectContext(ctx, &matches, query, args...); err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	for _, m := range matches {
		if m.Username == username {
			return user.ErrUsernameExists
		}
		if m.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
INSERT INTO users (id, name, username, email, is_active, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(
		ctx, query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.IsActive, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	query := `
SELECT id, name, username, email, is_active, password_hash,
       certificate_eligible, course_completed_at, created_at, updated_at, last_login
FROM users`
	conds, args := buildUserConds(filter)
	if len(conds) == 0 {
		return user.User{}, errors.New("no filter provided")
	}
	query += " WHERE " + strings.Join(conds, " AND ")

	var du dbUser
	if err := repo.db.GetContext(ctx, &du, query, args...); err != nil {
		return user.User{}, trapNoRowsErr(err, "getting user")
	}
	return du.toUser(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
UPDATE users
SET name = $2, username = $3, email = $4, is_active = $5, password_hash = $6,
    updated_at = $7, last_login = $8
WHERE id = $1`
	res, err := repo.db.ExecContext(
		ctx, query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.IsActive, usr.PasswordHash, usr.UpdatedAt, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUser(ctx, user.GetFilter{ID: usr.ID})
}

func (repo *userRepository) MarkCertificateEligible(ctx context.Context, userID string, completedAt time.Time) error {
	// one-way flip; the guard keeps the first completion timestamp
	query := `
UPDATE users
SET certificate_eligible = TRUE,
    course_completed_at  = COALESCE(course_completed_at, $2)
WHERE id = $1 AND NOT certificate_eligible`
	res, err := repo.db.ExecContext(ctx, query, userID, completedAt)
	if err != nil {
		return errors.Wrap(err, "marking certificate eligibility")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// already eligible or unknown user; tell them apart
		if _, err = repo.GetUser(ctx, user.GetFilter{ID: userID}); err != nil {
			return err
		}
	}
	return nil
}

func buildUserConds(filter user.GetFilter) ([]string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.ID != "" {
		conds = append(conds, "id = "+arg(filter.ID))
	}
	if filter.Username != "" {
		conds = append(conds, "username = "+arg(filter.Username))
	}
	if filter.Email != "" {
		conds = append(conds, "email = "+arg(filter.Email))
	}
	if filter.UsernameOrEmail != "" {
		v := arg(filter.UsernameOrEmail)
		conds = append(conds, "(username = "+v+" OR email = "+v+")")
	}
	return conds, args
}

func trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}
