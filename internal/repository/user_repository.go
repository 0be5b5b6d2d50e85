package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/gym-connect/internal/model"
	"github.com/iliyamo/gym-connect/internal/utils"
)

// UserRepo persists identity roots: the `users` table rows created once at
// registration.  It doubles as the account resolver consumed by the login
// flow, returning everything credential verification needs in one read.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a hashed password and a pending verification
// token, returning the new account id.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, role model.Role, cost int, verifyToken string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role, verified, verified_token) VALUES (?,?,?,?,0,?)",
		username, email, hash, role.String(), verifyToken)
	if err != nil {
		// MySQL 1062 = duplicate entry; the index name tells us which unique
		// constraint tripped.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "username") {
				return 0, ErrUsernameExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx,
		"SELECT id,username,email,password_hash,role,verified,COALESCE(verified_token,''),created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,username,email,password_hash,role,verified,COALESCE(verified_token,''),created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id)
}

// VerifyByToken marks the account holding the given verification token as
// verified and clears the token.  ErrNotFound means the token matched no
// pending account.
func (r *UserRepo) VerifyByToken(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET verified=1, verified_token=NULL, updated_at=NOW() WHERE verified_token=? AND verified=0",
		token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var (
		u       model.User
		rawRole string
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &rawRole,
		&u.Verified, &u.VerifiedToken, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return model.User{}, err
	}
	u.Role = role
	return u, nil
}
