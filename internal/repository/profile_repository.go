package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/gym-connect/internal/model"
)

// ProfileRepo manages the role entity rows.  Each role has its own table
// (gyms, trainers, gym_seekers) with an identical shape; the repo picks the
// table from the typed role, decided once at the boundary, so no id is ever
// re-inferred from string shape downstream.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

var profileTables = map[model.Role]string{
	model.RoleGym:       "gyms",
	model.RoleTrainer:   "trainers",
	model.RoleGymSeeker: "gym_seekers",
}

func tableFor(role model.Role) (string, error) {
	t, ok := profileTables[role]
	if !ok {
		return "", fmt.Errorf("no profile table for role %q", role)
	}
	return t, nil
}

// CreateForUser inserts the profile row owned by a freshly registered user
// and returns the new role entity id.
func (r *ProfileRepo) CreateForUser(ctx context.Context, role model.Role, userID uint64, displayName, bio string) (uint64, error) {
	table, err := tableFor(role)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (user_id, display_name, bio) VALUES (?,?,?)", table),
		userID, displayName, bio)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// IDByUser resolves the role entity id owned by an account.  This is the
// lookup the login flow uses to decide what goes into a token's subject.
func (r *ProfileRepo) IDByUser(ctx context.Context, role model.Role, userID uint64) (uint64, error) {
	table, err := tableFor(role)
	if err != nil {
		return 0, err
	}
	var id uint64
	err = r.DB.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE user_id=? LIMIT 1", table),
		userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID fetches a profile by role entity id.
func (r *ProfileRepo) GetByID(ctx context.Context, role model.Role, id uint64) (model.Profile, error) {
	table, err := tableFor(role)
	if err != nil {
		return model.Profile{}, err
	}
	var p model.Profile
	err = r.DB.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id,user_id,display_name,bio,created_at,updated_at FROM %s WHERE id=? LIMIT 1", table),
		id).Scan(&p.ID, &p.UserID, &p.DisplayName, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	p.Role = role
	return p, nil
}

// UpdateBio updates the free-form description of a profile the caller owns.
func (r *ProfileRepo) UpdateBio(ctx context.Context, role model.Role, id uint64, bio string) error {
	table, err := tableFor(role)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET bio=?, updated_at=NOW() WHERE id=?", table),
		bio, id)
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
