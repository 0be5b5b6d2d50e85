package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-connect/internal/model"
)

// PostRepo persists feed posts.  Authors are role entities, so ownership
// checks compare against the profile id carried in the token subject.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a post and returns its id.
func (r *PostRepo) Create(ctx context.Context, authorID uint64, authorRole model.Role, content string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (author_id, author_role, content) VALUES (?,?,?)",
		authorID, authorRole.String(), content)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Feed returns the newest posts across all authors, paginated.
func (r *PostRepo) Feed(ctx context.Context, limit, offset int) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,author_id,author_role,content,created_at FROM posts ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// ListByAuthor returns a single profile's posts, newest first.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uint64, authorRole model.Role) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,author_id,author_role,content,created_at FROM posts WHERE author_id=? AND author_role=? ORDER BY created_at DESC, id DESC",
		authorID, authorRole.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// Delete removes a post if the caller owns it.
func (r *PostRepo) Delete(ctx context.Context, id, authorID uint64, authorRole model.Role) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM posts WHERE id=? AND author_id=? AND author_role=?",
		id, authorID, authorRole.String())
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

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	posts := []model.Post{}
	for rows.Next() {
		var (
			p       model.Post
			rawRole string
		)
		if err := rows.Scan(&p.ID, &p.AuthorID, &rawRole, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		role, err := model.ParseRole(rawRole)
		if err != nil {
			// A row with an unknown role is data corruption, not a request error.
			return nil, err
		}
		p.AuthorRole = role
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return posts, nil
}
