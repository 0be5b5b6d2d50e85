package model

import "time"

// Post is a feed entry authored by a profile.  AuthorID references the role
// entity (gym/trainer/gym_seeker row), not the account.
type Post struct {
	ID         uint64    // posts.id
	AuthorID   uint64    // posts.author_id -> profile id
	AuthorRole Role      // posts.author_role
	Content    string    // posts.content
	CreatedAt  time.Time // posts.created_at
}
