package model

import "time"

// Profile is the role entity: the gym, trainer or gym seeker record that owns
// posts and every other application resource.  One exists per user, created in
// the same registration flow that creates the account.  Its id, not the
// account id, is what tokens carry as their subject and what ownership
// checks compare against.
//
// The three roles live in separate tables (gyms, trainers, gym_seekers) but
// share this shape; the repository maps a Role to its table.
type Profile struct {
	ID          uint64    // primary key in the role's table
	UserID      uint64    // owning users.id
	Role        Role      // which table the row came from
	DisplayName string    // public name shown on posts and search
	Bio         string    // free-form description
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
