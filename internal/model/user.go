package model

import "time"

// User represents a row in the `users` table: the durable account created
// once at registration and tied to the login credential.  Resource ownership
// does not hang off this id; see Profile for the role entity that owns
// application data.
//
// Fields:
//  ID            – primary key; the identity root carried in token claims as main_user_id.
//  Username      – unique display handle.
//  Email         – unique email address used to log in.
//  PasswordHash  – bcrypt hashed password.
//  Role          – which profile table this account maps to; fixed at registration.
//  Verified      – whether the email verification link has been followed.
//  VerifiedToken – outstanding email verification token; empty once verified.
type User struct {
	ID            uint64    // users.id
	Username      string    // users.username
	Email         string    // users.email
	PasswordHash  string    // users.password_hash
	Role          Role      // users.role
	Verified      bool      // users.verified
	VerifiedToken string    // users.verified_token
	CreatedAt     time.Time // users.created_at
	UpdatedAt     time.Time // users.updated_at
}
