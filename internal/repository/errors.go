// Package repository contains the MySQL persistence layer for accounts,
// role profiles and posts.  Sentinel errors defined here let handlers map
// storage failures to HTTP responses without string matching.
package repository

import "errors"

// ErrEmailExists is returned when registration reuses an email address.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when registration reuses a username.
var ErrUsernameExists = errors.New("username already exists")

// ErrNotFound is returned when a lookup matches no row.  Handlers translate
// it to 404, or to a generic 401 on credential paths.
var ErrNotFound = errors.New("not found")
