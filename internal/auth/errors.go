// Package auth implements session-backed JWT authentication: RSA key
// material loaded once at startup, a stateless token codec, a Redis session
// store that is the authoritative liveness signal for every issued token,
// and the gate that orchestrates login, per-request authentication and
// logout.  A token is honored only when BOTH its signature/claims check out
// AND a live session record exists for its token id; deleting the record is
// the only way to revoke a token before its natural expiry.
package auth

import "errors"

// The four ways authentication can fail.  Handlers collapse all of them into
// a single generic "unauthenticated" response so the external signal never
// reveals whether the token, the session or the store probe failed.  Wrapped
// errors carry detail for server logs; match with errors.Is.
var (
	// ErrNoCredential means no token was presented at all (no cookie, no
	// Authorization header).
	ErrNoCredential = errors.New("no credential presented")

	// ErrTokenInvalid covers bad signatures, malformed payloads, expired or
	// not-yet-valid claims, and a subject that disagrees with the session
	// record.  Callers must not distinguish these cases to the end user.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionRevoked means the token id has no live session record: the
	// session was logged out or its TTL lapsed.
	ErrSessionRevoked = errors.New("session revoked or expired")

	// ErrStoreUnavailable means the session store could not be reached.  It
	// is terminal for the request; retrying is the operator's concern.
	ErrStoreUnavailable = errors.New("session store unavailable")
)
