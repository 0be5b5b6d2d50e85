package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/gym-connect/internal/model"
)

// Identity is the request-scoped result of a successful authentication.  It
// is attached to the request context by the middleware, consumed by business
// handlers, and discarded at end of request; it is never persisted.
type Identity struct {
	RoleEntityID string     // profile id; what ownership checks use
	TokenID      string     // id of the access token backing this request
	Role         model.Role // gym | trainer | gym_seeker
	MainUserID   string     // account id
}

// TokenPair is what a successful login hands back to the transport layer.
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}

// Gate orchestrates the authentication flows.  It holds no per-request
// state; every operation is an independent pass over the codec (CPU-only)
// and the session store (the single suspension point).  Failures are
// terminal for the request: the gate has no fallback credential source and
// never retries.
type Gate struct {
	codec      *Codec
	store      *SessionStore
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewGate wires the codec and store with the canonical per-class lifetimes.
// Each TTL value is used for both the token's exp claim and its session
// record, so the record can never outlive or undercut the token's own
// expiry window.
func NewGate(codec *Codec, store *SessionStore, accessTTL, refreshTTL time.Duration) *Gate {
	return &Gate{codec: codec, store: store, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL reports the access token lifetime, for cookie max-age.
func (g *Gate) AccessTTL() time.Duration { return g.accessTTL }

// RefreshTTL reports the refresh token lifetime, for cookie max-age.
func (g *Gate) RefreshTTL() time.Duration { return g.refreshTTL }

// Login issues an access/refresh pair for an already-verified credential and
// records both token ids in the session store.  Credential checking and
// profile resolution happen upstream; the gate only mints and registers
// tokens.
func (g *Gate) Login(ctx context.Context, roleEntityID, mainUserID string, role model.Role) (TokenPair, error) {
	access, err := g.codec.Issue(ClassAccess, roleEntityID, mainUserID, role, g.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := g.codec.Issue(ClassRefresh, roleEntityID, mainUserID, role, g.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	if err := g.store.Put(ctx, access.TokenID, roleEntityID, g.accessTTL); err != nil {
		return TokenPair{}, err
	}
	if err := g.store.Put(ctx, refresh.TokenID, roleEntityID, g.refreshTTL); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Authenticate gates every protected request.  It verifies the access token
// cryptographically, then requires a live session record whose value matches
// the token's subject.  A mismatch is treated as tampering and reported as
// an invalid token, never silently reconciled.  On any failure no partial
// identity is returned.
func (g *Gate) Authenticate(ctx context.Context, raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrNoCredential
	}
	claims, err := g.codec.Verify(ClassAccess, raw)
	if err != nil {
		return Identity{}, err
	}
	stored, err := g.store.Get(ctx, claims.TokenID)
	if err != nil {
		return Identity{}, err
	}
	if stored != claims.Subject {
		return Identity{}, fmt.Errorf("%w: session record does not match token subject", ErrTokenInvalid)
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return Identity{
		RoleEntityID: claims.Subject,
		TokenID:      claims.TokenID,
		Role:         role,
		MainUserID:   claims.MainUserID,
	}, nil
}

// Refresh exchanges a live refresh token for a fresh access token.  The
// refresh token itself is not rotated; it keeps its session record until
// logout or expiry.
func (g *Gate) Refresh(ctx context.Context, rawRefresh string) (IssuedToken, error) {
	if rawRefresh == "" {
		return IssuedToken{}, ErrNoCredential
	}
	claims, err := g.codec.Verify(ClassRefresh, rawRefresh)
	if err != nil {
		return IssuedToken{}, err
	}
	stored, err := g.store.Get(ctx, claims.TokenID)
	if err != nil {
		return IssuedToken{}, err
	}
	if stored != claims.Subject {
		return IssuedToken{}, fmt.Errorf("%w: session record does not match token subject", ErrTokenInvalid)
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	access, err := g.codec.Issue(ClassAccess, claims.Subject, claims.MainUserID, role, g.accessTTL)
	if err != nil {
		return IssuedToken{}, err
	}
	if err := g.store.Put(ctx, access.TokenID, claims.Subject, g.accessTTL); err != nil {
		return IssuedToken{}, err
	}
	return access, nil
}

// Logout revokes a session: it verifies the refresh token's signature (the
// access token was already vetted by the gating middleware that produced
// accessTokenID) and deletes both session records.  Records that are already
// gone are fine; calling Logout twice with the same tokens succeeds.
func (g *Gate) Logout(ctx context.Context, accessTokenID, rawRefresh string) error {
	if rawRefresh == "" {
		return ErrNoCredential
	}
	claims, err := g.codec.Verify(ClassRefresh, rawRefresh)
	if err != nil {
		return err
	}
	if err := g.store.Delete(ctx, claims.TokenID); err != nil {
		return err
	}
	return g.store.Delete(ctx, accessTokenID)
}
