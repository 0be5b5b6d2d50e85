package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/gym-connect/internal/model"
)

func newTestGate(t *testing.T) (*Gate, *Codec, *miniredis.Miniredis) {
	t.Helper()
	codec := newTestCodec(t)
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	gate := NewGate(codec, NewSessionStore(rdb), 60*time.Minute, 24*time.Hour)
	return gate, codec, mr
}

func TestLoginThenAuthenticate(t *testing.T) {
	gate, _, _ := newTestGate(t)
	ctx := context.Background()

	pair, err := gate.Login(ctx, "gym-42", "user-7", model.RoleGym)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.Access.TokenID == pair.Refresh.TokenID {
		t.Fatal("access and refresh share a token id")
	}

	id, err := gate.Authenticate(ctx, pair.Access.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if id.RoleEntityID != "gym-42" || id.MainUserID != "user-7" || id.Role != model.RoleGym {
		t.Fatalf("identity = %+v", id)
	}
	if id.TokenID != pair.Access.TokenID {
		t.Fatalf("identity token id = %q, want %q", id.TokenID, pair.Access.TokenID)
	}
}

func TestAuthenticateNoCredential(t *testing.T) {
	gate, _, _ := newTestGate(t)
	if _, err := gate.Authenticate(context.Background(), ""); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("authenticate empty = %v, want ErrNoCredential", err)
	}
}

func TestAuthenticateNeverStored(t *testing.T) {
	gate, codec, _ := newTestGate(t)

	// Correctly signed and unexpired, but no session record was ever written.
	issued, err := codec.Issue(ClassAccess, "gym-1", "user-1", model.RoleGym, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := gate.Authenticate(context.Background(), issued.Token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("authenticate = %v, want ErrSessionRevoked", err)
	}
}

func TestAuthenticateAfterLogout(t *testing.T) {
	gate, _, _ := newTestGate(t)
	ctx := context.Background()

	pair, err := gate.Login(ctx, "trainer-3", "user-2", model.RoleTrainer)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := gate.Logout(ctx, pair.Access.TokenID, pair.Refresh.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// The access token's own exp has not passed; revocation must win anyway.
	if _, err := gate.Authenticate(ctx, pair.Access.Token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("authenticate after logout = %v, want ErrSessionRevoked", err)
	}

	// Second logout with the same tokens is a no-op, not an error.
	if err := gate.Logout(ctx, pair.Access.TokenID, pair.Refresh.Token); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
}

func TestAuthenticateSubjectMismatch(t *testing.T) {
	gate, _, mr := newTestGate(t)
	ctx := context.Background()

	pair, err := gate.Login(ctx, "gym-42", "user-7", model.RoleGym)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	// Corrupt the session record; the gate must treat this as tampering.
	if err := mr.Set(pair.Access.TokenID, "gym-999"); err != nil {
		t.Fatalf("corrupt record: %v", err)
	}
	if _, err := gate.Authenticate(ctx, pair.Access.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("authenticate mismatched record = %v, want ErrTokenInvalid", err)
	}
}

func TestAuthenticateStoreDown(t *testing.T) {
	gate, _, mr := newTestGate(t)
	ctx := context.Background()

	pair, err := gate.Login(ctx, "seeker-5", "user-9", model.RoleGymSeeker)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	mr.Close()
	id, err := gate.Authenticate(ctx, pair.Access.Token)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("authenticate = %v, want ErrStoreUnavailable", err)
	}
	if id != (Identity{}) {
		t.Fatalf("partial identity returned on store failure: %+v", id)
	}
}

func TestRefreshIssuesNewAccess(t *testing.T) {
	gate, _, _ := newTestGate(t)
	ctx := context.Background()

	pair, err := gate.Login(ctx, "gym-42", "user-7", model.RoleGym)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	access, err := gate.Refresh(ctx, pair.Refresh.Token)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access.TokenID == pair.Access.TokenID {
		t.Fatal("refreshed access token reuses the old token id")
	}
	if _, err := gate.Authenticate(ctx, access.Token); err != nil {
		t.Fatalf("authenticate with refreshed token: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	gate, _, _ := newTestGate(t)
	ctx := context.Background()

	pair, err := gate.Login(ctx, "gym-42", "user-7", model.RoleGym)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := gate.Refresh(ctx, pair.Access.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh with access token = %v, want ErrTokenInvalid", err)
	}
}

func TestLogoutRejectsGarbageRefresh(t *testing.T) {
	gate, _, _ := newTestGate(t)
	ctx := context.Background()

	pair, err := gate.Login(ctx, "gym-42", "user-7", model.RoleGym)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := gate.Logout(ctx, pair.Access.TokenID, "garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("logout = %v, want ErrTokenInvalid", err)
	}
	// The session must still be live: the bad logout revoked nothing.
	if _, err := gate.Authenticate(ctx, pair.Access.Token); err != nil {
		t.Fatalf("authenticate after failed logout: %v", err)
	}
}
