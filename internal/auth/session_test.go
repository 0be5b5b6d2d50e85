package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionStore(rdb), mr
}

func TestSessionPutGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "tok-1", "gym-42", time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "gym-42" {
		t.Fatalf("get = %q, want gym-42", got)
	}
}

func TestSessionGetMissing(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Get(context.Background(), "never-stored"); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("get missing = %v, want ErrSessionRevoked", err)
	}
}

func TestSessionTTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "tok-ttl", "gym-1", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, "tok-ttl"); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("get after ttl = %v, want ErrSessionRevoked", err)
	}
}

func TestSessionDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "tok-del", "gym-1", time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "tok-del"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.Delete(ctx, "tok-del"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := store.Delete(ctx, "never-stored"); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
}

func TestSessionStoreUnavailable(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "tok", "gym-1", time.Hour); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("put = %v, want ErrStoreUnavailable", err)
	}
	if _, err := store.Get(ctx, "tok"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("get = %v, want ErrStoreUnavailable", err)
	}
	if err := store.Delete(ctx, "tok"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("delete = %v, want ErrStoreUnavailable", err)
	}
}
