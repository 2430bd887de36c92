package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

// These tests need a running MongoDB; set FITFLOW_TEST_MONGO_URI to enable them.
func connectTest(t *testing.T) *SessionStore {
	t.Helper()
	uri := os.Getenv("FITFLOW_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("FITFLOW_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "fitflow_test_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return NewSessionStore(db, time.Hour)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	store := connectTest(t)
	ctx := context.Background()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential on empty store, got %v", err)
	}
	if err := store.Set(ctx, "s1", "tok-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "s1", "tok-2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	cred, err := store.Get(ctx, "s1")
	if err != nil || cred != "tok-2" {
		t.Fatalf("expected tok-2, got %q (%v)", cred, err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential after clear, got %v", err)
	}
}

func TestSubmitGuard_AcquireRelease(t *testing.T) {
	store := connectTest(t)
	ctx := context.Background()
	guard := NewSubmitGuard(store.coll.Database(), 50*time.Millisecond)

	if err := guard.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	if ok, err := guard.Acquire(ctx, "k"); err != nil || !ok {
		t.Fatalf("first acquire should succeed, got %v (%v)", ok, err)
	}
	if ok, err := guard.Acquire(ctx, "k"); err != nil || ok {
		t.Fatalf("second acquire should report the lock as held, got %v (%v)", ok, err)
	}

	time.Sleep(100 * time.Millisecond)
	if ok, err := guard.Acquire(ctx, "k"); err != nil || !ok {
		t.Fatalf("expired lock should be taken over, got %v (%v)", ok, err)
	}

	if err := guard.Release(ctx, "k"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := guard.Acquire(ctx, "k"); !ok {
		t.Fatalf("acquire after release should succeed")
	}
}
