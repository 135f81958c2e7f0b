package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	impl "github.com/sanatanigyan/granthalaya/internal/application/services"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/jap"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/test/mocks"
)

func TestJapStartAndGet(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := impl.NewJapService(store, time.Hour, testLogger())

	ctx := context.Background()
	started, err := svc.Start(ctx, "client-1", "om namah shivaya", 108)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if started.Count != 0 || started.Target != 108 {
		t.Fatalf("unexpected fresh session %+v", started)
	}

	got, err := svc.Get(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Mantra != "om namah shivaya" {
		t.Fatalf("expected persisted session, got %+v", got)
	}
}

func TestJapStartValidation(t *testing.T) {
	svc := impl.NewJapService(mocks.NewLocalStoreMock(), time.Hour, testLogger())

	ctx := context.Background()
	if _, err := svc.Start(ctx, "client-1", "", 108); err == nil {
		t.Fatalf("expected error for empty mantra")
	}
	if _, err := svc.Start(ctx, "client-1", "om", 0); err == nil {
		t.Fatalf("expected error for zero target")
	}
	if _, err := svc.Start(ctx, "client-1", "om", -2); err == nil {
		t.Fatalf("expected error for negative non-infinite target")
	}
	if _, err := svc.Start(ctx, "client-1", "om", jap.InfiniteTarget); err != nil {
		t.Fatalf("infinite target must be accepted: %v", err)
	}
}

func TestJapIncrement(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := impl.NewJapService(store, time.Hour, testLogger())

	ctx := context.Background()
	if _, err := svc.Start(ctx, "client-1", "om", 3); err != nil {
		t.Fatal(err)
	}

	var session *jap.Session
	var err error
	for i := 0; i < 3; i++ {
		session, err = svc.Increment(ctx, "client-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if session.Count != 3 {
		t.Fatalf("expected count 3, got %d", session.Count)
	}
	if !session.Completed() {
		t.Fatalf("expected session completed at target")
	}
}

func TestJapIncrementWithoutSession(t *testing.T) {
	svc := impl.NewJapService(mocks.NewLocalStoreMock(), time.Hour, testLogger())

	_, err := svc.Increment(context.Background(), "client-1")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJapInfiniteSessionNeverCompletes(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := impl.NewJapService(store, time.Hour, testLogger())

	ctx := context.Background()
	if _, err := svc.Start(ctx, "client-1", "om", jap.InfiniteTarget); err != nil {
		t.Fatal(err)
	}
	var session *jap.Session
	var err error
	for i := 0; i < 500; i++ {
		session, err = svc.Increment(ctx, "client-1")
		if err != nil {
			t.Fatal(err)
		}
	}
	if session.Completed() {
		t.Fatalf("an infinite session must never report completion")
	}
}

func TestJapStaleSessionReadsAsAbsent(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := impl.NewJapService(store, time.Hour, testLogger())

	ctx := context.Background()
	if _, err := svc.Start(ctx, "client-1", "om", 108); err != nil {
		t.Fatal(err)
	}
	store.Age("jap_session_client-1", 2*time.Hour)

	got, err := svc.Get(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected stale session to read as absent, got %+v", got)
	}
}

func TestJapReset(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := impl.NewJapService(store, time.Hour, testLogger())

	ctx := context.Background()
	if _, err := svc.Start(ctx, "client-1", "om", 108); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reset(ctx, "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.Get(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no session after reset")
	}
}

func TestJapStartReplacesExistingSession(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := impl.NewJapService(store, time.Hour, testLogger())

	ctx := context.Background()
	if _, err := svc.Start(ctx, "client-1", "om", 108); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Increment(ctx, "client-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Start(ctx, "client-1", "gayatri", 27); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(ctx, "client-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mantra != "gayatri" || got.Count != 0 || got.Target != 27 {
		t.Fatalf("expected a fresh replacement session, got %+v", got)
	}
}
