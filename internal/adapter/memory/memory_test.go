package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"libris/internal/domain"
)

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "alice", "hash", domain.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}

	// Duplicate username
	if _, err := db.CreateUser(ctx, "alice", "otherhash", domain.RoleUser); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}

	got, err := db.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Errorf("expected user %d, got %+v", u.ID, got)
	}

	missing, err := db.GetUserByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown username, got %+v", missing)
	}

	byID, _ := db.GetUserByID(ctx, u.ID)
	if byID == nil || byID.Username != "alice" {
		t.Errorf("expected alice, got %+v", byID)
	}
}

func TestUserRepository_ConcurrentRegistration(t *testing.T) {
	db := New()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = db.CreateUser(ctx, "alice", "hash", domain.RoleUser)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrDuplicateUsername) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("expected exactly one registration to succeed, got %d", succeeded)
	}
}

func TestBookRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	b, err := db.AddBook(ctx, "Dune", "Herbert", 3, domain.Available)
	if err != nil {
		t.Fatalf("AddBook: %v", err)
	}
	if b.ID == 0 {
		t.Error("expected non-zero ID")
	}

	books, err := db.ListBooks(ctx)
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Dune" || books[0].Author != "Herbert" || books[0].Copies != 3 {
		t.Errorf("unexpected book: %+v", books[0])
	}

	// Deleting a nonexistent id is a no-op and leaves the catalog unchanged.
	if err := db.DeleteBook(ctx, 999); err != nil {
		t.Errorf("DeleteBook of absent id: %v", err)
	}
	books, _ = db.ListBooks(ctx)
	if len(books) != 1 {
		t.Errorf("catalog size changed on no-op delete: %d", len(books))
	}

	if err := db.DeleteBook(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	books, _ = db.ListBooks(ctx)
	if len(books) != 0 {
		t.Errorf("expected empty catalog, got %d", len(books))
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.CreateSession(ctx, 1, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	s, err := db.GetSession(ctx, "tok")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s == nil || s.UserID != 1 {
		t.Errorf("expected session for user 1, got %+v", s)
	}

	if err := db.DeleteSession(ctx, "tok"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	s, _ = db.GetSession(ctx, "tok")
	if s != nil {
		t.Errorf("expected nil after delete, got %+v", s)
	}

	// Idempotent delete
	if err := db.DeleteSession(ctx, "tok"); err != nil {
		t.Errorf("second delete should be a no-op: %v", err)
	}

	// Expired sessions are dropped on read
	_ = db.CreateSession(ctx, 2, "old", time.Now().Add(-time.Minute))
	s, _ = db.GetSession(ctx, "old")
	if s != nil {
		t.Errorf("expected nil for expired session, got %+v", s)
	}

	_ = db.CreateSession(ctx, 3, "stale", time.Now().Add(-time.Minute))
	if err := db.DeleteExpiredSessions(ctx); err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if len(db.sessions) != 0 {
		t.Errorf("expected no sessions left, got %d", len(db.sessions))
	}
}
