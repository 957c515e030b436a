package web_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"libris/internal/adapter/memory"
	"libris/internal/adapter/web"
	"libris/internal/app"
)

// newTestServer wires a full stack over the in-memory store. The returned
// client carries cookies and does not follow redirects, so tests can assert
// redirect targets.
func newTestServer(t *testing.T, policy app.AddBookPolicy, mode app.InventoryMode) (*httptest.Server, *http.Client, *memory.DB) {
	t.Helper()

	db := memory.New()
	authSvc := app.NewAuthService(db, db)
	catalogSvc := app.NewCatalogService(db, policy, mode)
	srv := httptest.NewServer(web.New(authSvc, catalogSvc, []byte("test-secret")).Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client, db
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	resp.Body.Close()
	return resp
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func register(t *testing.T, client *http.Client, base, username, password string) {
	t.Helper()
	resp := postForm(t, client, base+"/register", url.Values{
		"username": {username},
		"password": {password},
	})
	assertRedirect(t, resp, "/login")
}

func login(t *testing.T, client *http.Client, base, username, password string) {
	t.Helper()
	resp := postForm(t, client, base+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	assertRedirect(t, resp, "/")
}

func TestEndToEnd_AdminPolicy(t *testing.T) {
	srv, client, db := newTestServer(t, app.PolicyAdminOnly, app.ModeCopies)
	ctx := context.Background()

	register(t, client, srv.URL, "alice", "pw123456")
	login(t, client, srv.URL, "alice", "pw123456")

	// alice is not an admin, so the add is denied without side effects.
	resp := postForm(t, client, srv.URL+"/add_book", url.Values{
		"title":  {"Dune"},
		"author": {"Herbert"},
		"copies": {"3"},
	})
	assertRedirect(t, resp, "/")
	if books, _ := db.ListBooks(ctx); len(books) != 0 {
		t.Fatalf("denied add must not write, got %d books", len(books))
	}

	// An admin (minted out of band) can add.
	authSvc := app.NewAuthService(db, db)
	if _, err := authSvc.CreateAdmin(ctx, "root", "rootpw"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	login(t, client, srv.URL, "root", "rootpw")

	resp = postForm(t, client, srv.URL+"/add_book", url.Values{
		"title":  {"Dune"},
		"author": {"Herbert"},
		"copies": {"3"},
	})
	assertRedirect(t, resp, "/")

	books, _ := db.ListBooks(ctx)
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Dune" || books[0].Author != "Herbert" || books[0].Copies != 3 {
		t.Errorf("unexpected book: %+v", books[0])
	}

	// The catalog page shows it to anyone, logged in or not.
	body := get(t, client, srv.URL+"/")
	if !strings.Contains(body, "Dune") || !strings.Contains(body, "Herbert") {
		t.Errorf("catalog page missing the new book: %s", body)
	}

	// Delete it and verify it is gone.
	resp = postForm(t, client, srv.URL+"/delete_book/"+strconv.FormatInt(books[0].ID, 10), nil)
	assertRedirect(t, resp, "/")
	if books, _ := db.ListBooks(ctx); len(books) != 0 {
		t.Errorf("expected empty catalog after delete, got %d", len(books))
	}
}

func TestAddBook_AnyAuthenticatedPolicy(t *testing.T) {
	srv, client, db := newTestServer(t, app.PolicyAnyAuthenticated, app.ModeCopies)

	register(t, client, srv.URL, "alice", "pw123456")
	login(t, client, srv.URL, "alice", "pw123456")

	resp := postForm(t, client, srv.URL+"/add_book", url.Values{
		"title":  {"Dune"},
		"author": {"Herbert"},
		"copies": {"3"},
	})
	assertRedirect(t, resp, "/")

	if books, _ := db.ListBooks(context.Background()); len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
}

func TestAddBook_Anonymous(t *testing.T) {
	srv, client, db := newTestServer(t, app.PolicyAnyAuthenticated, app.ModeCopies)

	resp := postForm(t, client, srv.URL+"/add_book", url.Values{
		"title":  {"Dune"},
		"author": {"Herbert"},
		"copies": {"1"},
	})
	assertRedirect(t, resp, "/")
	if books, _ := db.ListBooks(context.Background()); len(books) != 0 {
		t.Fatal("anonymous add must not write")
	}
}

func TestAddBook_StatusMode(t *testing.T) {
	srv, client, db := newTestServer(t, app.PolicyAnyAuthenticated, app.ModeStatus)

	register(t, client, srv.URL, "alice", "pw123456")
	login(t, client, srv.URL, "alice", "pw123456")

	resp := postForm(t, client, srv.URL+"/add_book", url.Values{
		"title":  {"Dune"},
		"author": {"Herbert"},
		"status": {"available"},
	})
	assertRedirect(t, resp, "/")

	books, _ := db.ListBooks(context.Background())
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if string(books[0].Status) != "available" {
		t.Errorf("expected available, got %s", books[0].Status)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	srv, client, _ := newTestServer(t, app.PolicyAdminOnly, app.ModeCopies)

	register(t, client, srv.URL, "alice", "pw123456")

	resp := postForm(t, client, srv.URL+"/register", url.Values{
		"username": {"alice"},
		"password": {"different"},
	})
	assertRedirect(t, resp, "/register")
}

func TestLogin_InvalidCredentialsLookAlike(t *testing.T) {
	srv, client, _ := newTestServer(t, app.PolicyAdminOnly, app.ModeCopies)

	register(t, client, srv.URL, "alice", "pw123456")

	// Unknown user and wrong password behave identically: same redirect,
	// same flash message on the login page.
	for _, form := range []url.Values{
		{"username": {"ghost"}, "password": {"whatever"}},
		{"username": {"alice"}, "password": {"wrongpass"}},
	} {
		resp := postForm(t, client, srv.URL+"/login", form)
		assertRedirect(t, resp, "/login")

		body := get(t, client, srv.URL+"/login")
		if !strings.Contains(body, "Invalid credentials!") {
			t.Errorf("login page missing the generic error: %s", body)
		}
	}
}

func TestLogout_DestroysSession(t *testing.T) {
	srv, client, db := newTestServer(t, app.PolicyAnyAuthenticated, app.ModeCopies)

	register(t, client, srv.URL, "alice", "pw123456")
	login(t, client, srv.URL, "alice", "pw123456")

	resp, err := client.Get(srv.URL + "/logout")
	if err != nil {
		t.Fatalf("GET /logout: %v", err)
	}
	resp.Body.Close()
	assertRedirect(t, resp, "/")

	// The old session no longer authorizes writes.
	resp = postForm(t, client, srv.URL+"/add_book", url.Values{
		"title":  {"Dune"},
		"author": {"Herbert"},
		"copies": {"1"},
	})
	assertRedirect(t, resp, "/")
	if books, _ := db.ListBooks(context.Background()); len(books) != 0 {
		t.Fatal("write after logout must be denied")
	}
}

func TestDeleteBook_AbsentIDIsNoOp(t *testing.T) {
	srv, client, db := newTestServer(t, app.PolicyAnyAuthenticated, app.ModeCopies)
	ctx := context.Background()

	register(t, client, srv.URL, "alice", "pw123456")
	login(t, client, srv.URL, "alice", "pw123456")

	_, _ = db.AddBook(ctx, "Dune", "Herbert", 1, "available")

	resp := postForm(t, client, srv.URL+"/delete_book/999", nil)
	assertRedirect(t, resp, "/")

	if books, _ := db.ListBooks(ctx); len(books) != 1 {
		t.Errorf("no-op delete changed the catalog: %d books", len(books))
	}
}

func TestIndex_PublicWithoutSession(t *testing.T) {
	srv, _, db := newTestServer(t, app.PolicyAdminOnly, app.ModeCopies)
	_, _ = db.AddBook(context.Background(), "Dune", "Herbert", 1, "available")

	// Plain client: no cookies at all.
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "Dune") {
		t.Errorf("public catalog missing books: %s", b)
	}
}

func TestHealthz(t *testing.T) {
	srv, client, _ := newTestServer(t, app.PolicyAdminOnly, app.ModeCopies)

	resp, err := client.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func get(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
