package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinroots-cli/internal/model"
	"clinroots-cli/internal/session"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// fakeBackend returns a server and a pointer to the request count.
func fakeBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if handler != nil {
			handler(w, r)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestOutputContract_JSONEnvelope(t *testing.T) {
	srv, _ := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"db_name":"anatomy","name":"Anatomy","description":"","notes":4}]`))
	})
	dir := t.TempDir()

	mustEnv := func(args ...string) map[string]any {
		t.Helper()
		stdout, stderr, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("command failed: clinroots %v\nerr: %v\nstderr:\n%s", args, err, string(stderr))
		}
		var env map[string]any
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
		}
		if _, ok := env["data"]; !ok {
			t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
		}
		return env
	}

	mustEnv("--server", srv.URL, "--dir", dir, "categories", "list")
	mustEnv("--server", srv.URL, "--dir", dir, "whoami")
	docsEnv := mustEnv("docs")
	data, _ := docsEnv["data"].(map[string]any)
	topics, _ := data["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected docs topics, got %#v", docsEnv["data"])
	}
}

func TestLogin_PersistsSessionForWhoami(t *testing.T) {
	srv, _ := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok","token":"tok-1","user":{"email":"a@x.com","role":"admin"}}`))
	})
	dir := t.TempDir()

	if _, stderr, err := runCLI(t, []string{"--server", srv.URL, "--dir", dir, "login", "--email", "a@x.com", "--password", "s"}); err != nil {
		t.Fatalf("login failed: %v\n%s", err, stderr)
	}

	stdout, _, err := runCLI(t, []string{"--server", srv.URL, "--dir", dir, "whoami"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(stdout), `"a@x.com"`) {
		t.Fatalf("whoami did not report the restored identity:\n%s", stdout)
	}
}

func TestNotesSearch_ShortQuerySkipsBackend(t *testing.T) {
	srv, requests := fakeBackend(t, nil)
	dir := t.TempDir()

	stdout, _, err := runCLI(t, []string{"--server", srv.URL, "--dir", dir, "notes", "search", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if *requests != 0 {
		t.Fatalf("short query must not hit the backend, saw %d requests", *requests)
	}
	if !strings.Contains(string(stdout), `"data":[]`) {
		t.Fatalf("expected empty result envelope, got:\n%s", stdout)
	}
}

func TestNotesDelete_RequiresConfirmation(t *testing.T) {
	srv, requests := fakeBackend(t, nil)
	dir := t.TempDir()

	_, stderr, err := runCLI(t, []string{"--server", srv.URL, "--dir", dir, "notes", "delete", "42"})
	if err == nil {
		t.Fatal("delete without --yes must fail")
	}
	if *requests != 0 {
		t.Fatal("no request may be issued before confirmation")
	}
	if !strings.Contains(string(stderr), "--yes") {
		t.Fatalf("error should mention the confirmation flag:\n%s", stderr)
	}
}

func TestExpiredSession_ClearsStoreAndAdvisesLogin(t *testing.T) {
	srv, _ := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token has expired"}`))
	})
	dir := t.TempDir()

	st := session.Store{Dir: dir}
	if err := st.Commit(model.User{Email: "a@x.com", Role: model.RoleAdmin}, "stale"); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCLI(t, []string{"--server", srv.URL, "--dir", dir, "notes", "list", "--category", "anatomy"})
	if err == nil {
		t.Fatal("expected the command to fail")
	}
	if !strings.Contains(string(stderr), "clinroots login") {
		t.Fatalf("stderr should advise logging in again:\n%s", stderr)
	}
	if _, _, ok := st.Restore(); ok {
		t.Fatal("the rejected credential must be wiped")
	}
}

func TestDocs_RawPrintsMarkdownOnly(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"docs", "tui", "--raw"})
	if err != nil {
		t.Fatal(err)
	}
	out := string(stdout)
	if !strings.HasPrefix(out, "# The interactive TUI") {
		t.Fatalf("expected raw markdown, got:\n%s", out)
	}
	if strings.Contains(out, `"data"`) {
		t.Fatal("raw output must not be wrapped in the JSON envelope")
	}
}
