package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/dayplan/cmd/cli/config"
	"github.com/crucial707/dayplan/internal/models"
)

// withAPI points the CLI at srv and a throwaway config file.
func withAPI(t *testing.T, srv *httptest.Server) {
	t.Helper()
	t.Setenv("DAYPLAN_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	t.Setenv("DAYPLAN_API_URL", srv.URL)
}

func TestLogin_SavesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var in credentials
		json.NewDecoder(r.Body).Decode(&in)
		if in.Username != "alice" || in.Password != "correct-horse" {
			t.Errorf("unexpected credentials: %+v", in)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "signed.jwt"})
	}))
	defer srv.Close()
	withAPI(t, srv)

	cmd := loginCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--username", "alice", "--password", "correct-horse"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("login: %v", err)
	}

	token, err := config.LoadToken()
	if err != nil || token != "signed.jwt" {
		t.Errorf("saved token: got %q, %v", token, err)
	}
	if !strings.Contains(out.String(), "Login successful") {
		t.Errorf("output: %s", out.String())
	}
}

func TestRegister_PromptsForMissingPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "from-stdin" {
			t.Errorf("password: got %q", in.Password)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.User{ID: 5, Username: in.Username})
	}))
	defer srv.Close()
	withAPI(t, srv)

	cmd := registerCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("from-stdin\n"))
	cmd.SetArgs([]string{"--username", "bob"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.Contains(out.String(), "User bob registered (id 5)") {
		t.Errorf("output: %s", out.String())
	}
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"username already taken"}`))
	}))
	defer srv.Close()
	withAPI(t, srv)

	cmd := registerCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--username", "bob", "--password", "longenough"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "username already taken") {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	t.Setenv("DAYPLAN_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	if err := config.SaveToken("tok"); err != nil {
		t.Fatal(err)
	}

	cmd := logoutCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Errorf("output: %s", out.String())
	}

	out.Reset()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if !strings.Contains(out.String(), "No user logged in") {
		t.Errorf("output: %s", out.String())
	}
}
