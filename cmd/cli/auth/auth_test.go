package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/recipe-api/cmd/cli/config"
	"github.com/crucial707/recipe-api/internal/dto"
)

func TestLoginProfileLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var in map[string]string
			json.NewDecoder(r.Body).Decode(&in)
			if in["email"] != "cook@example.com" || in["password"] != "secret123" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			json.NewEncoder(w).Encode(dto.TokenUserDto{Email: in["email"], Token: "tok"})
		case "/auth/profile":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(dto.FetchUserDto{ID: "u1", Email: "cook@example.com", FirstName: "Ada"})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("RECIPE_API_URL", srv.URL)
	t.Setenv("RECIPE_TOKEN_FILE", tokenFile)

	var buf bytes.Buffer
	login := loginCmd()
	login.SetOut(&buf)
	login.SetArgs([]string{"--email", "cook@example.com", "--password", "secret123"})
	if err := login.Execute(); err != nil {
		t.Fatalf("login: %v", err)
	}
	if data, _ := os.ReadFile(tokenFile); string(data) != "tok" {
		t.Fatalf("token file: got %q", data)
	}

	buf.Reset()
	profile := profileCmd()
	profile.SetOut(&buf)
	profile.SetArgs([]string{})
	if err := profile.Execute(); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !strings.Contains(buf.String(), "cook@example.com") || !strings.Contains(buf.String(), "Ada") {
		t.Errorf("unexpected profile output: %s", buf.String())
	}

	buf.Reset()
	logout := logoutCmd()
	logout.SetOut(&buf)
	logout.SetArgs([]string{})
	if err := logout.Execute(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := config.LoadToken(); err != config.ErrNotLoggedIn {
		t.Errorf("token should be gone, got %v", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer srv.Close()
	t.Setenv("RECIPE_API_URL", srv.URL)
	t.Setenv("RECIPE_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	login := loginCmd()
	login.SetOut(&bytes.Buffer{})
	login.SetErr(&bytes.Buffer{})
	login.SetArgs([]string{"--email", "x@example.com", "--password", "nope"})
	err := login.Execute()
	if err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestLogin_RequiresFlags(t *testing.T) {
	login := loginCmd()
	login.SetOut(&bytes.Buffer{})
	login.SetErr(&bytes.Buffer{})
	login.SetArgs([]string{"--email", "x@example.com"})
	if err := login.Execute(); err == nil {
		t.Error("expected error without --password")
	}
}
