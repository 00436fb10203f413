package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".recipes_token"
)

// ErrNotLoggedIn is returned when no token has been saved.
var ErrNotLoggedIn = errors.New("not logged in: run 'recipes auth login' first")

// APIURL returns the base URL for the Recipe API.
// It can be overridden with the RECIPE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("RECIPE_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenPath is where the session token lives. RECIPE_TOKEN_FILE overrides the
// default of ~/.recipes_token.
func TokenPath() string {
	if v := os.Getenv("RECIPE_TOKEN_FILE"); v != "" {
		return v
	}
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}

// ==========================
// Token Storage Helpers
// ==========================

func SaveToken(token string) error {
	return os.WriteFile(TokenPath(), []byte(token), 0600)
}

func LoadToken() (string, error) {
	data, err := os.ReadFile(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// ClearToken removes the saved token. It reports whether one existed.
func ClearToken() (bool, error) {
	err := os.Remove(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
