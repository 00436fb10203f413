package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/crucial707/recipe-api/internal/middleware"
	"github.com/crucial707/recipe-api/internal/models"
	"github.com/crucial707/recipe-api/internal/repo"
	"github.com/go-chi/chi/v5"
)

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser attaches an authenticated principal, as the bearer guard would.
func asUser(r *http.Request, id string) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), &models.User{ID: id, Email: id + "@example.com"}))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

// memRecipes is an in-memory RecipeStore.
type memRecipes struct {
	mu      sync.Mutex
	next    int
	recipes map[string]models.Recipe
	err     error
}

func newMemRecipes() *memRecipes {
	return &memRecipes{recipes: make(map[string]models.Recipe)}
}

func (m *memRecipes) Create(ctx context.Context, d models.RecipeDraft) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.next++
	rec := models.Recipe{
		ID:             "r" + strconv.Itoa(m.next),
		Title:          d.Title,
		RecipeImageURL: d.RecipeImageURL,
		Ingredients:    append([]string(nil), d.Ingredients...),
		Instructions:   d.Instructions,
		PrepTime:       d.PrepTime,
		CookTime:       d.CookTime,
		TotalTime:      d.TotalTime,
	}
	m.recipes[rec.ID] = rec
	return &rec, nil
}

func (m *memRecipes) List(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Recipe
	for _, r := range m.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRecipes) Get(ctx context.Context, id string) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recipes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &rec, nil
}

func (m *memRecipes) Update(ctx context.Context, id string, p models.RecipePatch) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recipes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	applyPatch(p, &rec)
	m.recipes[id] = rec
	return &rec, nil
}

// applyPatch merges the provided fields of p into r.
func applyPatch(p models.RecipePatch, r *models.Recipe) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.RecipeImageURL != nil {
		r.RecipeImageURL = *p.RecipeImageURL
	}
	if p.Ingredients != nil {
		r.Ingredients = append([]string(nil), (*p.Ingredients)...)
	}
	if p.Instructions != nil {
		r.Instructions = *p.Instructions
	}
	if p.PrepTime != nil {
		r.PrepTime = *p.PrepTime
	}
	if p.CookTime != nil {
		r.CookTime = *p.CookTime
	}
	if p.TotalTime != nil {
		r.TotalTime = *p.TotalTime
	}
}

func (m *memRecipes) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.recipes, id)
	return nil
}

func (m *memRecipes) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.recipes)), nil
}

// memAudit records audit calls.
type memAudit struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	err     error
}

func (a *memAudit) Log(ctx context.Context, userID, action, resourceType, resourceID, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, models.AuditEntry{
		ID:           strconv.Itoa(len(a.entries) + 1),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	})
	return nil
}

func (a *memAudit) List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.AuditEntry(nil), a.entries...), nil
}
