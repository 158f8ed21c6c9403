// Package testserver runs an in-process fake of the backend HTTP API:
// the auth routes, the per-entity REST routes and the nested application
// sub-resources, all answering in the {data: ...} envelope.
package testserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Public resources are readable without a bearer token.
var publicRead = map[string]bool{
	"posts":       true,
	"internships": true,
	"training":    true,
	"projects":    true,
}

type user struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	password string
}

// TestServer is the fake backend plus its seeded state.
type TestServer struct {
	Server *httptest.Server

	mu          sync.Mutex
	users       map[string]*user  // by email
	tokens      map[string]string // token -> user id
	collections map[string]map[string]map[string]any
	order       map[string][]string // insertion order per resource
	malformed   map[string]bool     // resource -> serve object instead of array
}

// New starts the fake backend and registers cleanup.
func New(t *testing.T) *TestServer {
	t.Helper()
	ts := &TestServer{
		users:       make(map[string]*user),
		tokens:      make(map[string]string),
		collections: make(map[string]map[string]map[string]any),
		order:       make(map[string][]string),
		malformed:   make(map[string]bool),
	}
	ts.Server = httptest.NewServer(ts.router())
	t.Cleanup(ts.Server.Close)
	return ts
}

// URL returns the base URL clients should dial.
func (ts *TestServer) URL() string { return ts.Server.URL }

// SeedUser registers an account and returns its id.
func (ts *TestServer) SeedUser(name, email, password, role string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	u := &user{ID: uuid.NewString(), Name: name, Email: email, Role: role, password: password}
	ts.users[email] = u
	return u.ID
}

// IssueToken mints a token for an already seeded user, as if they had
// logged in elsewhere.
func (ts *TestServer) IssueToken(email string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	u := ts.users[email]
	token := newToken()
	ts.tokens[token] = u.ID
	return token
}

// RevokeToken invalidates a token so the next request 401s.
func (ts *TestServer) RevokeToken(token string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.tokens, token)
}

// Seed inserts a record directly into a collection.
func (ts *TestServer) Seed(resource string, record map[string]any) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.insert(resource, record)
}

// Record returns a stored record by id.
func (ts *TestServer) Record(resource, id string) (map[string]any, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	record, ok := ts.collections[resource][id]
	return record, ok
}

// Count returns the number of records in a collection.
func (ts *TestServer) Count(resource string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.collections[resource])
}

// SetMalformed makes list responses for the resource return an object in
// data instead of an array, to exercise the parse-don't-trust path.
func (ts *TestServer) SetMalformed(resource string, on bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.malformed[resource] = on
}

func (ts *TestServer) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", ts.handleLogin(""))
	r.Post("/auth/admin/login", ts.handleLogin("admin"))
	r.Post("/auth/register", ts.handleRegister("student"))
	r.Post("/auth/admin/register", ts.handleRegister("admin"))
	r.Get("/auth/me", ts.handleMe)
	r.Post("/auth/refresh", ts.handleRefresh)
	r.Post("/auth/logout", ts.handleLogout)
	r.Put("/auth/profile", ts.handleProfile)

	r.Patch("/applications/{id}/status", ts.handleStatus)
	r.Post("/{resource}/{id}/applications", ts.handleSubmitApplication)

	r.Get("/{resource}", ts.handleList)
	r.Post("/{resource}", ts.handleCreate)
	r.Get("/{resource}/{id}", ts.handleGet)
	r.Put("/{resource}/{id}", ts.handleUpdate)
	r.Delete("/{resource}/{id}", ts.handleDelete)

	return r
}

// Auth helpers ------------------------------------------------------------

func (ts *TestServer) authenticate(r *http.Request) (*user, bool) {
	header := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return nil, false
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	userID, ok := ts.tokens[token]
	if !ok {
		return nil, false
	}
	for _, u := range ts.users {
		if u.ID == userID {
			return u, true
		}
	}
	return nil, false
}

func (ts *TestServer) handleLogin(requiredRole string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed credentials")
			return
		}
		ts.mu.Lock()
		u, ok := ts.users[creds.Email]
		if !ok || u.password != creds.Password || (requiredRole != "" && u.Role != requiredRole) {
			ts.mu.Unlock()
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
			return
		}
		token := newToken()
		ts.tokens[token] = u.ID
		ts.mu.Unlock()
		writeData(w, http.StatusOK, authPayload(token, *u))
	}
}

func (ts *TestServer) handleRegister(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed registration")
			return
		}
		ts.mu.Lock()
		if _, exists := ts.users[input.Email]; exists {
			ts.mu.Unlock()
			writeError(w, http.StatusConflict, "CONFLICT", "email already registered")
			return
		}
		u := &user{
			ID:       uuid.NewString(),
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Role:     role,
			password: input.Password,
		}
		ts.users[input.Email] = u
		token := newToken()
		ts.tokens[token] = u.ID
		ts.mu.Unlock()
		writeData(w, http.StatusCreated, authPayload(token, *u))
	}
}

func (ts *TestServer) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := ts.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	writeData(w, http.StatusOK, u)
}

func (ts *TestServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	u, ok := ts.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	ts.mu.Lock()
	token := newToken()
	ts.tokens[token] = u.ID
	ts.mu.Unlock()
	writeData(w, http.StatusOK, authPayload(token, *u))
}

func (ts *TestServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	ts.RevokeToken(token)
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (ts *TestServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := ts.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed profile")
		return
	}
	ts.mu.Lock()
	if input.Name != "" {
		u.Name = input.Name
	}
	if input.Phone != "" {
		u.Phone = input.Phone
	}
	ts.mu.Unlock()
	writeData(w, http.StatusOK, u)
}

// Resource handlers -------------------------------------------------------

func (ts *TestServer) handleList(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	if !publicRead[resource] {
		if _, ok := ts.authenticate(r); !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.malformed[resource] {
		writeData(w, http.StatusOK, map[string]string{"unexpected": "shape"})
		return
	}
	items := make([]map[string]any, 0, len(ts.order[resource]))
	for _, id := range ts.order[resource] {
		if record, ok := ts.collections[resource][id]; ok {
			items = append(items, record)
		}
	}
	writeData(w, http.StatusOK, items)
}

func (ts *TestServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	// The contact form is the one anonymous write.
	if resource != "messages" {
		if _, ok := ts.authenticate(r); !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
	}
	record, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed record")
		return
	}
	ts.mu.Lock()
	ts.insert(resource, record)
	ts.mu.Unlock()
	writeData(w, http.StatusCreated, record)
}

func (ts *TestServer) handleGet(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	if !publicRead[resource] {
		if _, ok := ts.authenticate(r); !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
	}
	ts.mu.Lock()
	record, ok := ts.collections[resource][chi.URLParam(r, "id")]
	ts.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}
	writeData(w, http.StatusOK, record)
}

func (ts *TestServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := ts.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	record, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed record")
		return
	}
	record["id"] = id
	ts.mu.Lock()
	_, exists := ts.collections[resource][id]
	if exists {
		ts.collections[resource][id] = record
	}
	ts.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}
	writeData(w, http.StatusOK, record)
}

func (ts *TestServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := ts.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	ts.mu.Lock()
	delete(ts.collections[resource], id)
	ts.mu.Unlock()
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (ts *TestServer) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	if _, ok := ts.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "expected multipart form")
		return
	}
	record := map[string]any{"status": "Pending", "submittedAt": time.Now().UTC()}
	for _, field := range []string{"id", "studentId", "internshipId", "jobId", "coverLetter", "status"} {
		if value := r.FormValue(field); value != "" {
			record[field] = value
		}
	}
	if file, header, err := r.FormFile("resume"); err == nil {
		_ = file.Close()
		record["resumeName"] = header.Filename
	}
	ts.mu.Lock()
	ts.insert("applications", record)
	ts.mu.Unlock()
	writeData(w, http.StatusCreated, record)
}

func (ts *TestServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := ts.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	if u.Role != "admin" {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "admin role required")
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed status")
		return
	}
	id := chi.URLParam(r, "id")
	ts.mu.Lock()
	record, exists := ts.collections["applications"][id]
	if exists {
		record["status"] = input.Status
	}
	ts.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "application not found")
		return
	}
	writeData(w, http.StatusOK, record)
}

// Internals ---------------------------------------------------------------

func (ts *TestServer) insert(resource string, record map[string]any) {
	id, _ := record["id"].(string)
	if id == "" {
		id = uuid.NewString()
		record["id"] = id
	}
	if ts.collections[resource] == nil {
		ts.collections[resource] = make(map[string]map[string]any)
	}
	if _, exists := ts.collections[resource][id]; !exists {
		ts.order[resource] = append(ts.order[resource], id)
	}
	ts.collections[resource][id] = record
}

func decodeRecord(r *http.Request) (map[string]any, error) {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		return nil, err
	}
	return record, nil
}

func authPayload(token string, u user) map[string]any {
	return map[string]any{
		"token":     token,
		"expiresAt": time.Now().Add(time.Hour).UnixMilli(),
		"user":      u,
	}
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "message": message})
}
