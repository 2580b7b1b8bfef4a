package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"clinroots-cli/internal/model"
)

// LoginResult is the /api/login success shape.
type LoginResult struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

// Login exchanges credentials for an identity and bearer token. It never
// attaches an existing credential, and a 401 here is a business error
// ("invalid email or password"), not session expiry. Committing the result
// to the session store is the caller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &res, callOpts{anonymous: true}); err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return LoginResult{}, &Error{Status: http.StatusOK, Message: "login response missing token"}
	}
	return res, nil
}

// Logout notifies the backend, best effort. The token itself is stateless;
// the caller clears the session store regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil, callOpts{})
}

func (c *Client) ChangePassword(ctx context.Context, current, updated, confirm string) error {
	body := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}{current, updated, confirm}
	return c.do(ctx, http.MethodPost, "/api/change_password", body, nil, callOpts{})
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &cats, callOpts{}); err != nil {
		return nil, err
	}
	return cats, nil
}

// CategoryKeys lists the raw category keys used by the CRUD category picker.
func (c *Client) CategoryKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := c.do(ctx, http.MethodGet, "/api/categories/all", nil, &keys, callOpts{}); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *Client) Notes(ctx context.Context, category string) ([]model.NoteSummary, error) {
	var notes []model.NoteSummary
	p := "/api/notes?category=" + url.QueryEscape(category)
	if err := c.do(ctx, http.MethodGet, p, nil, &notes, callOpts{}); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) SearchNotes(ctx context.Context, query string) ([]model.NoteSummary, error) {
	var notes []model.NoteSummary
	p := "/api/notes?search=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, p, nil, &notes, callOpts{}); err != nil {
		return nil, err
	}
	return notes, nil
}

// Note fetches full note detail. Always a fresh fetch: summary rows are
// never promoted into detail state, so the backend's view counter is the
// only authority.
func (c *Client) Note(ctx context.Context, id int) (model.Note, error) {
	var n model.Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/note/%d", id), nil, &n, callOpts{}); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// NotePayload is the create shape for /api/note.
type NotePayload struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

func (c *Client) CreateNote(ctx context.Context, p NotePayload) error {
	return c.do(ctx, http.MethodPost, "/api/note", p, nil, callOpts{})
}

// UpdatePayload is the update shape for PUT /api/note/{id}, shared by the
// CRUD modal and live-edit saves. Live edits always set IsPublished: there
// is no draft state in this design.
type UpdatePayload struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
}

func (c *Client) UpdateNote(ctx context.Context, id int, p UpdatePayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/note/%d", id), p, nil, callOpts{})
}

func (c *Client) DeleteNote(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/note/%d", id), nil, nil, callOpts{})
}

func (c *Client) AdminStats(ctx context.Context) (model.AdminStats, error) {
	var res struct {
		Stats model.AdminStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin_stats", nil, &res, callOpts{}); err != nil {
		return model.AdminStats{}, err
	}
	return res.Stats, nil
}

func (c *Client) TopNotes(ctx context.Context) ([]model.TopNote, error) {
	var notes []model.TopNote
	if err := c.do(ctx, http.MethodGet, "/api/note_views", nil, &notes, callOpts{}); err != nil {
		return nil, err
	}
	return notes, nil
}
