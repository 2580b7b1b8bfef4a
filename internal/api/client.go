// Package api is the single gateway for all backend requests.
//
// Every surface (CLI commands, TUI commands) goes through Client so the
// credential-rejection recovery path lives in exactly one place: a 401/422
// response wipes the persisted session and comes back as ErrUnauthorized,
// letting the in-flight flow abort instead of proceeding on stale state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clinroots-cli/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnauthorized signals that the backend rejected the bearer credential.
// By the time a caller sees it, the session store has already been cleared.
var ErrUnauthorized = errors.New("unauthorized: session expired")

// Error is any non-success backend response other than credential rejection,
// carrying the body's message for user-facing display.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return e.Message
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    session.Store
	Log        *zap.Logger
	UserAgent  string
}

func New(baseURL string, sess session.Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Session:    sess,
		Log:        log,
		UserAgent:  "clinroots-cli",
	}
}

// anonymous marks requests that must not carry a credential and whose 401s
// are business errors (bad login), not session expiry.
type callOpts struct {
	anonymous bool
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, opts callOpts) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if !opts.anonymous {
		if tok := c.Session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.Log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if !opts.anonymous && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity) {
		// Uniform credential-rejection path: wipe the session here so no
		// call site can proceed with a half-valid authenticated state.
		if err := c.Session.Clear(); err != nil {
			c.Log.Warn("clearing rejected session", zap.Error(err))
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// readMessage extracts the body's message field, best effort.
func readMessage(r io.Reader) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return ""
	}
	return strings.TrimSpace(m.Message)
}
