package tui

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"clinroots-cli/internal/api"
	"clinroots-cli/internal/model"
	"clinroots-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Deterministic rendering regardless of the terminal running the tests.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func stripSGR(s string) string { return xansi.Strip(s) }

// requestLog records what the fake backend saw.
type requestLog struct {
	methods []string
	paths   []string
}

func (l *requestLog) count() int { return len(l.methods) }

func newTestModel(t *testing.T, handler http.HandlerFunc) (appModel, *requestLog) {
	t.Helper()

	log := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.methods = append(log.methods, r.Method)
		log.paths = append(log.paths, r.URL.Path+"?"+r.URL.RawQuery)
		if handler != nil {
			handler(w, r)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := api.New(srv.URL, session.Store{Dir: t.TempDir()}, nil)
	return newAppModel(c), log
}

func adminModel(t *testing.T, handler http.HandlerFunc) (appModel, *requestLog) {
	t.Helper()
	m, log := newTestModel(t, handler)
	if err := m.client.Session.Commit(model.User{Email: "a@x.com", Role: model.RoleAdmin}, "tok"); err != nil {
		t.Fatal(err)
	}
	m.user = model.User{Email: "a@x.com", Role: model.RoleAdmin}
	m.loggedIn = true
	return m, log
}

// runCmd executes a tea.Cmd synchronously, flattening batches, and returns
// every message it produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			msgs = append(msgs, runCmd(c)...)
		}
	default:
		if msg != nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// deliver feeds messages through Update and returns the resulting model.
// Cmds from every delivered message are accumulated, not just the last
// message's, so a cmd chained off an earlier message is never lost.
func deliver(t *testing.T, m appModel, msgs ...tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	var cmds []tea.Cmd
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		var ok bool
		m, ok = next.(appModel)
		if !ok {
			t.Fatalf("Update returned unexpected model type %T", next)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return m, nil
	case 1:
		return m, cmds[0]
	default:
		return m, tea.Batch(cmds...)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
