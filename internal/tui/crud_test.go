package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"clinroots-cli/internal/model"
)

func TestCreateModalOpensForAdmin(t *testing.T) {
	m, log := adminModel(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["anatomy","physiology","pathology"]`))
	})
	m.view = viewLibrary

	m, cmd := deliver(t, m, key("n"))
	if m.modal != modalNoteCrud {
		t.Fatal("n should open the form for an admin")
	}
	if m.crudForID != nil {
		t.Fatal("create mode must carry no note id")
	}

	m, _ = deliver(t, m, runCmd(cmd)...)
	if log.count() != 1 || !strings.HasPrefix(log.paths[0], "/api/categories/all") {
		t.Fatalf("picker keys must be fetched, got %v", log.paths)
	}
	if len(m.crudKeys) != 3 {
		t.Fatalf("keys not adopted: %v", m.crudKeys)
	}
}

func TestCreateModalHiddenFromVisitors(t *testing.T) {
	m, log := newTestModel(t, nil)
	m.view = viewLibrary

	m, _ = deliver(t, m, key("n"))

	if m.modal != modalNone {
		t.Fatal("anonymous users must not reach the form")
	}
	if log.count() != 0 {
		t.Fatal("no prefill request should go out")
	}
}

func TestEditModalPrefillsFromFreshFetch(t *testing.T) {
	m, _ := adminModel(t, nil)
	id := 7
	m.modal = modalNoteCrud
	m.crudForID = &id

	m, _ = deliver(t, m, crudPrefillMsg{
		noteID: &id,
		note:   model.Note{ID: 7, Title: "The Heart", Content: "Four chambers.", Category: "physiology"},
		keys:   []string{"anatomy", "physiology", "pathology"},
	})

	if m.crudTitle.Value() != "The Heart" {
		t.Fatalf("title not prefilled: %q", m.crudTitle.Value())
	}
	if m.crudContent.Value() != "Four chambers." {
		t.Fatalf("content not prefilled: %q", m.crudContent.Value())
	}
	if m.crudKeys[m.crudKeyIdx] != "physiology" {
		t.Fatalf("picker not aligned with the note's category, got %q", m.crudKeys[m.crudKeyIdx])
	}
}

func TestPrefillForClosedFormIsIgnored(t *testing.T) {
	m, _ := adminModel(t, nil)

	m, _ = deliver(t, m, crudPrefillMsg{
		keys: []string{"anatomy"},
	})

	if m.crudKeys != nil {
		t.Fatal("a prefill for a form that is no longer open must not land")
	}
}

func TestPrefillForDifferentNoteIsIgnored(t *testing.T) {
	m, _ := adminModel(t, nil)

	// The form was reopened in create mode while an edit-mode prefill for
	// note 7 was still in flight.
	m.modal = modalNoteCrud
	m.crudForID = nil

	stale := 7
	m, _ = deliver(t, m, crudPrefillMsg{
		noteID: &stale,
		note:   model.Note{ID: 7, Title: "The Heart", Content: "Four chambers.", Category: "anatomy"},
		keys:   []string{"anatomy"},
	})

	if m.crudTitle.Value() != "" || m.crudContent.Value() != "" {
		t.Fatalf("stale prefill overwrote the form: title=%q content=%q",
			m.crudTitle.Value(), m.crudContent.Value())
	}
	if m.crudKeys != nil {
		t.Fatal("stale prefill must not install picker keys")
	}

	// The matching response for the open mode still lands.
	m, _ = deliver(t, m, crudPrefillMsg{keys: []string{"anatomy", "physiology"}})
	if len(m.crudKeys) != 2 {
		t.Fatalf("matching prefill should land, got %v", m.crudKeys)
	}
}

func TestSubmitWithEmptyTitleNeverLeavesClient(t *testing.T) {
	m, log := adminModel(t, nil)
	m.modal = modalNoteCrud
	m.crudKeys = []string{"anatomy"}
	m.crudFocus = crudFocusSubmit

	m, cmd := deliver(t, m, key("enter"))
	runCmd(cmd)

	if log.count() != 0 {
		t.Fatal("an empty title must be rejected before any request")
	}
	if m.crudErr != "Title is required." {
		t.Fatalf("unexpected validation message %q", m.crudErr)
	}
	if m.modal != modalNoteCrud {
		t.Fatal("the form stays open for correction")
	}
}

func TestSubmitCreatePostsPayload(t *testing.T) {
	var bodies []string
	m, log := adminModel(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		_, _ = w.Write([]byte(`{"message":"Note added successfully!"}`))
	})
	m.view = viewCategory
	m.categoryKey = "anatomy"
	m.modal = modalNoteCrud
	m.crudKeys = []string{"anatomy", "physiology"}
	m.crudKeyIdx = 1
	m.crudTitle.SetValue("New note")
	m.crudContent.SetValue("Body text.")
	m.crudFocus = crudFocusSubmit

	m, cmd := deliver(t, m, key("enter"))
	msgs := runCmd(cmd)

	if log.count() != 1 || log.methods[0] != http.MethodPost || !strings.HasPrefix(log.paths[0], "/api/note?") {
		t.Fatalf("expected POST /api/note, got %v %v", log.methods, log.paths)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(bodies[0]), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["title"] != "New note" || payload["category"] != "physiology" {
		t.Fatalf("unexpected payload %v", payload)
	}

	m, cmd = deliver(t, m, msgs...)
	if m.modal != modalNone {
		t.Fatal("form should close on success")
	}
	if m.notice != "Note created." {
		t.Fatalf("unexpected notice %q", m.notice)
	}
	// The visible listing is refreshed to pick up the mutation.
	runCmd(cmd)
	if log.count() != 2 || !strings.Contains(log.paths[1], "category=anatomy") {
		t.Fatalf("expected a listing re-fetch, got %v", log.paths)
	}
}

func TestDeclinedDeleteIssuesNoRequest(t *testing.T) {
	m, log := adminModel(t, nil)
	m.view = viewNote
	m.loadNoteIntoEditor(model.Note{ID: 7, Title: "The Heart", Category: "anatomy"})
	m.modal = modalConfirmDelete
	m.confirmFocus = confirmFocusCancel

	m, cmd := deliver(t, m, key("n"))
	runCmd(cmd)

	if log.count() != 0 {
		t.Fatalf("declining must not delete, got %v", log.paths)
	}
	if m.modal != modalNone {
		t.Fatal("modal should close")
	}
	if m.view != viewNote {
		t.Fatal("declining leaves the current view untouched")
	}
}

func TestConfirmedDeleteNavigatesToLibrary(t *testing.T) {
	m, log := adminModel(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Note deleted successfully!"}`))
	})
	m.view = viewNote
	m.categoryKey = "anatomy"
	m.categoryName = "Anatomy"
	m.loadNoteIntoEditor(model.Note{ID: 7, Title: "The Heart", Category: "anatomy"})
	m.modal = modalConfirmDelete

	m, cmd := deliver(t, m, key("y"))
	msgs := runCmd(cmd)

	if log.count() != 1 || log.methods[0] != http.MethodDelete || !strings.HasPrefix(log.paths[0], "/api/note/7") {
		t.Fatalf("expected DELETE /api/note/7, got %v %v", log.methods, log.paths)
	}

	m, cmd = deliver(t, m, msgs...)
	if m.view != viewLibrary {
		t.Fatalf("expected library after delete, got %s", viewToString(m.view))
	}
	if m.noteLoaded {
		t.Fatal("the deleted note must not remain current")
	}
	if m.notice != "Note deleted." {
		t.Fatalf("unexpected notice %q", m.notice)
	}
	runCmd(cmd)
	if log.count() != 2 || !strings.HasPrefix(log.paths[1], "/api/categories") {
		t.Fatalf("expected a categories re-fetch, got %v", log.paths)
	}
}
