package tui

import (
	"clinroots-cli/internal/api"
	"clinroots-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	client *api.Client

	user     model.User
	loggedIn bool

	width  int
	height int

	view  view
	modal modalKind

	categoriesList list.Model
	notesList      list.Model

	// Active category (key + display name) while in viewCategory.
	categoryKey  string
	categoryName string
	notesLoaded  bool
	notesEmpty   bool

	// Search (library view).
	searchInput   textinput.Model
	searchSeq     int
	suggestions   []model.NoteSummary
	suggestionIdx int

	// Open note (viewNote). pendingNoteID is the detail fetch we are
	// waiting on; responses for anything else are not observed.
	note          model.Note
	noteLoaded    bool
	pendingNoteID int

	// Live edit. The registry gates capability per note id; the inputs below
	// are the two designated regions of the open note.
	editor       editorRegistry
	titleInput   textinput.Model
	contentArea  textarea.Model
	noteFocus    noteFocus
	lastSaved    api.UpdatePayload
	inFlight     api.UpdatePayload
	saveSeqs     map[int]int // per note id; responses for older seqs paint nothing
	flashField   editField
	flashKind    string // "ok" | "err"
	flashSeq     int
	flashFor     int // note id the flash belongs to
	hasFlash     bool
	saveErrText  string

	// Login modal.
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    loginFocus
	loginErr      string

	// CRUD modal. crudForID == nil means create mode.
	crudForID   *int
	crudTitle   textinput.Model
	crudContent textarea.Model
	crudKeys    []string
	crudKeyIdx  int
	crudFocus   crudFocus
	crudErr     string

	confirmFocus confirmModalFocus

	// Admin dashboard.
	stats       model.AdminStats
	topNotes    []model.TopNote
	statsLoaded bool

	// One-time user-facing notice (e.g. "Session expired").
	notice  string
	errText string
}

func newAppModel(client *api.Client) appModel {
	m := appModel{
		client:   client,
		view:     viewHome,
		modal:    modalNone,
		editor:   newEditorRegistry(),
		saveSeqs: map[int]int{},
	}

	// Restoring a persisted session on startup mirrors a page reload in the
	// browser client: identity comes back without re-authenticating.
	if user, _, ok := client.Session.Restore(); ok {
		m.user = user
		m.loggedIn = true
	}

	m.categoriesList = newList("Categories", []list.Item{})
	m.notesList = newList("Notes", []list.Item{})

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search notes…"
	m.searchInput.CharLimit = 120
	m.searchInput.Width = 40

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 60

	m.contentArea = textarea.New()
	m.contentArea.Placeholder = "Content"
	m.contentArea.CharLimit = 0
	m.contentArea.SetWidth(72)
	m.contentArea.SetHeight(12)
	m.contentArea.ShowLineNumbers = false

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "email"
	m.emailInput.CharLimit = 120
	m.emailInput.Width = 32

	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "password"
	m.passwordInput.CharLimit = 120
	m.passwordInput.Width = 32
	m.passwordInput.EchoMode = textinput.EchoPassword

	m.crudTitle = textinput.New()
	m.crudTitle.Placeholder = "Title"
	m.crudTitle.CharLimit = 200
	m.crudTitle.Width = 48

	m.crudContent = textarea.New()
	m.crudContent.Placeholder = "Content"
	m.crudContent.CharLimit = 0
	m.crudContent.SetWidth(64)
	m.crudContent.SetHeight(10)
	m.crudContent.ShowLineNumbers = false

	return m
}

// renderedNoteIDs is the set of note ids currently bound to the view: the
// category listing plus the open note. The editor registry is synced from
// exactly this set.
func (m appModel) renderedNoteIDs() []int {
	var ids []int
	for _, it := range m.notesList.Items() {
		if ni, ok := it.(noteItem); ok {
			ids = append(ids, ni.note.ID)
		}
	}
	if m.noteLoaded {
		ids = append(ids, m.note.ID)
	}
	return ids
}

func (m *appModel) syncEditCapability() {
	m.editor.sync(m.renderedNoteIDs(), m.loggedIn && m.user.IsAdmin())
}

// loadNoteIntoEditor seeds the designated regions and the last-saved
// snapshot from a freshly fetched note.
func (m *appModel) loadNoteIntoEditor(n model.Note) {
	m.note = n
	m.noteLoaded = true
	m.titleInput.SetValue(n.Title)
	m.contentArea.SetValue(n.Content)
	m.noteFocus = focusNone
	m.titleInput.Blur()
	m.contentArea.Blur()
	m.lastSaved = api.UpdatePayload{
		Title:       n.Title,
		Category:    n.Category,
		Content:     n.Content,
		IsPublished: true,
	}
	m.syncEditCapability()
}

// currentPayload packages the open note's regions for a live-edit save.
// Sibling regions ride along so the backend always receives a full record,
// and every live edit publishes immediately.
func (m appModel) currentPayload() api.UpdatePayload {
	return api.UpdatePayload{
		Title:       m.titleInput.Value(),
		Category:    m.note.Category,
		Content:     m.contentArea.Value(),
		IsPublished: true,
	}
}

func (m appModel) dirty() bool {
	p := m.currentPayload()
	return p.Title != m.lastSaved.Title || p.Content != m.lastSaved.Content
}
