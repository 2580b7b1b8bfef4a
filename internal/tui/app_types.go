package tui

import (
	"clinroots-cli/internal/model"
)

type view int

const (
	viewHome view = iota
	viewLibrary
	viewCategory
	viewNote
	viewAdmin
)

func viewToString(v view) string {
	switch v {
	case viewHome:
		return "home"
	case viewLibrary:
		return "library"
	case viewCategory:
		return "category"
	case viewNote:
		return "note"
	case viewAdmin:
		return "admin"
	}
	return "?"
}

type modalKind int

const (
	modalNone modalKind = iota
	modalLogin
	modalNoteCrud
	modalConfirmDelete
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// editField names the designated editable regions of a note card.
type editField int

const (
	fieldTitle editField = iota
	fieldContent
)

func (f editField) String() string {
	if f == fieldTitle {
		return "title"
	}
	return "content"
}

// noteFocus tracks which region of the open note holds input focus.
// Moving focus off a region is the save trigger for live edits.
type noteFocus int

const (
	focusNone noteFocus = iota
	focusTitle
	focusContent
)

type loginFocus int

const (
	loginFocusEmail loginFocus = iota
	loginFocusPassword
	loginFocusSubmit
)

type crudFocus int

const (
	crudFocusTitle crudFocus = iota
	crudFocusCategory
	crudFocusContent
	crudFocusSubmit
	crudFocusCancel
)

// Messages produced by tea.Cmd API calls. Every response re-enters Update as
// one of these, so all state transitions happen in a single place.

type categoriesMsg struct {
	cats []model.Category
	err  error
}

type notesMsg struct {
	category string
	notes    []model.NoteSummary
	err      error
}

type noteMsg struct {
	id   int
	note model.Note
	err  error
}

type loginDoneMsg struct {
	user model.User
	err  error
}

type logoutDoneMsg struct{}

type saveDoneMsg struct {
	noteID int
	field  editField
	seq    int
	err    error
}

type crudPrefillMsg struct {
	noteID *int
	note   model.Note
	keys   []string
	err    error
}

type crudSavedMsg struct {
	created bool
	err     error
}

type deleteDoneMsg struct {
	err error
}

type statsMsg struct {
	stats model.AdminStats
	top   []model.TopNote
	err   error
}

type searchResultMsg struct {
	seq   int
	notes []model.NoteSummary
	err   error
}

type flashDoneMsg struct{ seq int }
