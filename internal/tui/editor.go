package tui

// editState is the per-note live-edit capability state. The registry is the
// single source of truth for which rendered notes accept direct edits;
// capability is never re-derived by scanning rendered output.
type editState int

const (
	editReadOnly editState = iota
	editEditable
	editSaving
	editSaveOK
	editSaveFailed
)

type editorRegistry struct {
	states map[int]editState
}

func newEditorRegistry() editorRegistry {
	return editorRegistry{states: map[int]editState{}}
}

func (r editorRegistry) state(id int) editState {
	return r.states[id] // absent => editReadOnly (zero value)
}

// sync replaces the registry transactionally whenever the rendered note set
// or the acting identity changes. Privileged identities get Editable for
// every rendered note; everyone else is ReadOnly. An in-flight save for a
// retained note keeps its state so a settling response still matches.
func (r *editorRegistry) sync(ids []int, privileged bool) {
	next := make(map[int]editState, len(ids))
	for _, id := range ids {
		if !privileged {
			next[id] = editReadOnly
			continue
		}
		if prev, ok := r.states[id]; ok && prev != editReadOnly {
			next[id] = prev
		} else {
			next[id] = editEditable
		}
	}
	r.states = next
}

// beginSave moves a note into Saving. A save may start from Editable or
// from a settled state whose tint has not reverted yet; it may not start
// from ReadOnly (no identity may produce a write) or while another save for
// the note is in flight.
func (r *editorRegistry) beginSave(id int) bool {
	switch r.states[id] {
	case editEditable, editSaveOK, editSaveFailed:
		r.states[id] = editSaving
		return true
	}
	return false
}

// settle applies a save result. A result for a note no longer in the
// registry (navigated away, list replaced) is a no-op rather than an error.
func (r *editorRegistry) settle(id int, ok bool) {
	if _, tracked := r.states[id]; !tracked {
		return
	}
	if r.states[id] != editSaving {
		return
	}
	if ok {
		r.states[id] = editSaveOK
	} else {
		r.states[id] = editSaveFailed
	}
}

// flashDone reverts the transient settled state back to Editable.
func (r *editorRegistry) flashDone(id int) {
	switch r.states[id] {
	case editSaveOK, editSaveFailed:
		r.states[id] = editEditable
	}
}

// revokeAll drops every note to ReadOnly, used on logout and on credential
// rejection mid-save.
func (r *editorRegistry) revokeAll() {
	for id := range r.states {
		r.states[id] = editReadOnly
	}
}
