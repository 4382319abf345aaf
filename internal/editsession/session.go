// Package editsession tracks the single item, if any, being edited inline.
package editsession

// State is the session's mode.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// Session is a two-state machine: Idle, or Editing one item with a draft.
// The zero value is Idle.
type Session struct {
	state State
	id    string
	draft string
}

// Begin starts editing id with currentText as the draft. An edit already in
// progress is dropped along with its draft.
func (s *Session) Begin(id, currentText string) {
	s.state = Editing
	s.id = id
	s.draft = currentText
}

// SetDraft replaces the pending text. Ignored when idle.
func (s *Session) SetDraft(text string) {
	if s.state != Editing {
		return
	}
	s.draft = text
}

// Save ends the edit and returns the item and text to write back.
func (s *Session) Save() (id, text string, ok bool) {
	if s.state != Editing {
		return "", "", false
	}
	id, text = s.id, s.draft
	s.reset()
	return id, text, true
}

// Cancel ends the edit and discards the draft. Escape and blur land here too.
func (s *Session) Cancel() bool {
	if s.state != Editing {
		return false
	}
	s.reset()
	return true
}

// Forget ends the edit if it targets id (the item went away).
func (s *Session) Forget(id string) bool {
	if s.state != Editing || s.id != id {
		return false
	}
	s.reset()
	return true
}

func (s *Session) State() State { return s.state }

// EditingID reports the item being edited.
func (s *Session) EditingID() (string, bool) {
	return s.id, s.state == Editing
}

func (s *Session) Draft() string { return s.draft }

func (s *Session) reset() {
	s.state = Idle
	s.id = ""
	s.draft = ""
}
