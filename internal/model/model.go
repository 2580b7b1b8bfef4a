package model

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated identity as reported by the backend.
type User struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Category is read-only display metadata for a note grouping.
// Key is the stable identifier used in note records and query params;
// Name is the human-facing label.
type Category struct {
	Key         string `json:"db_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
	NoteCount   int    `json:"notes"`
}

// NoteSummary is the listing shape returned by /api/notes.
type NoteSummary struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Views    int    `json:"views"`
}

// Note is the full detail shape returned by /api/note/{id}.
// Content is the serialized rich-text body; the client treats it as opaque
// markup and never parses it beyond rendering.
type Note struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Views    int    `json:"views"`
}

// AdminStats are the dashboard aggregates from /api/admin_stats.
type AdminStats struct {
	TotalNotes int    `json:"total_notes"`
	TotalUsers int    `json:"total_users"`
	TotalViews int    `json:"total_views"`
	LastUpdate string `json:"last_update"`
}

// TopNote is one row of the /api/note_views dashboard listing.
type TopNote struct {
	Title string `json:"title"`
	Views int    `json:"views"`
}
