package dispatch

import "time"

// Kind identifies a filesystem command.
type Kind string

const (
	KindCreate   Kind = "create"
	KindRename   Kind = "rename"
	KindAutosave Kind = "autosave"
)

// Command is a filesystem operation executed by the dispatcher's worker.
// The three implementations mirror the three mutations the engine performs:
// creating a note, renaming it, and flushing editor content.
type Command interface {
	Kind() Kind
}

// CreateCommand creates a new note file under the document root's daily
// directory.
type CreateCommand struct {
	// DocumentRoot is the root of the user's note tree.
	DocumentRoot string
	// Title is the raw title text; it is sanitized during resolution.
	Title string
	// Now is the creation instant, used for the daily directory and the
	// untitled fallback stem.
	Now time.Time
}

func (CreateCommand) Kind() Kind { return KindCreate }

// RenameCommand renames an existing note within its directory.
type RenameCommand struct {
	// CurrentPath is the note file being renamed.
	CurrentPath string
	// Title is the raw title text for the new name.
	Title string
	// Now is used for the untitled fallback stem.
	Now time.Time
}

func (RenameCommand) Kind() Kind { return KindRename }

// AutosavePayload carries editor content to flush. It is serialized and
// decoded again before writing so any drift in its wire representation
// surfaces as an error instead of corrupt output.
type AutosavePayload struct {
	CurrentPath string `json:"current_path"`
	EditorText  string `json:"editor_text"`
}

// AutosaveCommand atomically writes editor content to the current note.
type AutosaveCommand struct {
	Payload AutosavePayload
}

func (AutosaveCommand) Kind() Kind { return KindAutosave }

// Result is the successful outcome of a command. Path is the file the
// operation settled on; for creates and renames it may differ from what the
// title alone would produce.
type Result struct {
	Kind Kind
	Path string
}
