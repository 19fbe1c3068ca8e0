// Package catalog provides a read-only view of the note document tree.
//
// The directory listing is the catalog: there is no index file. Listing
// walks the tree rooted at the document root, folders first then by name,
// skipping version-control and hidden entries. A companion Watcher
// republishes filesystem changes on the event bus so a UI can refresh its
// file tree when notes appear, move, or disappear.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ddbaker/papyru2/internal/errors"
	"github.com/ddbaker/papyru2/internal/logging"
	"github.com/ddbaker/papyru2/internal/naming"
)

// Entry is one node of the document tree.
type Entry struct {
	Path     string // absolute path
	Name     string
	IsDir    bool
	Children []Entry // populated for directories
}

// Catalog lists the document tree. It never mutates the tree; all writes
// go through the dispatcher.
type Catalog struct {
	root   string
	logger *logging.Logger
}

// New creates a Catalog over the given document root. A nil logger
// disables tracing.
func New(root string, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Catalog{
		root:   root,
		logger: logger.WithComponent("catalog"),
	}
}

// Root returns the document root the catalog reads from.
func (c *Catalog) Root() string {
	return c.root
}

// List returns the full document tree. A missing root yields an empty
// tree rather than an error; the first note creation will materialize it.
func (c *Catalog) List() ([]Entry, error) {
	if _, err := os.Stat(c.root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "stat document root %s", c.root)
	}
	return c.listDir(c.root)
}

func (c *Catalog) listDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if skipName(name) {
			continue
		}

		path := filepath.Join(dir, name)
		entry := Entry{
			Path:  path,
			Name:  name,
			IsDir: de.IsDir(),
		}
		if de.IsDir() {
			children, err := c.listDir(path)
			if err != nil {
				// A directory that vanished mid-walk is not fatal.
				c.logger.Warn("skipping unreadable directory", "path", path, "error", err)
				continue
			}
			entry.Children = children
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Notes returns the paths of all note files in the tree, sorted.
func (c *Catalog) Notes() ([]string, error) {
	tree, err := c.List()
	if err != nil {
		return nil, err
	}

	var notes []string
	var walk func(entries []Entry)
	walk = func(entries []Entry) {
		for _, e := range entries {
			if e.IsDir {
				walk(e.Children)
				continue
			}
			if strings.EqualFold(filepath.Ext(e.Name), naming.NoteExtension) {
				notes = append(notes, e.Path)
			}
		}
	}
	walk(tree)

	sort.Strings(notes)
	return notes, nil
}

// skipName filters entries that are not part of the user-visible tree:
// version control metadata, hidden files, and atomic-write temporaries.
func skipName(name string) bool {
	if name == ".git" {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return strings.HasSuffix(name, ".tmp")
}
