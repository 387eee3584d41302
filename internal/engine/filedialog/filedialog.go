// Package filedialog asks the user for the point-cloud file to open.
package filedialog

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"
)

// Prompter returns a path to open. An empty path with a nil error means the
// user declined to pick a file.
type Prompter interface {
	Prompt() (string, error)
}

// Filter restricts the files offered by the native dialog.
type Filter struct {
	Description string
	Extensions  []string
}

// Native shows the operating system's open-file dialog.
type Native struct {
	Title   string
	Filters []Filter
}

// NewNative returns a dialog offering text point clouds and all files.
func NewNative() *Native {
	return &Native{
		Title: "Open Point Cloud",
		Filters: []Filter{
			{Description: "Point Clouds", Extensions: []string{"txt", "xyz", "pts"}},
			{Description: "All Files", Extensions: []string{"*"}},
		},
	}
}

// Prompt blocks until the user picks a file or cancels.
func (n *Native) Prompt() (string, error) {
	b := dialog.File().Title(n.Title)
	for _, f := range n.Filters {
		b = b.Filter(f.Description, f.Extensions...)
	}

	path, err := b.Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}
	return path, nil
}

// Static returns a fixed path without asking, e.g. one given on the command
// line.
type Static string

// Prompt returns the path.
func (s Static) Prompt() (string, error) {
	return string(s), nil
}

// For returns a Static prompter when path is set and the native dialog
// otherwise.
func For(path string) Prompter {
	if path != "" {
		return Static(path)
	}
	return NewNative()
}
