package display

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// TargetKind distinguishes rich composers from plain inputs.
type TargetKind int

const (
	// TargetComposer is a contenteditable composer; insertion appends at the end.
	TargetComposer TargetKind = iota + 1
	// TargetInput is a textarea or input; insertion replaces the value.
	TargetInput
)

// Target is an editable element that can receive a reply.
type Target interface {
	Kind() TargetKind
	// Attached reports whether the element is still part of the page.
	Attached() bool
	// InOverlay reports whether the element belongs to the reply overlay.
	InOverlay() bool
	Insert(text string) error
}

// Clipboard receives replies when no editable target is known.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// FileTarget treats a file as the reply box. A composer target appends to the
// file, an input target overwrites it.
type FileTarget struct {
	Path     string
	Composer bool
}

// Kind implements Target.
func (f FileTarget) Kind() TargetKind {
	if f.Composer {
		return TargetComposer
	}
	return TargetInput
}

// Attached implements Target. The file's directory must exist.
func (f FileTarget) Attached() bool {
	if f.Path == "" {
		return false
	}
	if info, err := os.Stat(f.Path); err == nil {
		return !info.IsDir()
	}
	dir, err := os.Stat(filepath.Dir(f.Path))
	return err == nil && dir.IsDir()
}

// InOverlay implements Target.
func (f FileTarget) InOverlay() bool {
	return false
}

// Insert implements Target.
func (f FileTarget) Insert(text string) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if f.Composer {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	file, err := os.OpenFile(f.Path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Path, err)
	}
	if _, err := file.WriteString(text); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return file.Close()
}
