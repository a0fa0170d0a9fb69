// Package source loads the text handed to the analysis engine.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes caps a single input at 1 MiB.
const DefaultMaxBytes = 1 << 20

// StdinName is the display name used for text piped through standard input.
const StdinName = "stdin"

var (
	// ErrTooLarge is returned when an input exceeds the configured size cap.
	ErrTooLarge = errors.New("input exceeds size limit")
	// ErrEmpty is returned by callers that refuse blank input.
	ErrEmpty = errors.New("no code to analyze")
)

// Input is one source text plus the name it came from.
type Input struct {
	Name string // file name, "stdin", or empty for pasted text
	Text string
}

// Blank reports whether the input has no non-whitespace content.
func (in Input) Blank() bool {
	return strings.TrimSpace(in.Text) == ""
}

// Lines splits the text the same way the metric passes do.
func (in Input) Lines() []string {
	return strings.Split(in.Text, "\n")
}

// Language returns a display label for the input's language.
func (in Input) Language() string {
	return DetectLanguage(in.Name, in.Text)
}

// Read reads at most maxBytes from r. A maxBytes of 0 or less disables the cap.
func Read(r io.Reader, name string, maxBytes int64) (Input, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Input{}, fmt.Errorf("reading %s: %w", displayName(name), err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Input{}, fmt.Errorf("%s: %w (%d bytes)", displayName(name), ErrTooLarge, maxBytes)
	}
	return Input{Name: name, Text: string(data)}, nil
}

// Load reads path, or stdin when path is "-".
func Load(path string, stdin io.Reader, maxBytes int64) (Input, error) {
	if path == "-" {
		return Read(stdin, StdinName, maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Input{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Input{}, fmt.Errorf("%s is a directory; bugalert analyzes one file at a time", path)
	}

	return Read(f, filepath.Base(path), maxBytes)
}

func displayName(name string) string {
	if name == "" {
		return "input"
	}
	return name
}
