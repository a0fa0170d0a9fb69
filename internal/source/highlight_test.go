package source

import (
	"testing"
)

func TestHighlight(t *testing.T) {
	in := Input{
		Name: "main.go",
		Text: "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
	}
	lines := in.Lines()

	highlighted := in.Highlight()

	if len(highlighted) != len(lines) {
		t.Fatalf("expected %d highlighted lines, got %d", len(lines), len(highlighted))
	}
	if len(highlighted[0].Tokens) == 0 {
		t.Error("expected tokens in first line")
	}
	if highlighted[0].Plain() != "package main" {
		t.Errorf("plain text mismatch: %q", highlighted[0].Plain())
	}

	colored := false
	for _, tok := range highlighted[0].Tokens {
		if tok.Color != "" {
			colored = true
		}
	}
	if !colored {
		t.Error("expected the package keyword to carry a color")
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	in := Input{Name: "unknown.xyz123", Text: "some content\nmore content"}
	highlighted := in.Highlight()

	if len(highlighted) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(highlighted))
	}
	if highlighted[0].Plain() != "some content" {
		t.Errorf("expected plain passthrough, got %q", highlighted[0].Plain())
	}
}

func TestHighlightTrailingNewline(t *testing.T) {
	in := Input{Name: "a.py", Text: "x = 1\n"}
	highlighted := in.Highlight()
	if len(highlighted) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(highlighted))
	}
	if highlighted[0].Plain() != "x = 1" {
		t.Errorf("plain text mismatch: %q", highlighted[0].Plain())
	}
}
