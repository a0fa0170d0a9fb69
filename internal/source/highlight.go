package source

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainText is the language label used when no lexer recognizes the input.
const PlainText = "Plain text"

// HighlightedLine is one source line split into colored tokens.
type HighlightedLine struct {
	Tokens []Token
}

// Token is a syntax-highlighted chunk of text.
type Token struct {
	Text  string
	Color string // hex color, empty for default
}

// Plain returns the concatenated plain text of all tokens.
func (hl HighlightedLine) Plain() string {
	var b strings.Builder
	for _, t := range hl.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// DetectLanguage names the language of text, preferring the file name and falling
// back to content analysis for pasted snippets. Display only; the metrics never
// depend on it.
func DetectLanguage(name, text string) string {
	if l := lexerFor(name, text); l != nil {
		return l.Config().Name
	}
	return PlainText
}

// Highlight applies syntax highlighting to the input's lines.
// It returns exactly one HighlightedLine per line.
func (in Input) Highlight() []HighlightedLine {
	lines := in.Lines()
	lexer := lexerFor(in.Name, in.Text)
	if lexer == nil {
		return plainLines(lines)
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return plainLines(lines)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	result := make([]HighlightedLine, 0, len(lines))
	current := HighlightedLine{}

	for _, token := range iterator.Tokens() {
		// tokens may span several lines
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result = append(result, current)
				current = HighlightedLine{}
			}
			if part != "" {
				current.Tokens = append(current.Tokens, Token{
					Text:  part,
					Color: tokenColor(style, token.Type),
				})
			}
		}
	}
	result = append(result, current)

	// lexers may add or swallow a trailing newline
	for len(result) < len(lines) {
		result = append(result, HighlightedLine{})
	}
	return result[:len(lines)]
}

func plainLines(lines []string) []HighlightedLine {
	result := make([]HighlightedLine, len(lines))
	for i, line := range lines {
		result[i] = HighlightedLine{Tokens: []Token{{Text: line}}}
	}
	return result
}

func lexerFor(name, text string) chroma.Lexer {
	var lexer chroma.Lexer
	if name != "" && name != StdinName {
		lexer = lexers.Match(name)
		if lexer == nil {
			if ext := filepath.Ext(name); ext != "" {
				lexer = lexers.Match("file" + ext)
			}
		}
	}
	if lexer == nil && strings.TrimSpace(text) != "" {
		lexer = lexers.Analyse(text)
	}
	return lexer
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
