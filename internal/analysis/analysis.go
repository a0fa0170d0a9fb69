// Package analysis extracts lexical complexity metrics from raw source text.
//
// Nothing here parses a language: every metric is a pass over the lines or the
// whole text driven by the rule tables in rules.go.
package analysis

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sprite-ai/bugalert/internal/model"
)

// Source is the pre-split view of an input text shared by all passes.
type Source struct {
	Text    string
	Lines   []string // raw lines, split on "\n"
	Trimmed []string // Lines with surrounding whitespace removed
}

// NewSource splits text into lines.
func NewSource(text string) *Source {
	lines := strings.Split(text, "\n")
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	return &Source{Text: text, Lines: lines, Trimmed: trimmed}
}

// Pass computes one metric of m from src.
type Pass struct {
	Name string
	Run  func(src *Source, m *model.CodeMetrics)
}

// AllPasses returns the ordered list of metric passes. Passes are independent
// of each other; the order only matters for reading.
func AllPasses() []Pass {
	return []Pass{
		{"lines", LinesPass},
		{"comments", CommentPass},
		{"functions", FunctionPass},
		{"classes", ClassPass},
		{"complexity", ComplexityPass},
		{"nesting", NestingPass},
		{"duplicates", DuplicatePass},
	}
}

// Extract runs every pass over text. It never fails: empty input yields zero
// values with a base complexity of 1.
func Extract(text string) model.CodeMetrics {
	src := NewSource(text)
	var m model.CodeMetrics
	for _, p := range AllPasses() {
		p.Run(src, &m)
	}
	return m
}

// LinesPass counts non-blank lines.
func LinesPass(src *Source, m *model.CodeMetrics) {
	n := 0
	for _, t := range src.Trimmed {
		if t != "" {
			n++
		}
	}
	m.LinesOfCode = n
}

// CommentPass sets the percentage of lines (blank ones included) that are comments.
func CommentPass(src *Source, m *model.CodeMetrics) {
	total := len(src.Lines)
	if total == 0 {
		m.CommentRatio = 0
		return
	}
	comments := 0
	for _, t := range src.Trimmed {
		if isCommentLine(t) {
			comments++
		}
	}
	m.CommentRatio = int(math.Round(float64(comments) / float64(total) * 100))
}

func isCommentLine(trimmed string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// FunctionPass counts function-like declarations.
func FunctionPass(src *Source, m *model.CodeMetrics) {
	m.FunctionCount = functionPattern.CountMatches(src.Text)
}

// ClassPass counts class-like declarations.
func ClassPass(src *Source, m *model.CodeMetrics) {
	m.ClassCount = classPattern.CountMatches(src.Text)
}

// ComplexityPass approximates cyclomatic complexity: one base path plus one per
// decision token occurrence.
func ComplexityPass(src *Source, m *model.CodeMetrics) {
	complexity := 1
	for _, r := range complexityRules {
		complexity += r.CountMatches(src.Text)
	}
	m.CyclomaticComplexity = complexity
}

// NestingPass records the deepest running block level. A line opens a block if it
// contains "{" or ends with ":", and closes one if it contains "}". Brackets are not
// matched against each other and the level never drops below zero.
func NestingPass(src *Source, m *model.CodeMetrics) {
	depth, maxDepth := 0, 0
	for _, t := range src.Trimmed {
		if strings.Contains(t, blockOpenBrace) || strings.HasSuffix(t, blockOpenColon) {
			depth++
			maxDepth = max(maxDepth, depth)
		}
		if strings.Contains(t, blockCloseBrace) {
			depth = max(0, depth-1)
		}
	}
	m.NestingDepth = maxDepth
}

// DuplicatePass counts repeats of substantive lines. The first occurrence of a
// line is free; every later copy counts once.
func DuplicatePass(src *Source, m *model.CodeMetrics) {
	seen := make(map[string]int)
	dups := 0
	for _, t := range src.Trimmed {
		if utf8.RuneCountInString(t) <= minDuplicateLineLength {
			continue
		}
		if seen[t] > 0 {
			dups++
		}
		seen[t]++
	}
	m.DuplicateLines = dups
}
