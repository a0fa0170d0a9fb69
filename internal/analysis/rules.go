package analysis

import (
	"regexp"
	"strings"
)

// Rule is a named lexical pattern used by one of the metric passes.
// When Only is set, a match counts only if its text equals Only.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Only    string
}

func rule(name, expr string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(expr)}
}

// Function-like declarations across common language families.
var functionRules = []Rule{
	rule("def", `\bdef\s+\w+`),                    // Python, Ruby
	rule("function", `\bfunction\s+\w+`),          // JavaScript, PHP, Lua
	rule("func", `\bfunc\s+(?:\([^)]*\)\s*)?\w+`), // Go, Swift
	rule("fn", `\bfn\s+\w+`),                      // Rust
	rule("fun", `\bfun\s+\w+`),                    // Kotlin
	rule("sub", `\bsub\s+\w+`),                    // Perl, VB
	// Any assignment target, with or without a declarator. The target must sit
	// right before a single "=", so "==", ">=" and "<=" never start a match.
	rule("arrow_assign", `[\w.$]+\s*=\s*(?:async\s*)?(?:\([^)]*\)|[\w$]+)\s*=>`),
	rule("arrow_member", `\b\w+\s*:\s*(?:async\s*)?\([^)]*\)\s*=>`), // object literal members
}

// Class-like declarations.
var classRules = []Rule{
	rule("class", `\bclass\s+\w+`),
	rule("interface", `\binterface\s+\w+`),
	rule("struct", `\bstruct\s+\w+`),
	rule("trait", `\btrait\s+\w+`),
	rule("enum", `\benum\s+\w+`),
	rule("go_type", `\btype\s+\w+\s+(?:struct|interface)\b`),
}

// decisionToken is one entry of the cyclomatic complexity token set.
// Word tokens only match on identifier boundaries; symbolic tokens match literally.
type decisionToken struct {
	text string
	word bool
}

// Bare "else" is not a decision point.
var decisionTokens = []decisionToken{
	{"if", true},
	{"elif", true},
	{"elsif", true},
	{"for", true},
	{"while", true},
	{"try", true},
	{"except", true},
	{"catch", true},
	{"switch", true},
	{"case", true},
	{"and", true},
	{"or", true},
	{"&&", false},
	{"||", false},
	{"?", false},
}

// complexityRules is decisionTokens compiled once at init.
var complexityRules = compileDecisionTokens(decisionTokens)

func compileDecisionTokens(tokens []decisionToken) []Rule {
	rules := make([]Rule, 0, len(tokens))
	for _, tok := range tokens {
		quoted := regexp.QuoteMeta(tok.text)
		r := Rule{Name: tok.text}
		switch {
		case tok.word:
			r.Pattern = regexp.MustCompile(`\b` + quoted + `\b`)
		case tok.text == "?":
			// Ternary only. A run of "?" and "." is one match, so "?." and "??"
			// never equal the lone "?".
			r.Pattern = regexp.MustCompile(`\?[?.]*`)
			r.Only = tok.text
		default:
			r.Pattern = regexp.MustCompile(quoted)
		}
		rules = append(rules, r)
	}
	return rules
}

// Line prefixes that mark a whole line as a comment.
var commentPrefixes = []string{"#", "//"}

// Block markers for the nesting heuristic.
const (
	blockOpenBrace  = "{"
	blockOpenColon  = ":"
	blockCloseBrace = "}"
)

// Only lines longer than this (after trimming) are considered for duplication,
// so closers like "}" or "end" never count.
const minDuplicateLineLength = 10

// unionRule joins rules into one alternation so that counting over the whole
// text yields non-overlapping matches across the entire rule set.
func unionRule(name string, rules []Rule) Rule {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = "(?:" + r.Pattern.String() + ")"
	}
	return Rule{Name: name, Pattern: regexp.MustCompile(strings.Join(parts, "|"))}
}

var (
	functionPattern = unionRule("functions", functionRules)
	classPattern    = unionRule("classes", classRules)
)

// FunctionRules returns the function declaration rule table.
func FunctionRules() []Rule { return append([]Rule(nil), functionRules...) }

// ClassRules returns the class declaration rule table.
func ClassRules() []Rule { return append([]Rule(nil), classRules...) }

// ComplexityRules returns the compiled decision-point rule table.
func ComplexityRules() []Rule { return append([]Rule(nil), complexityRules...) }

// CountMatches returns the number of non-overlapping matches of r in text.
func (r Rule) CountMatches(text string) int {
	if r.Only == "" {
		return len(r.Pattern.FindAllStringIndex(text, -1))
	}
	n := 0
	for _, m := range r.Pattern.FindAllString(text, -1) {
		if m == r.Only {
			n++
		}
	}
	return n
}
