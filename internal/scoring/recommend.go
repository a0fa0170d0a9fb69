package scoring

import "github.com/sprite-ai/bugalert/internal/model"

// Advisory messages, in display order.
const (
	AdviceComplexity   = "High cyclomatic complexity detected. Consider breaking down complex functions into smaller, more manageable pieces."
	AdviceNesting      = "Deep nesting detected. Refactor nested conditions using early returns or guard clauses."
	AdviceSize         = "Large file detected. Consider splitting into smaller, focused modules."
	AdviceComments     = "Low comment ratio. Add more documentation to improve code maintainability."
	AdviceDuplication  = "Code duplication detected. Extract common logic into reusable functions."
	AdviceFunctionSize = "Large functions detected. Break down functions to improve readability and testability."
	AdviceLooksGood    = "Code structure looks good! Continue following best practices for maintainable code."
)

// recommendation fires its advice when the condition holds for the raw metrics.
type recommendation struct {
	name   string
	when   func(m model.CodeMetrics) bool
	advice string
}

var recommendations = []recommendation{
	{"complexity", func(m model.CodeMetrics) bool { return m.CyclomaticComplexity > 10 }, AdviceComplexity},
	{"nesting", func(m model.CodeMetrics) bool { return m.NestingDepth > 4 }, AdviceNesting},
	{"size", func(m model.CodeMetrics) bool { return m.LinesOfCode > 200 }, AdviceSize},
	// Text without a single line of code has nothing to document.
	{"comments", func(m model.CodeMetrics) bool { return m.LinesOfCode > 0 && m.CommentRatio < 10 }, AdviceComments},
	{"duplication", func(m model.CodeMetrics) bool { return m.DuplicateLines > 5 }, AdviceDuplication},
	{"function_size", func(m model.CodeMetrics) bool {
		return m.FunctionCount > 0 && float64(m.LinesOfCode)/float64(m.FunctionCount) > 25
	}, AdviceFunctionSize},
}

// Recommend returns the advice for m in fixed order. The list is never empty.
func Recommend(m model.CodeMetrics) []string {
	var out []string
	for _, r := range recommendations {
		if r.when(m) {
			out = append(out, r.advice)
		}
	}
	if len(out) == 0 {
		out = append(out, AdviceLooksGood)
	}
	return out
}
