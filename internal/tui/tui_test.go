package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/scoring"
	"github.com/sprite-ai/bugalert/internal/source"
)

const testCode = `def check(x, y):
    if x and y:
        return True
    return False
`

func testScorer() *scoring.Scorer {
	return scoring.New(scoring.WithConfidence(scoring.FixedConfidence(90)))
}

func setupModel(t *testing.T, text string) Model {
	t.Helper()
	m := New(Options{
		Scorer: testScorer(),
		Input:  source.Input{Name: "check.py", Text: text},
	})
	// Simulate window size
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return newM.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	newM, cmd := m.Update(msg)
	return newM.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// analyzed drives a full analysis by running the returned command's message
// back through Update.
func analyzed(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.state != stateAnalyzing {
		t.Fatalf("expected analyzing state, got %d", m.state)
	}
	done := analyze(m.scorer, m.input(), 0)()
	newM, _ := m.Update(done)
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t, testCode)

	if m.state != stateIdle {
		t.Errorf("expected idle state, got %d", m.state)
	}
	if !m.editor.Focused() {
		t.Error("expected editor to start focused")
	}
	if m.editor.Value() != testCode {
		t.Errorf("expected preloaded code, got %q", m.editor.Value())
	}
	if m.Init() == nil {
		t.Error("expected a blink command from Init")
	}
}

func TestAnalyzeFlow(t *testing.T) {
	m := setupModel(t, testCode)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.state != stateAnalyzing {
		t.Fatalf("expected analyzing state, got %d", m.state)
	}
	if cmd == nil {
		t.Fatal("expected spinner and analysis commands")
	}
	if !strings.Contains(m.View(), "Analyzing code") {
		t.Error("expected analyzing indicator in view")
	}

	// A second request while running is ignored.
	again, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil || again.state != stateAnalyzing {
		t.Error("expected duplicate analyze to be ignored")
	}

	done := analyze(m.scorer, m.input(), 0)().(analysisDoneMsg)
	newM, _ := m.Update(done)
	m = newM.(Model)

	if m.state != stateDone {
		t.Fatalf("expected done state, got %d", m.state)
	}
	if m.editor.Focused() {
		t.Error("expected editor to blur after results arrive")
	}
	want := testScorer().Predict(testCode)
	if m.result.BugProbability != want.BugProbability {
		t.Errorf("expected probability %d, got %d", want.BugProbability, m.result.BugProbability)
	}
	if m.result.Confidence != 90 {
		t.Errorf("expected confidence 90, got %d", m.result.Confidence)
	}
	if len(m.code) != len(strings.Split(testCode, "\n")) {
		t.Errorf("expected one highlighted line per input line, got %d", len(m.code))
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	m := setupModel(t, "   \n")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if m.state != stateIdle {
		t.Errorf("expected idle state, got %d", m.state)
	}
	if m.err != source.ErrEmpty {
		t.Errorf("expected ErrEmpty, got %v", m.err)
	}
	if !strings.Contains(m.View(), source.ErrEmpty.Error()) {
		t.Error("expected error in view")
	}
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m := setupModel(t, testCode)
	_, cmd := m.Update(m.spinner.Tick())
	if cmd != nil {
		t.Error("expected idle model to drop spinner ticks")
	}
}

func TestLoadSample(t *testing.T) {
	m := setupModel(t, "")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.filename != source.SampleName {
		t.Errorf("expected filename %q, got %q", source.SampleName, m.filename)
	}
	if m.editor.Value() != source.Sample().Text {
		t.Error("expected sample code in editor")
	}

	m = analyzed(t, m)
	if m.analyzed.Name != source.SampleName {
		t.Errorf("expected analyzed name %q, got %q", source.SampleName, m.analyzed.Name)
	}
	if m.result.Metrics.ClassCount != 1 {
		t.Errorf("expected 1 class in sample, got %d", m.result.Metrics.ClassCount)
	}
}

func TestEditingDropsLoadedName(t *testing.T) {
	m := setupModel(t, "")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.input().Name != source.SampleName {
		t.Fatalf("expected sample name before editing, got %q", m.input().Name)
	}

	m, _ = press(m, runes("x"))
	if name := m.input().Name; name != "" {
		t.Errorf("expected edited code to be unnamed, got %q", name)
	}
	if strings.Contains(m.renderEditor(70, 30), source.SampleName) {
		t.Error("expected editor title to drop the sample name")
	}

	m = analyzed(t, m)
	if m.analyzed.Name != "" {
		t.Errorf("expected analyzed input to be unnamed, got %q", m.analyzed.Name)
	}
}

func TestTabNavigation(t *testing.T) {
	m := analyzed(t, setupModel(t, testCode))

	if m.tab != tabOverview {
		t.Fatalf("expected overview tab, got %d", m.tab)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabMetrics {
		t.Errorf("expected metrics tab, got %d", m.tab)
	}

	m, _ = press(m, runes("l"))
	m, _ = press(m, runes("l"))
	if m.tab != tabCode {
		t.Errorf("expected code tab, got %d", m.tab)
	}

	// Wraps around
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabOverview {
		t.Errorf("expected overview after wrap, got %d", m.tab)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != tabCode {
		t.Errorf("expected code tab after prev, got %d", m.tab)
	}
}

func TestCodeScrolling(t *testing.T) {
	m := analyzed(t, setupModel(t, testCode))
	m.tab = tabCode

	m, _ = press(m, runes("j"))
	if m.scrollOffset != 1 {
		t.Errorf("expected scrollOffset 1, got %d", m.scrollOffset)
	}

	m, _ = press(m, runes("k"))
	m, _ = press(m, runes("k"))
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 at top, got %d", m.scrollOffset)
	}

	for i := 0; i < 20; i++ {
		m, _ = press(m, runes("j"))
	}
	if m.scrollOffset != len(m.code)-1 {
		t.Errorf("expected scroll to stop at last line, got %d", m.scrollOffset)
	}
}

func TestEditorCapturesKeys(t *testing.T) {
	m := setupModel(t, "")

	// While editing, q is text, not quit.
	m, cmd := press(m, runes("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q should not quit while editing")
		}
	}
	if m.editor.Value() != "q" {
		t.Errorf("expected editor to receive input, got %q", m.editor.Value())
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.editor.Focused() {
		t.Error("expected esc to leave the editor")
	}

	m, _ = press(m, runes("e"))
	if !m.editor.Focused() {
		t.Error("expected e to focus the editor")
	}
}

func TestQuit(t *testing.T) {
	m := analyzed(t, setupModel(t, testCode))

	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewRenders(t *testing.T) {
	m := analyzed(t, setupModel(t, testCode))

	view := m.View()
	for _, want := range []string{"check.py", "Bug Probability", "RISK", "Overview", "Recommendations"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m.tab = tabMetrics
	if !strings.Contains(m.View(), "Cyclomatic Complexity") {
		t.Error("expected metrics tab to list complexity")
	}

	m.tab = tabRecommendations
	if !strings.Contains(m.View(), "Low comment ratio") {
		t.Error("expected recommendations tab to show advice")
	}

	m.tab = tabCode
	if !strings.Contains(m.View(), "return") {
		t.Error("expected code tab to show source")
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{Scorer: testScorer()})
	if m.View() != "Loading..." {
		t.Errorf("expected loading view, got %q", m.View())
	}
}

func TestHelpToggle(t *testing.T) {
	m := analyzed(t, setupModel(t, testCode))

	m, _ = press(m, runes("?"))
	if !m.showHelp {
		t.Error("expected help to be shown")
	}

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help view to contain shortcuts")
	}

	m, _ = press(m, runes("?"))
	if m.showHelp {
		t.Error("expected help to close")
	}
}

func TestRiskColor(t *testing.T) {
	if RiskColor(model.RiskHigh) == RiskColor(model.RiskLow) {
		t.Error("expected distinct colors for high and low risk")
	}
}
