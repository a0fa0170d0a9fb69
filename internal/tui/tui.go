// Package tui implements the Bubble Tea terminal user interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/scoring"
	"github.com/sprite-ai/bugalert/internal/source"
)

// state tracks the analysis lifecycle: idle, analyzing, then done.
type state int

const (
	stateIdle state = iota
	stateAnalyzing
	stateDone
)

type tab int

const (
	tabOverview tab = iota
	tabMetrics
	tabRecommendations
	tabCode
	numTabs
)

var tabNames = [numTabs]string{"Overview", "Metrics", "Recommendations", "Code"}

// Options configures the TUI.
type Options struct {
	Scorer *scoring.Scorer
	Input  source.Input  // preloaded into the editor
	Delay  time.Duration // simulated latency before results appear
}

// analysisDoneMsg carries a finished analysis back to Update.
type analysisDoneMsg struct {
	input  source.Input
	result model.PredictionResult
	code   []source.HighlightedLine
}

// Model is the top-level Bubble Tea model for bugalert.
type Model struct {
	scorer *scoring.Scorer
	delay  time.Duration

	editor   textarea.Model
	spinner  spinner.Model
	filename string // name of the loaded file, empty for typed code
	loaded   string // editor text as loaded; edits drop the filename

	state    state
	result   model.PredictionResult
	analyzed source.Input
	code     []source.HighlightedLine
	err      error

	// UI state
	width        int
	height       int
	tab          tab
	scrollOffset int // first visible line in the Code tab
	showHelp     bool
}

// New creates a new TUI model.
func New(opts Options) Model {
	scorer := opts.Scorer
	if scorer == nil {
		scorer = scoring.New()
	}

	editor := textarea.New()
	editor.Placeholder = "Paste or type code here, or press ctrl+s for a sample..."
	editor.MaxHeight = 0
	editor.SetValue(opts.Input.Text)

	m := Model{
		scorer:   scorer,
		delay:    opts.Delay,
		editor:   editor,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		filename: opts.Input.Name,
	}
	m.loaded = m.editor.Value()
	m.editor.Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case analysisDoneMsg:
		m.state = stateDone
		m.result = msg.result
		m.analyzed = msg.input
		m.code = msg.code
		m.scrollOffset = 0
		m.editor.Blur()
		return m, nil

	case spinner.TickMsg:
		if m.state != stateAnalyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, keys.Analyze):
		return m.startAnalysis()
	case key.Matches(msg, keys.Sample):
		m.loadSample()
		return m, nil
	}

	if m.editor.Focused() {
		if key.Matches(msg, keys.Blur) {
			m.editor.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, keys.Help, keys.Quit, keys.Blur) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Edit):
		return m, m.editor.Focus()

	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % numTabs
		m.scrollOffset = 0

	case key.Matches(msg, keys.PrevTab):
		m.tab = (m.tab + numTabs - 1) % numTabs
		m.scrollOffset = 0

	case key.Matches(msg, keys.Down):
		if m.tab == tabCode && m.scrollOffset < len(m.code)-1 {
			m.scrollOffset++
		}

	case key.Matches(msg, keys.Up):
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}

	case key.Matches(msg, keys.Help):
		m.showHelp = true
	}

	return m, nil
}

// input is the editor content as an analysis input.
func (m Model) input() source.Input {
	return source.Input{Name: m.name(), Text: m.editor.Value()}
}

// name is the loaded filename while the editor still holds the loaded text.
func (m Model) name() string {
	if m.editor.Value() != m.loaded {
		return ""
	}
	return m.filename
}

// startAnalysis runs the engine off the UI goroutine. A second request while one
// is in flight is ignored.
func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	if m.state == stateAnalyzing {
		return m, nil
	}
	in := m.input()
	if in.Blank() {
		m.err = source.ErrEmpty
		return m, nil
	}

	m.err = nil
	m.state = stateAnalyzing
	return m, tea.Batch(m.spinner.Tick, analyze(m.scorer, in, m.delay))
}

func analyze(scorer *scoring.Scorer, in source.Input, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		if delay > 0 {
			time.Sleep(delay)
		}
		return analysisDoneMsg{
			input:  in,
			result: scorer.Predict(in.Text),
			code:   in.Highlight(),
		}
	}
}

func (m *Model) loadSample() {
	sample := source.Sample()
	m.filename = sample.Name
	m.editor.SetValue(sample.Text)
	m.loaded = m.editor.Value()
	m.err = nil
}

func (m *Model) resize() {
	editorWidth := m.editorWidth()
	m.editor.SetWidth(max(editorWidth-4, 10)) // border + padding
	m.editor.SetHeight(max(m.height-5, 3))    // title + borders + status bar
}

func (m Model) editorWidth() int {
	return m.width / 2
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	editorWidth := m.editorWidth()
	resultWidth := m.width - editorWidth - 1 // -1 for gap

	editor := m.renderEditor(editorWidth, m.height-1)
	results := m.renderResults(resultWidth, m.height-1)

	main := lipgloss.JoinHorizontal(lipgloss.Top, editor, " ", results)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderEditor(width, height int) string {
	title := "Code"
	if name := m.name(); name != "" {
		title += ": " + name
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(title))
	b.WriteByte('\n')
	b.WriteString(m.editor.View())

	style := editorPaneStyle
	if m.editor.Focused() {
		style = editorPaneFocusedStyle
	}
	return style.Width(width).Height(height - 2).Render(b.String())
}

func (m Model) renderResults(width, height int) string {
	innerWidth := width - 4 // borders + padding
	innerHeight := height - 2

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	bodyHeight := max(innerHeight-2, 1)
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.state == stateAnalyzing:
		b.WriteString(m.spinner.View() + " Analyzing code...")
	case m.state == stateIdle:
		b.WriteString(placeholderStyle.Render("Ready to analyze your code. Press ctrl+r to run."))
	default:
		b.WriteString(m.renderTab(innerWidth, bodyHeight))
	}

	return resultPaneStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, numTabs)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts = append(parts, tabActiveStyle.Render(name))
		} else {
			parts = append(parts, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderTab(width, height int) string {
	switch m.tab {
	case tabMetrics:
		return renderMetrics(m.result)
	case tabRecommendations:
		return renderRecommendations(m.result, width)
	case tabCode:
		return renderCode(m.code, m.scrollOffset, width, height)
	default:
		return renderOverview(m.result, m.analyzed, width)
	}
}

func (m Model) renderStatusBar() string {
	var left string
	switch m.state {
	case stateAnalyzing:
		left = " analyzing"
	case stateDone:
		left = fmt.Sprintf(" %d%% %s risk", m.result.BugProbability, m.result.RiskLevel)
	default:
		left = " idle"
	}
	if m.editor.Focused() {
		left += "  editing (esc to leave)"
	}

	right := "ctrl+r analyze  ctrl+s sample  ? help "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpHeaderStyle.Render("bugalert: Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, binding := range []key.Binding{
		keys.Analyze, keys.Sample, keys.Edit, keys.Blur,
		keys.NextTab, keys.PrevTab, keys.Up, keys.Down,
		keys.Help, keys.Quit, keys.ForceQuit,
	} {
		h := binding.Help()
		fmt.Fprintf(&b, "  %s  %s\n", helpKeyStyle.Width(12).Render(h.Key), h.Desc)
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
