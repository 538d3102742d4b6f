package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/agent"
	"docqa/internal/session"
)

// QAPort is the TUI-facing subset of the document agent.
type QAPort interface {
	Ask(ctx context.Context, question string, includeContext bool) agent.AskResult
	Info() session.Info
	SuggestedQuestions() []string
}

// Model is the Bubble Tea model for the Q&A application.
type Model struct {
	agent    QAPort
	input    textinput.Model
	viewport viewport.Model
	last     agent.AskResult
	answered bool
	status   string
	ready    bool
}

// New creates a new TUI model instance.
func New(qa QAPort) Model {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Ask a question about the document and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	info := qa.Info()
	status := fmt.Sprintf("Loaded %d chars in %d chunks. Ask away.", info.TextLength, info.ChunksCount)
	return Model{agent: qa, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around answer and question boxes
		_, ah := answerBoxStyle.GetFrameSize()
		_, qh := questionBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + question box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ah)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				res := m.agent.Ask(context.Background(), q, true)
				m.last = res
				m.answered = true
				if res.Success {
					m.status = fmt.Sprintf("Answered with confidence %.2f from %d chunks", res.Confidence, res.UsedChunkCount)
				} else {
					m.status = "Error: " + res.Error
				}
				m.input.SetValue("")
				m.viewport.SetContent(m.renderAnswer())
				m.viewport.GotoTop()
				return m, nil
			}
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Q&A")
	answer := answerBoxStyle.Render(m.viewport.View())
	question := questionBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + answer + "\n" + question + "\n" + status
}

func (m Model) renderAnswer() string {
	if !m.answered {
		suggestions := m.agent.SuggestedQuestions()
		if len(suggestions) == 0 {
			return "No answer yet."
		}
		var b strings.Builder
		b.WriteString("Some questions to get started:\n\n")
		for _, s := range suggestions {
			b.WriteString("  - " + s + "\n")
		}
		return b.String()
	}

	res := m.last
	if !res.Success {
		return "Error: " + res.Error
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render("Q: "+res.Question) + "\n\n")
	b.WriteString(res.Answer + "\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("confidence %.2f  %s", res.Confidence, res.Reasoning)) + "\n")
	for _, src := range res.Sources {
		title := dimStyle.Render(fmt.Sprintf("[Chunk %d] score=%.2f matched=%s", src.ChunkID, src.Score, strings.Join(src.MatchedKeywords, ",")))
		b.WriteString("\n" + title + "\n" + highlightKeywords(src.Text, src.MatchedKeywords) + "\n")
	}
	return b.String()
}

var (
	answerBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highlightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// highlightKeywords emphasizes the matched keywords inside a source chunk.
func highlightKeywords(text string, matched []string) string {
	if len(matched) == 0 {
		return text
	}
	escaped := make([]string, len(matched))
	for i, kw := range matched {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(escaped, "|"))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(s string) string {
		return highlightStyle.Render(s)
	})
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
