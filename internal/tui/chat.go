// Package tui is the interactive chat shell: one company name per turn.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agenthands/naics/internal/core"
	"github.com/agenthands/naics/internal/core/model"
	"github.com/agenthands/naics/internal/search"
)

// Detector runs one classification turn.
type Detector interface {
	Detect(ctx context.Context, company string, report func(core.Event)) (*core.Outcome, error)
}

type (
	// eventMsg carries an interim status update of the running turn.
	eventMsg core.Event

	turnDoneMsg struct {
		outcome *core.Outcome
		err     error
	}
)

type chatModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    styles

	detector      Detector
	previewLength int

	lines     []string
	isLoading bool
	turn      chan tea.Msg
}

func newChatModel(d Detector, previewLength int) chatModel {
	st := defaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Company name (Enter to classify, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 256
	ti.Width = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	vp := viewport.New(80, 20)

	return chatModel{
		textinput:     ti,
		viewport:      vp,
		spinner:       sp,
		styles:        st,
		detector:      d,
		previewLength: previewLength,
	}
}

// Run starts the chat and blocks until the user quits.
func Run(d Detector, previewLength int) error {
	p := tea.NewProgram(newChatModel(d, previewLength), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.isLoading {
				return m.handleSubmit()
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.isLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.textinput, cmd = m.textinput.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		headerHeight, inputHeight := 2, 3
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = max(msg.Height-headerHeight-inputHeight, 1)
		m.textinput.Width = msg.Width - 4
		m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.appendEvent(core.Event(msg))
		m.refresh()
		return m, waitForTurn(m.turn)

	case turnDoneMsg:
		m.isLoading = false
		m.turn = nil
		m.appendOutcome(msg.outcome, msg.err)
		m.textinput.Focus()
		m.refresh()
		return m, nil
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	company := strings.TrimSpace(m.textinput.Value())
	if company == "" {
		return m, nil
	}
	m.textinput.Reset()
	m.textinput.Blur()

	m.lines = append(m.lines, m.styles.User.Render("> "+company))
	m.isLoading = true
	m.turn = make(chan tea.Msg, 16)
	m.refresh()

	return m, tea.Batch(runTurn(m.detector, company, m.turn), waitForTurn(m.turn), m.spinner.Tick)
}

// runTurn streams events and the final turnDoneMsg through ch, preserving order.
func runTurn(d Detector, company string, ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		out, err := d.Detect(context.Background(), company, func(e core.Event) {
			ch <- eventMsg(e)
		})
		ch <- turnDoneMsg{outcome: out, err: err}
		close(ch)
		return nil
	}
}

func waitForTurn(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *chatModel) appendEvent(e core.Event) {
	if e.Kind == core.EventSearchFailed {
		m.lines = append(m.lines, m.styles.Error.Render(e.Message()))
		return
	}
	m.lines = append(m.lines, m.styles.Status.Render(e.Message()))
	if e.Kind == core.EventSearchDone {
		m.lines = append(m.lines, m.styles.Status.Render("Top search results:"))
		for _, s := range e.Snippets {
			m.lines = append(m.lines, m.styles.Snippet.Render(formatSnippet(s, m.previewLength)))
		}
	}
}

func (m *chatModel) appendOutcome(out *core.Outcome, err error) {
	if err != nil {
		m.lines = append(m.lines, m.styles.Error.Render(core.UserMessage(err)))
		return
	}
	if len(out.Results) == 0 {
		m.lines = append(m.lines, m.styles.Status.Render("No NAICS codes found."))
		return
	}
	for _, r := range out.Results {
		m.lines = append(m.lines, formatResult(m.styles, r))
	}
}

func (m *chatModel) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("NAICS detector"))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	if m.isLoading {
		sb.WriteString(m.spinner.View() + " working...")
	} else {
		sb.WriteString(m.textinput.View())
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("enter: classify • esc/ctrl+c: quit"))
	return sb.String()
}

func formatSnippet(s model.Snippet, previewLength int) string {
	return fmt.Sprintf("Title: %s\nBody: %s", s.Title, search.Preview(s.Body, previewLength))
}

func formatResult(st styles, r model.Result) string {
	return st.Code.Render(r.Code) + "  " + r.Description
}
