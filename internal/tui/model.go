// Package tui is the interactive terminal front end.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/records"
	"github.com/vancomm/minesweeper/internal/render"
)

const saveTimeout = 5 * time.Second

type recordSavedMsg struct {
	record records.Record
	err    error
}

type Model struct {
	router *command.Router
	render *render.Renderer
	store  records.Store
	log    logrus.FieldLogger

	input    textinput.Model
	message  string
	quitting bool
}

// New builds the model. store may be nil, in which case finished games are
// not recorded.
func New(router *command.Router, r *render.Renderer, store records.Store, log logrus.FieldLogger) Model {
	ti := textinput.New()
	ti.Prompt = ">>> "
	ti.Placeholder = "help"
	ti.CharLimit = 64
	ti.Focus()

	return Model{
		router:  router,
		render:  r,
		store:   store,
		log:     log,
		input:   ti,
		message: r.Welcome(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m.execute(line)
		}

	case recordSavedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("unable to save record")
			return m, nil
		}
		m.log.WithField("record", msg.record.Id.String()).Debug("saved record")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) execute(line string) (tea.Model, tea.Cmd) {
	game := m.router.Game()
	wasOver := game.Status.Over()

	res, err := m.router.Execute(line)
	if err != nil {
		m.message = m.render.Error(err)
		return m, nil
	}

	switch res.Command.Kind {
	case command.Help:
		m.message = m.render.Help()
	case command.Quit:
		m.quitting = true
		return m, tea.Quit
	case command.Noop:
	default:
		m.message = ""
	}

	if !wasOver && game.Status.Over() {
		return m, m.saveRecord()
	}
	return m, nil
}

func (m Model) saveRecord() tea.Cmd {
	if m.store == nil {
		return nil
	}
	rec, err := records.FromGame(m.router.Game())
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return recordSavedMsg{record: rec, err: m.store.Save(ctx, rec)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	game := m.router.Game()
	if board := game.Board(); board != nil {
		b.WriteString(m.render.Board(board))
		b.WriteString("\n")
	}
	b.WriteString(m.render.Status(game))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}
