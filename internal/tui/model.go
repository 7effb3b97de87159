// Package tui is the terminal Arabic Wordle client.
//
// The model holds a game.State and drives it with the same events the server
// uses. The dictionary is fetched once at start-up; until it arrives a
// spinner is shown, and a failed fetch leaves the game in the failed state.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/arabic-wordle/internal/arabic"
	"github.com/robalobadob/arabic-wordle/internal/game"
	"github.com/robalobadob/arabic-wordle/internal/words"
)

// DictionaryLoader fetches the word list.
type DictionaryLoader interface {
	Load(ctx context.Context) (*words.Dictionary, error)
}

// dictLoaded is the result of the start-up fetch.
type dictLoaded struct {
	dict *words.Dictionary
	err  error
}

// clearMsg carries a cosmetic clear scheduled with tea.Tick.
type clearMsg struct{ event game.Event }

// Model is the bubbletea model for one player.
type Model struct {
	loader  DictionaryLoader
	state   game.State
	spinner spinner.Model
	width   int
}

// New returns a model that loads its dictionary through loader.
func New(loader DictionaryLoader) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Model{loader: loader, state: game.NewState(), spinner: s}
}

// State returns the current game state.
func (m Model) State() game.State { return m.state }

// Init starts the spinner and the dictionary fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		d, err := loader.Load(context.Background())
		return dictLoaded{dict: d, err: err}
	}
}

// Update handles all incoming messages and updates the model state accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case dictLoaded:
		if msg.err != nil || msg.dict == nil {
			return m.apply(game.LoadFailed{Err: msg.err})
		}
		return m.apply(game.Loaded{Dict: msg.dict})
	case clearMsg:
		return m.apply(msg.event)
	case spinner.TickMsg:
		if m.state.Status != game.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.apply(game.Submit{})
	case tea.KeyBackspace:
		return m.apply(game.Backspace{})
	case tea.KeyCtrlN:
		return m.apply(game.Reset{})
	case tea.KeyRunes:
		var events []game.Event
		for _, r := range k.Runes {
			events = append(events, game.Letter{Rune: r})
		}
		return m.apply(events...)
	}
	return m, nil
}

// apply runs events through the state machine and schedules the clears
// each step asks for.
func (m Model) apply(events ...game.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, e := range events {
		prev := m.state
		m.state = game.Transition(prev, e)
		for _, t := range game.Timers(prev, m.state) {
			ev := t.Event
			cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg { return clearMsg{event: ev} }))
		}
	}
	return m, tea.Batch(cmds...)
}

// View renders the title, banner, board, keyboard and help line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("خمن الكلمة"))
	b.WriteString("\n\n")

	switch m.state.Status {
	case game.StatusLoading:
		b.WriteString(m.spinner.View() + " جاري تحميل القاموس...\n")
		return m.center(b.String())
	case game.StatusFailed:
		b.WriteString(bannerStyle.Render(game.MsgLoadFailed) + "\n")
		if m.state.Err != "" {
			b.WriteString(errorStyle.Render(m.state.Err) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("esc: خروج"))
		return m.center(b.String())
	}

	if m.state.Message != "" {
		b.WriteString(bannerStyle.Render(m.state.Message))
	}
	b.WriteString("\n\n")

	indent := ""
	if m.state.Shake {
		indent = "  "
	}
	for _, row := range m.state.Board() {
		b.WriteString(indent + renderRow(row) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderKeyboard(game.KeyStatuses(m.state.Target, m.state.Guesses)))
	b.WriteString("\n\n")

	help := "enter: إدخال • backspace: مسح • esc: خروج"
	if m.state.Status.Finished() {
		help = "ctrl+n: لعبة جديدة • " + help
	}
	b.WriteString(helpStyle.Render(help))
	return m.center(b.String())
}

func (m Model) center(s string) string {
	if m.width == 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

// renderRow draws one board row right to left: the first letter is the
// rightmost tile.
func renderRow(row []game.Tile) string {
	cells := make([]string, len(row))
	for i, t := range row {
		letter := t.Letter
		if letter == "" {
			letter = " "
		}
		cells[len(row)-1-i] = tileStyle(t.Mark).Render(letter)
	}
	return strings.Join(cells, " ")
}

// renderKeyboard colors each key with the best mark its letter received.
func renderKeyboard(marks map[rune]game.Mark) string {
	lines := make([]string, len(keyboardRows))
	for i, row := range keyboardRows {
		keys := make([]string, len(row))
		for j, r := range row {
			var mark game.Mark
			if n, ok := arabic.NormalizeLetter(r); ok {
				mark = marks[n]
			}
			keys[j] = keyStyle(mark).Render(string(r))
		}
		lines[i] = strings.Join(keys, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
