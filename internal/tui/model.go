// Package tui renders the weather screen with Bubble Tea.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/jask/jaskweather/internal/viewmodel"
)

const defaultSnackbarTTL = 4 * time.Second

// Options tunes presentation.
type Options struct {
	Units       string // metric, imperial or standard
	Language    string // BCP 47 tag used for title casing
	SnackbarTTL time.Duration
}

// Model is the weather screen.
type Model struct {
	store   *viewmodel.Store
	states  <-chan viewmodel.State
	effects <-chan viewmodel.Effect

	keys    keyMap
	input   textinput.Model
	spinner spinner.Model

	state    viewmodel.State
	snackbar string
	snackSeq int
	ttl      time.Duration
	units    string
	lang     language.Tag
	width    int
}

type stateMsg struct{ state viewmodel.State }

type effectMsg struct{ effect viewmodel.Effect }

type snackbarExpiredMsg struct{ seq int }

// New subscribes to store for as long as ctx lives.
func New(ctx context.Context, store *viewmodel.Store, opts Options) *Model {
	inp := textinput.New()
	inp.Placeholder = "city"
	inp.Prompt = "search › "
	inp.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = mutedStyle

	lang, err := language.Parse(opts.Language)
	if err != nil {
		lang = language.English
	}
	ttl := opts.SnackbarTTL
	if ttl <= 0 {
		ttl = defaultSnackbarTTL
	}

	return &Model{
		store:   store,
		states:  store.Watch(ctx),
		effects: store.Effects().Subscribe(ctx),
		keys:    defaultKeys(),
		input:   inp,
		spinner: sp,
		state:   store.State(),
		ttl:     ttl,
		units:   opts.Units,
		lang:    lang,
		width:   60,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitState(), m.waitEffect())
}

func (m *Model) waitState() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.states
		if !ok {
			return nil
		}
		return stateMsg{s}
	}
}

func (m *Model) waitEffect() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.effects
		if !ok {
			return nil
		}
		return effectMsg{e}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	case stateMsg:
		m.state = msg.state
		return m, m.waitState()
	case effectMsg:
		var cmd tea.Cmd
		if fx, ok := msg.effect.(viewmodel.FailureSnackbar); ok {
			cmd = m.showSnackbar(viewmodel.Message(fx.Failure))
		}
		return m, tea.Batch(cmd, m.waitEffect())
	case snackbarExpiredMsg:
		if msg.seq == m.snackSeq {
			m.snackbar = ""
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		name := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.input.Reset()
		m.store.Dispatch(viewmodel.SearchCity{Name: name})
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Refresh):
		if sw, ok := m.state.(viewmodel.ShowWeather); ok {
			m.store.Dispatch(viewmodel.RefreshWeather{Name: sw.Weather.CityName})
		}
	}
	return m, nil
}

func (m *Model) showSnackbar(text string) tea.Cmd {
	m.snackSeq++
	m.snackbar = text
	seq := m.snackSeq
	return tea.Tick(m.ttl, func(time.Time) tea.Msg { return snackbarExpiredMsg{seq: seq} })
}

// busy reports whether a spinner should be shown.
func (m *Model) busy() bool {
	switch s := m.state.(type) {
	case viewmodel.Loading:
		return true
	case viewmodel.ShowWeather:
		return s.IsRefreshing
	}
	return false
}
