package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlevasseur/encore/internal/client"
	"github.com/mlevasseur/encore/internal/errmsg"
	"github.com/mlevasseur/encore/internal/keymap"
	"github.com/mlevasseur/encore/internal/notify"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	responseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

// ackMsg carries one server response line, or the formatted failure of
// the round-trip that should have produced it.
type ackMsg struct {
	line string
	fail string
}

// statusMsg carries a reconciled mirror from PLAYER_STATUS.
type statusMsg struct {
	mirror client.Mirror
	fail   string
}

// notifiedMsg is the ID of the last desktop notification, kept so the
// next track change replaces it instead of stacking.
type notifiedMsg uint32

type prompt int

const (
	promptNone prompt = iota
	promptLogin
	promptPlaylist
)

type model struct {
	client   *client.Client
	notifier notify.Notifier
	keys     *keymap.Resolver

	input     textinput.Model
	prompting prompt

	// startup sequence, consumed left to right
	startUser     string
	startPlaylist string

	lastResponse string
	lastFailure  string
	lastTrack    string
	notifyID     uint32

	width  int
	height int
}

func initialModel(c *client.Client, notifier notify.Notifier, user, playlist string) model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40

	return model{
		client:        c,
		notifier:      notifier,
		keys:          keymap.NewResolver(keymap.All),
		input:         ti,
		startUser:     user,
		startPlaylist: playlist,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.startUser != "" {
		user := m.startUser
		cmds = append(cmds, commandCmd(errmsg.OpLogin, func() (string, error) {
			return m.client.Login(user)
		}))
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// commandCmd runs one blocking protocol round-trip off the UI loop.
func commandCmd(op errmsg.Op, fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		line, err := fn()
		if err != nil {
			return ackMsg{fail: errmsg.Format(op, err)}
		}
		return ackMsg{line: line}
	}
}

func (m model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		mir, err := m.client.Status()
		if err != nil {
			return statusMsg{fail: errmsg.Format(errmsg.OpStatus, err)}
		}
		return statusMsg{mirror: mir}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.client.Mirror().LoggedIn {
			return m, tea.Batch(tickCmd(), m.statusCmd())
		}
		return m, tickCmd()

	case ackMsg:
		if msg.fail != "" {
			m.lastFailure = msg.fail
			return m, nil
		}
		m.lastFailure = ""
		m.lastResponse = msg.line
		cmd := m.maybeNotify()

		// Continue the startup sequence once logged in.
		if m.startPlaylist != "" && m.client.Mirror().LoggedIn {
			playlist := m.startPlaylist
			m.startPlaylist = ""
			return m, tea.Batch(cmd, commandCmd(errmsg.OpStartPlayer, func() (string, error) {
				return m.client.StartPlayer(playlist)
			}))
		}
		return m, cmd

	case statusMsg:
		if msg.fail != "" {
			m.lastFailure = msg.fail
			return m, nil
		}
		m.lastFailure = ""
		return m, m.maybeNotify()

	case notifiedMsg:
		m.notifyID = uint32(msg)
		return m, nil

	case tea.KeyMsg:
		if m.prompting != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = promptNone
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		which := m.prompting
		m.prompting = promptNone
		m.input.Blur()
		m.input.SetValue("")
		if value == "" {
			return m, nil
		}
		switch which {
		case promptLogin:
			return m, commandCmd(errmsg.OpLogin, func() (string, error) {
				return m.client.Login(value)
			})
		case promptPlaylist:
			return m, commandCmd(errmsg.OpStartPlayer, func() (string, error) {
				return m.client.StartPlayer(value)
			})
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.client
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionLogin:
		return m.openPrompt(promptLogin, "user name")
	case keymap.ActionOpenPlaylist:
		return m.openPrompt(promptPlaylist, "playlist name")
	case keymap.ActionLogout:
		return m, commandCmd(errmsg.OpLogout, c.Logout)
	case keymap.ActionPlayPause:
		if c.Mirror().Playing {
			return m, commandCmd(errmsg.OpPause, c.Pause)
		}
		return m, commandCmd(errmsg.OpPlay, c.Play)
	case keymap.ActionStop:
		return m, commandCmd(errmsg.OpStop, c.StopPlay)
	case keymap.ActionNextTrack:
		return m, commandCmd(errmsg.OpNext, c.Next)
	case keymap.ActionPrevTrack:
		return m, commandCmd(errmsg.OpPrev, c.Previous)
	case keymap.ActionModeSequential:
		return m, modeCmd(c, 1)
	case keymap.ActionModeShuffle:
		return m, modeCmd(c, 2)
	case keymap.ActionModeRepeat:
		return m, modeCmd(c, 3)
	}
	return m, nil
}

func modeCmd(c *client.Client, code int) tea.Cmd {
	return commandCmd(errmsg.OpSetMode, func() (string, error) {
		return c.SetMode(code)
	})
}

func (m model) openPrompt(which prompt, placeholder string) (tea.Model, tea.Cmd) {
	m.prompting = which
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m, m.input.Focus()
}

// maybeNotify raises a desktop notification when the playing track
// changes. State comes from the mirror, so a stale title at worst
// produces one notification a round-trip late.
func (m *model) maybeNotify() tea.Cmd {
	if m.notifier == nil {
		return nil
	}
	mir := m.client.Mirror()
	if !mir.Playing || mir.TrackTitle == "" || mir.TrackTitle == m.lastTrack {
		if !mir.Playing {
			m.lastTrack = ""
		}
		return nil
	}
	m.lastTrack = mir.TrackTitle

	n := notify.NowPlaying(mir.TrackTitle, mir.TrackArtist, m.notifyID)
	notifier := m.notifier
	return func() tea.Msg {
		id, _ := notifier.Notify(n)
		return notifiedMsg(id)
	}
}

func (m model) View() string {
	mir := m.client.Mirror()

	var b strings.Builder

	title := "encore"
	if mir.LoggedIn {
		title = fmt.Sprintf("encore · %s", mir.User)
	}
	b.WriteString(title + "\n\n")

	icon := "⏹"
	switch {
	case mir.Playing:
		icon = "▶"
	case mir.Paused:
		icon = "⏸"
	}

	track := mir.TrackTitle
	if track == "" {
		track = "(no track)"
	}
	line := fmt.Sprintf(" %s  %s", icon, track)
	if mir.TrackArtist != "" {
		line += "  " + responseStyle.Render(mir.TrackArtist)
	}

	innerWidth := m.width - 2
	if innerWidth < len(line) {
		innerWidth = len(line)
	}
	b.WriteString(statusBarStyle.Width(innerWidth).Render(line) + "\n\n")

	if m.prompting != promptNone {
		b.WriteString(m.input.View() + "\n\n")
	}

	switch {
	case m.lastFailure != "":
		b.WriteString(errorStyle.Render(m.lastFailure) + "\n")
	case m.lastResponse != "":
		style := responseStyle
		if client.IsError(m.lastResponse) {
			style = errorStyle
		}
		b.WriteString(style.Render(m.lastResponse) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(keymap.HelpLine(keymap.All)))
	return b.String()
}
