// Package tui implements the terminal user interface
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moonmeter/moonmeter/pkg/metronome"
	"github.com/moonmeter/moonmeter/pkg/track"
)

// bpmStep is the tempo change per key press
const bpmStep = 1

// BeatMsg carries a clock firing into the event loop. Send it with
// tea.Program.Send from the session's notify function.
type BeatMsg metronome.Tick

// EditMode represents what the text input is editing
type EditMode int

const (
	EditNone EditMode = iota
	EditRename
	EditAddItem
)

// Model is the main TUI model
type Model struct {
	Session *metronome.Session

	// View state
	Width    int
	Height   int
	ShowHelp bool

	// Track focus and item list
	Focus      int
	Expanded   bool
	ItemCursor int

	// Text input for names and items
	Mode  EditMode
	input textinput.Model

	keys keyMap
	help help.Model

	// Last evaluated beat and status message
	Last      metronome.Report
	StatusMsg string
}

// NewModel creates a new TUI model
func NewModel(session *metronome.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 40
	ti.Width = 40

	return Model{
		Session: session,
		Width:   80,
		Height:  24,
		input:   ti,
		keys:    defaultKeys(),
		help:    help.New(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case BeatMsg:
		if r, ok := m.Session.HandleTick(metronome.Tick(msg)); ok {
			m.Last = r
		}
		return m, nil

	case tea.KeyMsg:
		if m.Mode != EditNone {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// focused returns the focused track
func (m Model) focused() (track.Track, bool) {
	tracks := m.Session.Tracks()
	if m.Focus < 0 || m.Focus >= len(tracks) {
		return track.Track{}, false
	}
	return tracks[m.Focus], true
}

func (m *Model) updateFocused(fn func(*track.Track) bool) bool {
	t, ok := m.focused()
	if !ok {
		return false
	}
	return m.Session.Update(t.ID, fn)
}

// clampCursors keeps focus and item cursor inside the current lists
func (m *Model) clampCursors() {
	n := m.Session.Len()
	if m.Focus >= n {
		m.Focus = n - 1
	}
	if m.Focus < 0 {
		m.Focus = 0
	}
	t, ok := m.focused()
	if !ok || len(t.Items) == 0 {
		m.ItemCursor = 0
		return
	}
	m.ItemCursor = max(min(m.ItemCursor, len(t.Items)-1), 0)
}

// selectedItem returns the item under the cursor of the expanded list
func (m Model) selectedItem() (string, bool) {
	t, ok := m.focused()
	if !ok || !m.Expanded || m.ItemCursor >= len(t.Items) {
		return "", false
	}
	return t.Items[m.ItemCursor], true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.StatusMsg = ""
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		m.Session.Stop()
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.ShowHelp = !m.ShowHelp

	// Playback
	case key.Matches(msg, k.Play):
		m.Last = m.Session.Toggle()

	case key.Matches(msg, k.Faster):
		m.Session.SetBPM(m.Session.BPM() + bpmStep)

	case key.Matches(msg, k.Slower):
		m.Session.SetBPM(m.Session.BPM() - bpmStep)

	// Track focus
	case key.Matches(msg, k.NextTrack):
		if n := m.Session.Len(); n > 0 {
			m.Focus = (m.Focus + 1) % n
			m.ItemCursor = 0
		}

	case key.Matches(msg, k.PrevTrack):
		if n := m.Session.Len(); n > 0 {
			m.Focus = (m.Focus - 1 + n) % n
			m.ItemCursor = 0
		}

	// Timing
	case key.Matches(msg, k.FreqUp):
		m.updateFocused(func(t *track.Track) bool { return t.SetFrequency(t.Frequency + 1) })

	case key.Matches(msg, k.FreqDown):
		m.updateFocused(func(t *track.Track) bool { return t.SetFrequency(t.Frequency - 1) })

	case key.Matches(msg, k.LeadUp):
		m.updateFocused(func(t *track.Track) bool { return t.SetLeadTime(t.LeadTime + 1) })

	case key.Matches(msg, k.LeadDown):
		m.updateFocused(func(t *track.Track) bool { return t.SetLeadTime(t.LeadTime - 1) })

	case key.Matches(msg, k.Enable):
		m.updateFocused(func(t *track.Track) bool { return t.SetEnabled(!t.Enabled) })

	// Items
	case key.Matches(msg, k.ExcludeCurrent):
		t, _ := m.focused()
		if m.updateFocused((*track.Track).ExcludeCurrent) {
			m.StatusMsg = fmt.Sprintf("Excluded %s", t.Current)
		}

	case key.Matches(msg, k.Expand):
		m.Expanded = !m.Expanded
		m.clampCursors()

	case key.Matches(msg, k.Up):
		if m.Expanded && m.ItemCursor > 0 {
			m.ItemCursor--
		}

	case key.Matches(msg, k.Down):
		if t, ok := m.focused(); ok && m.Expanded && m.ItemCursor < len(t.Items)-1 {
			m.ItemCursor++
		}

	case key.Matches(msg, k.ToggleItem):
		if item, ok := m.selectedItem(); ok {
			m.updateFocused(func(t *track.Track) bool { return t.ToggleExcluded(item) })
		}

	case key.Matches(msg, k.DeleteItem):
		if item, ok := m.selectedItem(); ok {
			if m.updateFocused(func(t *track.Track) bool { return t.DeleteItem(item) }) {
				m.StatusMsg = fmt.Sprintf("Deleted %s", item)
			}
			m.clampCursors()
		}

	case key.Matches(msg, k.AddItem):
		if _, ok := m.focused(); ok {
			return m.startInput(EditAddItem, "")
		}

	case key.Matches(msg, k.Rename):
		if t, ok := m.focused(); ok {
			return m.startInput(EditRename, t.Name)
		}

	// Tracks
	case key.Matches(msg, k.NewTrack):
		t := m.Session.AddTrack()
		m.Focus = m.Session.Len() - 1
		m.ItemCursor = 0
		m.StatusMsg = fmt.Sprintf("Added %s", t.Name)

	case key.Matches(msg, k.RemoveTrack):
		if t, ok := m.focused(); ok && m.Session.RemoveTrack(t.ID) {
			m.StatusMsg = fmt.Sprintf("Removed %s", t.Name)
			m.clampCursors()
		}
	}

	return m, nil
}

func (m Model) startInput(mode EditMode, value string) (tea.Model, tea.Cmd) {
	m.Mode = mode
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		switch m.Mode {
		case EditRename:
			m.updateFocused(func(t *track.Track) bool { return t.Rename(value) })
		case EditAddItem:
			if m.updateFocused(func(t *track.Track) bool { return t.AddItem(value) }) {
				m.StatusMsg = fmt.Sprintf("Added %s", value)
			}
		}
		m.stopInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopInput() {
	m.Mode = EditNone
	m.input.Blur()
	m.input.Reset()
}
