package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/moonmeter/moonmeter/pkg/track"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	playingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	nextStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	litStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle  = lipgloss.NewStyle().Background(lipgloss.Color("6"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	focusedCardStyle = cardStyle.BorderForeground(lipgloss.Color("11"))
)

// View implements tea.Model
func (m Model) View() string {
	if m.ShowHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	tracks := m.Session.Tracks()
	if len(tracks) == 0 {
		b.WriteString(dimStyle.Render("No tracks. Press n to add one."))
		b.WriteString("\n")
	}
	for i, t := range tracks {
		b.WriteString(m.cardView(t, i == m.Focus))
		b.WriteString("\n")
	}

	if t, ok := m.focused(); ok {
		if m.Expanded {
			b.WriteString(m.itemsView(t))
			b.WriteString("\n")
		}
		if tally := tallyView(t); tally != "" {
			b.WriteString(tally)
			b.WriteString("\n")
		}
	}

	if m.Mode != EditNone {
		b.WriteString(m.inputView())
		b.WriteString("\n")
	} else if m.StatusMsg != "" {
		b.WriteString(statusStyle.Render(m.StatusMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	title := titleStyle.Render("MOONMETER")

	playing := "STOPPED"
	if m.Session.Playing() {
		playing = playingStyle.Render("PLAYING")
	}

	info := fmt.Sprintf(" │ BPM:%d │ %s", m.Session.BPM(), playing)
	if t, ok := m.focused(); ok && m.Session.Playing() {
		info += fmt.Sprintf(" │ Beat:%d/%d", t.BeatInCycle(m.Session.Beat()), t.Frequency)
	}
	return title + info
}

func (m Model) cardView(t track.Track, focused bool) string {
	name := t.Name
	if focused {
		name = focusStyle.Render(name)
	}
	if !t.Enabled {
		name += dimStyle.Render(" (off)")
	}

	values := currentStyle.Render(t.CurrentLabel()) + dimStyle.Render("  next ") + nextStyle.Render(t.NextLabel())
	timing := dimStyle.Render(fmt.Sprintf("every %d, lead %d", t.Frequency, t.LeadTime))

	body := lipgloss.JoinVertical(lipgloss.Left,
		name,
		values,
		m.dotsView(t)+"  "+timing,
	)
	if focused {
		return focusedCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

// dotsView renders one dot per beat of the cycle; dot 0 is the reveal beat
func (m Model) dotsView(t track.Track) string {
	lit := -1
	if m.Session.Playing() && t.Enabled {
		lit = t.CyclePosition(m.Session.Beat())
	}
	var b strings.Builder
	for i := 0; i < t.Frequency; i++ {
		if i == lit {
			b.WriteString(litStyle.Render("●"))
		} else {
			b.WriteString(dimStyle.Render("○"))
		}
	}
	return b.String()
}

func (m Model) itemsView(t track.Track) string {
	if len(t.Items) == 0 {
		return dimStyle.Render("  (no items, press a to add)")
	}
	lines := make([]string, 0, len(t.Items))
	for i, item := range t.Items {
		mark := "[x]"
		if t.IsExcluded(item) {
			mark = "[ ]"
		}
		line := fmt.Sprintf(" %s %s", mark, item)
		switch {
		case i == m.ItemCursor:
			line = cursorStyle.Render(line)
		case t.IsExcluded(item):
			line = dimStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// tallyView lists how often each item was revealed, most frequent first
func tallyView(t track.Track) string {
	if len(t.Reveals) == 0 {
		return ""
	}
	items := make([]string, 0, len(t.Reveals))
	for item := range t.Reveals {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := t.Reveals[items[i]], t.Reveals[items[j]]
		if a != b {
			return a > b
		}
		return items[i] < items[j]
	})

	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s:%d", item, t.Reveals[item])
	}
	return dimStyle.Render("Revealed " + strings.Join(parts, " "))
}

func (m Model) inputView() string {
	label := "Rename"
	if m.Mode == EditAddItem {
		label = "Add item"
	}
	return statusStyle.Render(label) + " " + m.input.View()
}

func (m Model) footerView() string {
	return m.help.View(m.keys)
}

func (m Model) helpView() string {
	h := m.help
	h.ShowAll = true
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("14")).
		Padding(1, 2)
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("MOONMETER HELP"),
		"",
		h.View(m.keys),
		"",
		dimStyle.Render("[?] Close help"),
	)
	return box.Render(body)
}
