// Package track implements the random-variable track data structures
package track

import (
	"slices"
	"strings"

	"github.com/segmentio/ksuid"
)

// Placeholders shown in place of a concrete item
const (
	Pending    = "..." // Next after a reveal, before the next draw
	NoEligible = "?"   // Next when every item is excluded
)

// Timing limits
const (
	MinFrequency = 1
	MaxFrequency = 64

	DefaultFrequency = 4
	DefaultLeadTime  = 2
)

// Track is one random-variable generator with its own pool and timing
type Track struct {
	ID        string
	Name      string
	Items     []string       // Candidate pool, duplicates allowed
	Excluded  []string       // Subset of Items skipped by draws
	Frequency int            // Beats per cycle (>= 1)
	LeadTime  int            // Reveal offset within the cycle, [0, Frequency)
	Current   string         // Revealed item, "" before the first reveal
	Next      string         // Pending item or placeholder
	Enabled   bool           // Disabled tracks are skipped by Step
	Reveals   map[string]int // Reveal count per concrete item
}

// New creates a track with default timing
func New(name string, items []string) Track {
	return Track{
		ID:        ksuid.New().String(),
		Name:      name,
		Items:     slices.Clone(items),
		Frequency: DefaultFrequency,
		LeadTime:  DefaultLeadTime,
		Next:      Pending,
		Enabled:   true,
	}
}

// IsPlaceholder reports whether s is not a concrete item
func IsPlaceholder(s string) bool {
	return s == "" || s == Pending || s == NoEligible
}

// IsExcluded reports whether item is currently skipped by draws
func (t Track) IsExcluded(item string) bool {
	return slices.Contains(t.Excluded, item)
}

// Eligible returns the items a draw may pick, in pool order
func (t Track) Eligible() []string {
	var out []string
	for _, item := range t.Items {
		if !t.IsExcluded(item) {
			out = append(out, item)
		}
	}
	return out
}

// CurrentLabel is the display form of Current
func (t Track) CurrentLabel() string {
	if t.Current == "" {
		return "_"
	}
	return t.Current
}

// NextLabel is the display form of Next
func (t Track) NextLabel() string {
	if t.Next == "" {
		return NoEligible
	}
	return t.Next
}

// CyclePosition returns the lit beat-indicator dot for a beat.
// Dot 0 is the reveal beat.
func (t Track) CyclePosition(beat int) int {
	if t.Frequency < MinFrequency {
		return 0
	}
	return mod(beat+t.Frequency-t.LeadTime, t.Frequency)
}

// BeatInCycle returns the one-based beat number within the cycle
func (t Track) BeatInCycle(beat int) int {
	if t.Frequency < MinFrequency {
		return 1
	}
	return mod(beat, t.Frequency) + 1
}

// Clone returns a deep copy
func (t Track) Clone() Track {
	c := t
	c.Items = slices.Clone(t.Items)
	c.Excluded = slices.Clone(t.Excluded)
	if t.Reveals != nil {
		c.Reveals = make(map[string]int, len(t.Reveals))
		for k, v := range t.Reveals {
			c.Reveals[k] = v
		}
	}
	return c
}

// Summary formats the track for logs and headless output
func (t Track) Summary() string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString(": ")
	b.WriteString(t.CurrentLabel())
	b.WriteString(" -> ")
	b.WriteString(t.NextLabel())
	return b.String()
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
