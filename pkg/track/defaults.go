package track

import (
	"slices"
	"strconv"
)

// Keys is the default pool: the twelve major keys
var Keys = []string{"A", "B♭", "B", "C", "D♭", "D", "E♭", "E", "F", "G♭", "G", "A♭"}

// Progressions is a pool of common chord progressions in Roman numerals
var Progressions = []string{
	"I-IV-V-I",
	"ii-V-I",
	"I-vi-IV-V",
	"I-V-vi-IV",
	"vi-IV-I-V",
	"I-vi-ii-V",
	"iii-vi-ii-V",
	"I-IV-I-V",
}

// Defaults returns the tracks a new session starts with
func Defaults() []Track {
	return []Track{New("Key", Keys)}
}

// NewNumbered creates the track added by the "new track" action
func NewNumbered(n int) Track {
	t := New("Track "+strconv.Itoa(n), Keys)
	if n%2 == 0 {
		t.Name = "Progression " + strconv.Itoa(n)
		t.Items = slices.Clone(Progressions)
		t.Frequency = 8
		t.LeadTime = 4
	}
	return t
}
