package track

import "math/rand/v2"

// Action is what a track does on a given beat
type Action int

const (
	Hold    Action = iota // No change
	Draw                  // Roll a new Next from the eligible pool
	Promote               // Reveal Next as Current
)

func (a Action) String() string {
	switch a {
	case Draw:
		return "draw"
	case Promote:
		return "promote"
	default:
		return "hold"
	}
}

// Due returns the action scheduled for beat.
// Promote is checked first, so with LeadTime 0 the draw never happens.
func (t Track) Due(beat int) Action {
	if t.Frequency < MinFrequency || t.LeadTime < 0 || t.LeadTime >= t.Frequency {
		return Hold
	}
	b := mod(beat, t.Frequency)
	if b == t.LeadTime {
		return Promote
	} else if b == 0 {
		return Draw
	}
	return Hold
}

// Step applies one beat to the track and returns the new state.
// t itself is not modified.
func Step(t Track, beat int, rng *rand.Rand) Track {
	if !t.Enabled || len(t.Items) == 0 {
		return t
	}

	switch t.Due(beat) {
	case Promote:
		revealed := t.Next
		t.Current = revealed
		t.Next = Pending
		if !IsPlaceholder(revealed) {
			t.Reveals = countReveal(t.Reveals, revealed)
		}

	case Draw:
		t.Next = draw(t.Eligible(), rng)
	}

	return t
}

func draw(eligible []string, rng *rand.Rand) string {
	if len(eligible) == 0 {
		return NoEligible
	}
	if rng == nil {
		return eligible[rand.IntN(len(eligible))]
	}
	return eligible[rng.IntN(len(eligible))]
}

// countReveal copies the tally so earlier states stay untouched
func countReveal(tally map[string]int, item string) map[string]int {
	next := make(map[string]int, len(tally)+1)
	for k, v := range tally {
		next[k] = v
	}
	next[item]++
	return next
}
