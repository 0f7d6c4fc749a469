package track

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

type intRange struct {
	Min, Max int
}

func (r intRange) Clamp(value int) int {
	return max(min(value, r.Max), r.Min)
}

// frequencyRange is the accepted range for Frequency
func frequencyRange() intRange { return intRange{MinFrequency, MaxFrequency} }

// leadTimeRange is the accepted range for LeadTime at the current Frequency
func (t Track) leadTimeRange() intRange {
	return intRange{0, max(t.Frequency, MinFrequency) - 1}
}

// SetFrequency clamps and sets the cycle length, pulling LeadTime back into
// range when the cycle shrinks. Reports whether anything changed.
func (t *Track) SetFrequency(n int) bool {
	n = frequencyRange().Clamp(n)
	lead := intRange{0, n - 1}.Clamp(t.LeadTime)
	if n == t.Frequency && lead == t.LeadTime {
		return false
	}
	t.Frequency = n
	t.LeadTime = lead
	return true
}

// SetLeadTime clamps and sets the reveal offset
func (t *Track) SetLeadTime(n int) bool {
	n = t.leadTimeRange().Clamp(n)
	if n == t.LeadTime {
		return false
	}
	t.LeadTime = n
	return true
}

// Validate rejects timing that the scheduler cannot evaluate
func (t Track) Validate() error {
	if t.Frequency < MinFrequency {
		return fault.New("frequency below minimum",
			fmsg.WithDesc(fmt.Sprintf("frequency %d < %d", t.Frequency, MinFrequency),
				fmt.Sprintf("Frequency of %q must be at least %d", t.Name, MinFrequency)),
			ftag.With(ftag.InvalidArgument))
	}
	if t.Frequency > MaxFrequency {
		return fault.New("frequency above maximum",
			fmsg.WithDesc(fmt.Sprintf("frequency %d > %d", t.Frequency, MaxFrequency),
				fmt.Sprintf("Frequency of %q must be at most %d", t.Name, MaxFrequency)),
			ftag.With(ftag.InvalidArgument))
	}
	if t.LeadTime < 0 || t.LeadTime >= t.Frequency {
		return fault.New("lead time out of range",
			fmsg.WithDesc(fmt.Sprintf("leadtime %d not in [0,%d)", t.LeadTime, t.Frequency),
				fmt.Sprintf("Lead time of %q must be between 0 and %d", t.Name, t.Frequency-1)),
			ftag.With(ftag.InvalidArgument))
	}
	for _, item := range t.Excluded {
		if !slices.Contains(t.Items, item) {
			return fault.New("excluded item not in pool",
				fmsg.WithDesc(fmt.Sprintf("excluded %q missing from items", item),
					fmt.Sprintf("%q is excluded but not an item of %q", item, t.Name)),
				ftag.With(ftag.InvalidArgument))
		}
	}
	return nil
}

// Rename sets the display name; blank names are ignored
func (t *Track) Rename(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == t.Name {
		return false
	}
	t.Name = name
	return true
}

// AddItem appends an item to the pool; blank items are ignored
func (t *Track) AddItem(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}
	t.Items = append(slices.Clone(t.Items), item)
	return true
}

// DeleteItem removes every occurrence of item from both the pool and the
// exclusion set. Current is left alone.
func (t *Track) DeleteItem(item string) bool {
	if !slices.Contains(t.Items, item) {
		return false
	}
	t.Items = slices.DeleteFunc(slices.Clone(t.Items), func(s string) bool { return s == item })
	t.Excluded = slices.DeleteFunc(slices.Clone(t.Excluded), func(s string) bool { return s == item })
	return true
}

// ToggleExcluded flips the exclusion of an item in the pool
func (t *Track) ToggleExcluded(item string) bool {
	if !slices.Contains(t.Items, item) {
		return false
	}
	if t.IsExcluded(item) {
		t.Excluded = slices.DeleteFunc(slices.Clone(t.Excluded), func(s string) bool { return s == item })
	} else {
		t.Excluded = append(slices.Clone(t.Excluded), item)
	}
	return true
}

// Exclude marks an item as ineligible; already excluded items are a no-op
func (t *Track) Exclude(item string) bool {
	if t.IsExcluded(item) {
		return false
	}
	return t.ToggleExcluded(item)
}

// ExcludeCurrent excludes the revealed item from future draws
func (t *Track) ExcludeCurrent() bool {
	if IsPlaceholder(t.Current) {
		return false
	}
	return t.Exclude(t.Current)
}

// SetEnabled switches scheduling of the track on or off
func (t *Track) SetEnabled(enabled bool) bool {
	if t.Enabled == enabled {
		return false
	}
	t.Enabled = enabled
	return true
}
