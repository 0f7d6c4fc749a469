package track

import (
	"slices"
	"testing"

	"github.com/Southclaws/fault/ftag"
)

func TestNewDefaults(t *testing.T) {
	tr := New("Key", Keys)
	if tr.ID == "" {
		t.Error("ID is empty")
	}
	if tr.Frequency != DefaultFrequency || tr.LeadTime != DefaultLeadTime {
		t.Errorf("timing = %d/%d, want %d/%d", tr.Frequency, tr.LeadTime, DefaultFrequency, DefaultLeadTime)
	}
	if !tr.Enabled {
		t.Error("new track is disabled")
	}
	if tr.Next != Pending || tr.CurrentLabel() != "_" {
		t.Errorf("Current/Next = %q/%q, want _/%q", tr.CurrentLabel(), tr.Next, Pending)
	}

	tr.Items[0] = "changed"
	if Keys[0] != "A" {
		t.Error("New shares the item slice with its argument")
	}
	if other := New("Key", Keys); other.ID == tr.ID {
		t.Error("two tracks share an ID")
	}
}

func TestSetFrequencyClamps(t *testing.T) {
	tests := []struct {
		in, wantFreq, lead, wantLead int
	}{
		{0, 1, 2, 0},
		{-5, 1, 0, 0},
		{3, 3, 2, 2},
		{2, 2, 2, 1},
		{1000, MaxFrequency, 2, 2},
	}
	for _, tc := range tests {
		tr := New("t", Keys)
		tr.LeadTime = tc.lead
		tr.SetFrequency(tc.in)
		if tr.Frequency != tc.wantFreq || tr.LeadTime != tc.wantLead {
			t.Errorf("SetFrequency(%d) with lead %d = %d/%d, want %d/%d",
				tc.in, tc.lead, tr.Frequency, tr.LeadTime, tc.wantFreq, tc.wantLead)
		}
		if err := tr.Validate(); err != nil {
			t.Errorf("SetFrequency(%d) left invalid track: %v", tc.in, err)
		}
	}
}

func TestTimingRanges(t *testing.T) {
	if r := frequencyRange(); r.Min != MinFrequency || r.Max != MaxFrequency {
		t.Errorf("frequencyRange() = %+v", r)
	}
	tests := []struct{ freq, wantMax int }{
		{4, 3},
		{1, 0},
		{0, 0},
	}
	for _, tc := range tests {
		tr := Track{Frequency: tc.freq}
		if r := tr.leadTimeRange(); r.Min != 0 || r.Max != tc.wantMax {
			t.Errorf("leadTimeRange() at frequency %d = %+v, want [0,%d]", tc.freq, r, tc.wantMax)
		}
	}
}

func TestSetLeadTimeClamps(t *testing.T) {
	tr := New("t", Keys)
	tr.SetFrequency(4)

	if tr.SetLeadTime(9); tr.LeadTime != 3 {
		t.Errorf("LeadTime = %d, want 3", tr.LeadTime)
	}
	if tr.SetLeadTime(-1); tr.LeadTime != 0 {
		t.Errorf("LeadTime = %d, want 0", tr.LeadTime)
	}
	if tr.SetLeadTime(0) {
		t.Error("SetLeadTime reported a change for the same value")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Track)
		ok     bool
	}{
		{"defaults", func(*Track) {}, true},
		{"zero frequency", func(tr *Track) { tr.Frequency = 0; tr.LeadTime = 0 }, false},
		{"frequency too large", func(tr *Track) { tr.Frequency = MaxFrequency + 1 }, false},
		{"lead equals frequency", func(tr *Track) { tr.LeadTime = tr.Frequency }, false},
		{"negative lead", func(tr *Track) { tr.LeadTime = -1 }, false},
		{"lead zero", func(tr *Track) { tr.LeadTime = 0 }, true},
		{"dangling exclusion", func(tr *Track) { tr.Excluded = []string{"nope"} }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := New("t", Keys)
			tc.mutate(&tr)
			err := tr.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected an error")
				}
				if kind := ftag.Get(err); kind != ftag.InvalidArgument {
					t.Errorf("tag = %q, want %q", kind, ftag.InvalidArgument)
				}
			}
		})
	}
}

func TestDeleteExcludedItemRemovesBoth(t *testing.T) {
	tr := New("t", []string{"A", "B", "A", "C"})
	tr.ToggleExcluded("A")

	if !tr.DeleteItem("A") {
		t.Fatal("DeleteItem reported no change")
	}
	if slices.Contains(tr.Items, "A") {
		t.Errorf("Items = %v, still contains A", tr.Items)
	}
	if slices.Contains(tr.Excluded, "A") {
		t.Errorf("Excluded = %v, still contains A", tr.Excluded)
	}
	if !slices.Equal(tr.Items, []string{"B", "C"}) {
		t.Errorf("Items = %v, want [B C]", tr.Items)
	}
	if tr.DeleteItem("A") {
		t.Error("deleting a missing item reported a change")
	}
	if err := tr.Validate(); err != nil {
		t.Errorf("Validate after delete: %v", err)
	}
}

func TestToggleExcluded(t *testing.T) {
	tr := New("t", []string{"A", "B"})

	tr.ToggleExcluded("A")
	if !tr.IsExcluded("A") {
		t.Fatal("A not excluded")
	}
	if got := tr.Eligible(); !slices.Equal(got, []string{"B"}) {
		t.Errorf("Eligible = %v, want [B]", got)
	}
	tr.ToggleExcluded("A")
	if tr.IsExcluded("A") {
		t.Error("A still excluded")
	}
	if tr.ToggleExcluded("Z") {
		t.Error("toggling an unknown item reported a change")
	}
}

func TestEditsDoNotAliasClones(t *testing.T) {
	tr := New("t", []string{"A", "B"})
	snapshot := tr
	tr.ToggleExcluded("A")
	tr.DeleteItem("B")

	if len(snapshot.Excluded) != 0 || len(snapshot.Items) != 2 {
		t.Errorf("snapshot changed: items=%v excluded=%v", snapshot.Items, snapshot.Excluded)
	}
}

func TestExcludeCurrent(t *testing.T) {
	tr := New("t", []string{"A", "B"})
	if tr.ExcludeCurrent() {
		t.Error("excluded with nothing revealed")
	}
	tr.Current = "B"
	if !tr.ExcludeCurrent() {
		t.Fatal("ExcludeCurrent reported no change")
	}
	if tr.ExcludeCurrent() {
		t.Error("excluding twice reported a change")
	}
	if !slices.Equal(tr.Excluded, []string{"B"}) {
		t.Errorf("Excluded = %v, want [B]", tr.Excluded)
	}
}

func TestAddItemAndRename(t *testing.T) {
	tr := New("t", nil)
	if tr.AddItem("   ") {
		t.Error("blank item accepted")
	}
	tr.AddItem("  ii-V-I ")
	if !slices.Equal(tr.Items, []string{"ii-V-I"}) {
		t.Errorf("Items = %v", tr.Items)
	}
	if tr.Rename(" ") {
		t.Error("blank name accepted")
	}
	tr.Rename("Changes")
	if tr.Name != "Changes" {
		t.Errorf("Name = %q", tr.Name)
	}
}

func TestCyclePosition(t *testing.T) {
	tr := New("t", Keys)
	tr.SetFrequency(4)
	tr.SetLeadTime(2)

	want := []int{2, 3, 0, 1, 2, 3, 0}
	for beat, w := range want {
		if got := tr.CyclePosition(beat); got != w {
			t.Errorf("CyclePosition(%d) = %d, want %d", beat, got, w)
		}
		if tr.CyclePosition(beat) == 0 && tr.Due(beat) != Promote {
			t.Errorf("beat %d: dot 0 lit but not a reveal beat", beat)
		}
	}
	if got := tr.BeatInCycle(5); got != 2 {
		t.Errorf("BeatInCycle(5) = %d, want 2", got)
	}
}

func TestNewNumbered(t *testing.T) {
	odd := NewNumbered(3)
	even := NewNumbered(2)
	if odd.Name != "Track 3" || !slices.Equal(odd.Items, Keys) {
		t.Errorf("odd track = %q %v", odd.Name, odd.Items)
	}
	if even.Name != "Progression 2" || !slices.Equal(even.Items, Progressions) {
		t.Errorf("even track = %q %v", even.Name, even.Items)
	}
	for _, tr := range []Track{odd, even} {
		if err := tr.Validate(); err != nil {
			t.Errorf("%s: %v", tr.Name, err)
		}
	}
}
