// Package config loads runtime settings and track presets
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"gopkg.in/yaml.v3"

	"github.com/moonmeter/moonmeter/pkg/track"
)

// Preset is the read-only starting state described by a YAML file
type Preset struct {
	BPM    int
	Tracks []track.Track
}

type presetFile struct {
	BPM    int          `yaml:"bpm,omitempty"`
	Tracks []trackEntry `yaml:"tracks"`
}

type trackEntry struct {
	Name      string   `yaml:"name"`
	Items     []string `yaml:"items"`
	Excluded  []string `yaml:"excluded,omitempty"`
	Frequency *int     `yaml:"frequency,omitempty"`
	LeadTime  *int     `yaml:"leadtime,omitempty"`
	Enabled   *bool    `yaml:"enabled,omitempty"`
}

// LoadTracks decodes and validates a preset. Omitted timing fields take the
// track defaults; explicit values are validated, not clamped.
func LoadTracks(r io.Reader) (Preset, error) {
	var pf presetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		if err == io.EOF {
			return Preset{}, fault.New("empty preset", fmsg.WithDesc("empty preset", "The track preset is empty"), ftag.With(ftag.InvalidArgument))
		}
		return Preset{}, fault.Wrap(err, fmsg.WithDesc("decode preset", "The track preset is not valid YAML"), ftag.With(ftag.InvalidArgument))
	}
	if len(pf.Tracks) == 0 {
		return Preset{}, fault.New("preset has no tracks", fmsg.WithDesc("no tracks", "The track preset defines no tracks"), ftag.With(ftag.InvalidArgument))
	}

	p := Preset{BPM: pf.BPM}
	for i, entry := range pf.Tracks {
		t, err := entry.build(i)
		if err != nil {
			return Preset{}, err
		}
		p.Tracks = append(p.Tracks, t)
	}
	return p, nil
}

// LoadTracksFile reads a preset from disk
func LoadTracksFile(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, fault.Wrap(err, fmsg.WithDesc("open preset", fmt.Sprintf("Could not open track preset %s", path)), ftag.With(ftag.NotFound))
	}
	defer f.Close()

	p, err := LoadTracks(f)
	if err != nil {
		return Preset{}, fault.Wrap(err, fmsg.With(path))
	}
	return p, nil
}

func (e trackEntry) build(i int) (track.Track, error) {
	name := e.Name
	if name == "" {
		name = "Track " + strconv.Itoa(i+1)
	}

	t := track.New(name, e.Items)
	if e.Frequency != nil {
		t.Frequency = *e.Frequency
		if e.LeadTime == nil && t.LeadTime >= t.Frequency {
			t.LeadTime = 0
		}
	}
	if e.LeadTime != nil {
		t.LeadTime = *e.LeadTime
	}
	if e.Enabled != nil {
		t.Enabled = *e.Enabled
	}
	for _, item := range e.Excluded {
		t.Exclude(item)
		if !t.IsExcluded(item) {
			t.Excluded = append(t.Excluded, item) // rejected by Validate below
		}
	}

	if err := t.Validate(); err != nil {
		return track.Track{}, fault.Wrap(err, fmsg.With(fmt.Sprintf("track %d (%s)", i, name)))
	}
	return t, nil
}
