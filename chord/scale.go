package chord

import "strings"

var scaleSteps = map[string][]int{
	"major":         {0, 2, 4, 5, 7, 9, 11},
	"ionian":        {0, 2, 4, 5, 7, 9, 11},
	"dorian":        {0, 2, 3, 5, 7, 9, 10},
	"phrygian":      {0, 1, 3, 5, 7, 8, 10},
	"lydian":        {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":    {0, 2, 4, 5, 7, 9, 10},
	"minor":         {0, 2, 3, 5, 7, 8, 10},
	"aeolian":       {0, 2, 3, 5, 7, 8, 10},
	"locrian":       {0, 1, 3, 5, 6, 8, 10},
	"harmonicminor": {0, 2, 3, 5, 7, 8, 11},
	"melodicminor":  {0, 2, 3, 5, 7, 9, 11},
}

// ScaleSemitones returns the semitone steps of the named mode. Unknown
// modes fall back to major, reported by ok=false.
func ScaleSemitones(mode string) (steps []int, ok bool) {
	steps, ok = scaleSteps[strings.ToLower(strings.TrimSpace(mode))]
	if !ok {
		steps = scaleSteps["major"]
	}
	return steps, ok
}

// PitchClass parses a bare note name like "F#" or "Bb" into a pitch
// class 0..11.
func PitchClass(name string) (int, error) {
	p := &parser{label: strings.TrimSpace(name)}
	_, pc, perr := p.pitchName()
	if perr != nil {
		return 0, perr
	}
	if p.pos != len(p.label) {
		return 0, p.fail("trailing characters after note name")
	}
	return pc, nil
}

// ScalePitches lists the MIDI keys of one octave of the tonic's mode
// starting at the given octave.
func ScalePitches(tonic, mode string, octave int) ([]uint8, error) {
	pc, err := PitchClass(tonic)
	if err != nil {
		return nil, err
	}
	steps, _ := ScaleSemitones(mode)
	base := (octave+1)*12 + pc
	notes := make([]uint8, 0, len(steps))
	for _, s := range steps {
		key := base + s
		if key < 0 || key > 127 {
			continue
		}
		notes = append(notes, uint8(key))
	}
	return notes, nil
}
