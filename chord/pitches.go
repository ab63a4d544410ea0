package chord

import (
	"sort"

	"github.com/kinoshitayoshihiro/haru/model"
)

var triads = map[string][]int{
	model.QualityMajor:      {0, 4, 7},
	model.QualityMinor:      {0, 3, 7},
	model.QualityDiminished: {0, 3, 6},
	model.QualityAugmented:  {0, 4, 8},
	model.QualitySus2:       {0, 2, 7},
	model.QualitySus4:       {0, 5, 7},
	model.QualityDominant:   {0, 4, 7},
	model.QualityPower:      {0, 7},
}

// degreeSemitones maps scale degrees used by add/omit tokens and
// tensions_to_add to semitone offsets from the root.
var degreeSemitones = map[int]int{
	2: 2, 3: 4, 4: 5, 5: 7, 6: 9, 9: 14, 11: 17, 13: 21,
}

func seventhFor(quality string) int {
	switch quality {
	case model.QualityMajor:
		return 11
	case model.QualityDiminished:
		return 9
	default:
		return 10
	}
}

// Intervals returns the chord's semitone offsets from the root, with
// extensions, alterations, add/omit tokens and any extra tensions
// applied. Extra tensions use the alteration/degree syntax ("9", "b9",
// "#11").
func Intervals(sym *model.ChordSymbol, tensions ...string) []int {
	present := make(map[int]int) // degree -> semitones; 1=root, 3=third, ...
	base := triads[sym.Quality]
	if len(base) == 0 {
		base = triads[model.QualityMajor]
	}
	present[1] = 0
	if len(base) > 2 {
		present[3] = base[1]
		present[5] = base[2]
	} else {
		present[5] = base[1]
	}

	switch sym.Extension {
	case 6:
		present[6] = 9
	case 7:
		present[7] = seventhFor(sym.Quality)
	case 9:
		present[7] = seventhFor(sym.Quality)
		present[9] = 14
	case 11:
		present[7] = seventhFor(sym.Quality)
		present[9] = 14
		present[11] = 17
	case 13:
		present[7] = seventhFor(sym.Quality)
		present[9] = 14
		present[13] = 21
	}

	applyTension := func(t string) {
		if t == "" {
			return
		}
		shift := 0
		switch t[0] {
		case 'b':
			shift = -1
			t = t[1:]
		case '#':
			shift = 1
			t = t[1:]
		}
		var deg int
		switch t {
		case "5":
			deg = 5
		case "9":
			deg = 9
		case "11":
			deg = 11
		case "13":
			deg = 13
		default:
			return
		}
		present[deg] = degreeSemitones[deg] + shift
	}
	for _, a := range sym.Alterations {
		applyTension(a)
	}
	for _, t := range tensions {
		applyTension(t)
	}
	for _, deg := range sym.Added {
		if semis, ok := degreeSemitones[deg]; ok {
			present[deg] = semis
		}
	}
	for _, deg := range sym.Omitted {
		delete(present, deg)
	}

	intervals := make([]int, 0, len(present))
	for _, semis := range present {
		intervals = append(intervals, semis)
	}
	sort.Ints(intervals)
	return intervals
}

// RootMIDI returns the MIDI key of the chord root at the given octave,
// with C4 = 60.
func RootMIDI(sym *model.ChordSymbol, octave int) int {
	return (octave+1)*12 + sym.RootPC
}

// Pitches realizes the chord as ascending MIDI keys at the target
// octave. A slash bass is prepended one octave below the root. Keys that
// would leave the MIDI range are dropped.
func Pitches(sym *model.ChordSymbol, octave int, tensions ...string) []uint8 {
	root := RootMIDI(sym, octave)
	var notes []uint8
	if sym.Bass != "" {
		bass := (octave)*12 + sym.BassPC
		if bass >= 0 && bass <= 127 {
			notes = append(notes, uint8(bass))
		}
	}
	for _, iv := range Intervals(sym, tensions...) {
		key := root + iv
		if key < 0 || key > 127 {
			continue
		}
		notes = append(notes, uint8(key))
	}
	return notes
}
