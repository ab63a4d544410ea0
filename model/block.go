package model

// Instrument family names, in generation order. Also the keys of
// ResolvedBlock.PartParams and of the rhythm library categories.
const (
	FamilyPiano  = "piano"
	FamilyDrums  = "drums"
	FamilyBass   = "bass"
	FamilyChords = "chords"
	FamilyGuitar = "guitar"
	FamilyMelody = "melody"
)

// Families lists every instrument family in a fixed order so that runs
// are deterministic regardless of map iteration.
var Families = []string{
	FamilyPiano, FamilyDrums, FamilyBass, FamilyChords, FamilyGuitar, FamilyMelody,
}

// ResolvedBlock is one chord-event's worth of fully merged, time
// positioned parameters. Built once by the stream builder, then consumed
// read-only by every instrument generator.
type ResolvedBlock struct {
	SectionName string  `json:"section_name"`
	StartOffset float64 `json:"start_offset"` // beats from song start
	Duration    float64 `json:"duration"`     // beats

	ChordLabel string       `json:"chord_label"`
	Chord      *ChordSymbol `json:"chord,omitempty"` // nil when IsRest
	IsRest     bool         `json:"is_rest,omitempty"`

	TonicOfSection string   `json:"tonic_of_section"`
	Mode           string   `json:"mode"`
	TensionsToAdd  []string `json:"tensions_to_add,omitempty"`

	Tempo         float64       `json:"tempo"`
	TimeSignature TimeSignature `json:"time_signature"`

	IsFirstInSection bool `json:"is_first_in_section,omitempty"`
	IsLastInSection  bool `json:"is_last_in_section,omitempty"`

	// One merged parameter dictionary per enabled family, keyed by the
	// Family* constants.
	PartParams map[string]map[string]any `json:"part_params"`
}

// NoteEvent is the unit handed to the SMF writer: one note with absolute
// timing in beats.
type NoteEvent struct {
	Key      uint8   `json:"key"`
	Velocity uint8   `json:"velocity"`
	Channel  uint8   `json:"channel"`
	Start    float64 `json:"start"`    // beats from song start
	Duration float64 `json:"duration"` // beats
}
