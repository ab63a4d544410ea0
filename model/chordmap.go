package model

// MusicalIntent is the authored emotional cue for a section or a single
// chord block. Both values are free-form keywords that the intent tables
// translate into concrete performance parameters.
type MusicalIntent struct {
	Emotion   string `json:"emotion,omitempty"`
	Intensity string `json:"intensity,omitempty"`
}

type ChordEvent struct {
	Chord    string  `json:"chord"`
	Duration float64 `json:"duration,omitempty"` // beats; 0 means "use section/bar default"

	// Chord-level intent overrides. Empty string means "inherit from section".
	Emotion   string `json:"emotion,omitempty"`
	Intensity string `json:"intensity,omitempty"`
	Mode      string `json:"mode,omitempty"`

	TensionsToAdd []string `json:"tensions_to_add,omitempty"`

	// Per-instrument-family parameter overrides for just this block.
	// Keys of the outer map are family names (piano, drums, ...).
	PartSpecificHints map[string]map[string]any `json:"part_specific_hints,omitempty"`
}

type Section struct {
	Name          string        `json:"name"`
	MusicalIntent MusicalIntent `json:"musical_intent,omitempty"`

	// Per-instrument-family settings applied to every block in the section.
	PartSettings map[string]map[string]any `json:"part_settings,omitempty"`

	// Optional overrides of the running global state. Zero values mean
	// "keep whatever is in effect".
	Tempo         float64 `json:"tempo,omitempty"`
	TimeSignature string  `json:"time_signature,omitempty"`
	Tonic         string  `json:"tonic,omitempty"`
	Mode          string  `json:"mode,omitempty"`

	// When set and a chord has no explicit duration, the section length is
	// divided evenly among its chords.
	LengthInMeasures float64 `json:"length_in_measures,omitempty"`

	ChordProgression []ChordEvent `json:"chord_progression"`
}

// ChordMap is the root document describing one song.
type ChordMap struct {
	ProjectTitle        string    `json:"project_title,omitempty"`
	GlobalTempo         float64   `json:"global_tempo"`
	GlobalTimeSignature string    `json:"global_time_signature"`
	GlobalKeyTonic      string    `json:"global_key_tonic"`
	GlobalKeyMode       string    `json:"global_key_mode"`
	Sections            []Section `json:"sections"`
}
