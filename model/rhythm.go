package model

// Pattern types. Anything other than fixed is expanded by the instrument
// generator that asked for it, using the pattern's Options as parameters.
const (
	PatternFixed            = "fixed_pattern"
	PatternWalking8ths      = "walking_8ths"
	PatternOctaveJump       = "octave_jump"
	PatternScaleWalk        = "scale_walk"
	PatternTremoloCrescendo = "tremolo_crescendo"
	PatternRandomTomFill    = "random_tom_fill"
	PatternArpeggio         = "arpeggio"
)

// Semantic roles a pattern event can carry (bass and piano LH mostly).
const (
	EventTypeRoot       = "root"
	EventTypeFifth      = "fifth"
	EventTypeOctaveRoot = "octave_root"
	EventTypeApproach   = "approach"
	EventTypeGhost      = "ghost"
)

// PatternEvent is one timed hit within a fixed rhythm pattern.
type PatternEvent struct {
	Offset   float64 `json:"offset" yaml:"offset"`     // beats from pattern start
	Duration float64 `json:"duration" yaml:"duration"` // beats

	// Exactly one of the two velocity forms is normally used: a factor
	// scaling the block's base velocity, or an absolute value.
	VelocityFactor *float64 `json:"velocity_factor,omitempty" yaml:"velocity_factor,omitempty"`
	Velocity       *int     `json:"velocity,omitempty" yaml:"velocity,omitempty"`

	Type           string   `json:"type,omitempty" yaml:"type,omitempty"`
	Instrument     string   `json:"instrument,omitempty" yaml:"instrument,omitempty"` // percussion only
	Probability    *float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
	StrumDirection string   `json:"strum_direction,omitempty" yaml:"strum_direction,omitempty"`
	ScaleDegree    string   `json:"scale_degree,omitempty" yaml:"scale_degree,omitempty"`
	Octave         *int     `json:"octave,omitempty" yaml:"octave,omitempty"`
	Accent         bool     `json:"accent,omitempty" yaml:"accent,omitempty"`
}

// RhythmPattern is one reusable timing/velocity template. Patterns are
// stored fully resolved: any inherit chain is flattened at library load.
type RhythmPattern struct {
	Key           string   `json:"-" yaml:"-"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	TimeSignature string   `json:"time_signature,omitempty" yaml:"time_signature,omitempty"`
	LengthBeats   float64  `json:"length_beats,omitempty" yaml:"length_beats,omitempty"`
	PatternType   string   `json:"pattern_type,omitempty" yaml:"pattern_type,omitempty"`
	VelocityBase  *int     `json:"velocity_base,omitempty" yaml:"velocity_base,omitempty"`

	Pattern []PatternEvent `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`

	Inherit string                    `json:"inherit,omitempty" yaml:"inherit,omitempty"`
	FillIns map[string][]PatternEvent `json:"fill_ins,omitempty" yaml:"fill_ins,omitempty"`
	Swing   *float64                  `json:"swing,omitempty" yaml:"swing,omitempty"`
}

// IsFixed reports whether the pattern is a literal event list rather than
// an algorithmically generated one.
func (p RhythmPattern) IsFixed() bool {
	return p.PatternType == "" || p.PatternType == PatternFixed
}
