package model

// ChordSymbol is the parsed form of a chord label like "C7b9#11/G".
type ChordSymbol struct {
	Root   string `json:"root"`    // e.g. "C", "F#", "Bb"
	RootPC int    `json:"root_pc"` // pitch class 0..11

	Quality   string `json:"quality"`             // maj, min, dim, aug, sus2, sus4, dom, power
	Extension int    `json:"extension,omitempty"` // 0, 6, 7, 9, 11 or 13

	Alterations []string `json:"alterations,omitempty"` // b5, #5, b9, #9, #11, b13
	Added       []int    `json:"added,omitempty"`       // degrees from addN tokens
	Omitted     []int    `json:"omitted,omitempty"`     // degrees from omitN tokens

	Bass   string `json:"bass,omitempty"` // slash bass, "" if none
	BassPC int    `json:"bass_pc,omitempty"`
}

// Chord qualities produced by the grammar.
const (
	QualityMajor      = "maj"
	QualityMinor      = "min"
	QualityDiminished = "dim"
	QualityAugmented  = "aug"
	QualitySus2       = "sus2"
	QualitySus4       = "sus4"
	QualityDominant   = "dom" // bare extension, e.g. C7
	QualityPower      = "power"
)
