package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeSignature is an "N/D" meter.
type TimeSignature struct {
	Num   int `json:"num"`
	Denom int `json:"denom"`
}

// BeatsPerBar returns the bar length in quarter-note beats.
func (ts TimeSignature) BeatsPerBar() float64 {
	return float64(ts.Num) * 4.0 / float64(ts.Denom)
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Num, ts.Denom)
}

// ParseTimeSignature parses "N/D" with positive integer parts.
func ParseTimeSignature(s string) (TimeSignature, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return TimeSignature{}, fmt.Errorf("invalid time signature %q: want N/D", s)
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil || num <= 0 {
		return TimeSignature{}, fmt.Errorf("invalid time signature %q: bad numerator", s)
	}
	denom, err := strconv.Atoi(parts[1])
	if err != nil || denom <= 0 {
		return TimeSignature{}, fmt.Errorf("invalid time signature %q: bad denominator", s)
	}
	return TimeSignature{Num: num, Denom: denom}, nil
}
