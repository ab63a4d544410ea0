package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadSMF parses a standard MIDI file from disk. The parser can panic
// on malformed input, so that is recovered into an error.
// https://github.com/gomidi/midi/issues/20
func ReadSMF(path string) (s *smf.SMF, e error) {
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

// TrackStats summarizes one track of a read-back MIDI file.
type TrackStats struct {
	Name      string `json:"name"`
	Notes     int    `json:"notes"`
	LastTicks uint32 `json:"last_ticks"`
}

// FileStats summarizes a read-back MIDI file.
type FileStats struct {
	Tracks []TrackStats `json:"tracks"`
	Notes  int          `json:"notes"`
}

// Stats walks every track counting note-ons, for sanity-checking a
// rendered file.
func Stats(s *smf.SMF) FileStats {
	var fs FileStats
	for _, track := range s.Tracks {
		var ts TrackStats
		var abs uint32
		for _, ev := range track {
			abs += ev.Delta
			var text string
			if ev.Message.GetMetaTrackName(&text) {
				ts.Name = text
			}
			var ch, key, vel uint8
			if ev.Message.GetNoteStart(&ch, &key, &vel) {
				ts.Notes++
			}
		}
		ts.LastTicks = abs
		fs.Notes += ts.Notes
		fs.Tracks = append(fs.Tracks, ts)
	}
	return fs
}
