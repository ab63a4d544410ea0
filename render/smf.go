package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 480

// absEvent is one MIDI message pinned to an absolute tick, used while
// assembling a track before delta encoding.
type absEvent struct {
	tick uint32
	off  bool
	msg  smf.Message
}

func beatsToTicks(beats float64) uint32 {
	if beats < 0 {
		beats = 0
	}
	return uint32(beats*ticksPerQuarter + 0.5)
}

// WriteSMF writes the song as a format-1 MIDI file: a meta track with
// the tempo and meter map, then one track per instrument voice.
func WriteSMF(song *Song, path string) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	s.Add(metaTrack(song))
	for _, t := range song.Tracks {
		s.Add(noteTrack(t))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteSMFTo renders the song into a writer instead of a file.
func WriteSMFTo(song *Song, w io.Writer) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	s.Add(metaTrack(song))
	for _, t := range song.Tracks {
		s.Add(noteTrack(t))
	}
	_, err := s.WriteTo(w)
	return err
}

// metaTrack carries the sequence name plus every tempo and meter change
// in the block stream.
func metaTrack(song *Song) smf.Track {
	var tr smf.Track
	name := song.Title
	if name == "" {
		name = "untitled"
	}
	tr.Add(0, smf.MetaTrackSequenceName(name))

	lastTick := uint32(0)
	lastTempo := 0.0
	var lastMeter string
	for i := range song.Blocks {
		blk := &song.Blocks[i]
		tick := beatsToTicks(blk.StartOffset)
		if blk.Tempo != lastTempo {
			tr.Add(tick-lastTick, smf.MetaTempo(blk.Tempo))
			lastTick = tick
			lastTempo = blk.Tempo
		}
		if meter := blk.TimeSignature.String(); meter != lastMeter {
			tr.Add(tick-lastTick, smf.MetaMeter(uint8(blk.TimeSignature.Num), uint8(blk.TimeSignature.Denom)))
			lastTick = tick
			lastMeter = meter
		}
	}
	tr.Close(0)
	return tr
}

// noteTrack delta-encodes one instrument voice. At equal ticks note
// offs sort before note ons so retriggered keys are not swallowed.
func noteTrack(t *Track) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(t.Name))
	if !t.IsDrums {
		tr.Add(0, smf.Message(midi.ProgramChange(t.Channel, t.Program)))
	}

	events := make([]absEvent, 0, 2*len(t.Events))
	for _, ev := range t.Events {
		on := beatsToTicks(ev.Start)
		off := beatsToTicks(ev.Start + ev.Duration)
		if off <= on {
			off = on + 1
		}
		events = append(events,
			absEvent{tick: on, msg: smf.Message(midi.NoteOn(ev.Channel, ev.Key, ev.Velocity))},
			absEvent{tick: off, off: true, msg: smf.Message(midi.NoteOff(ev.Channel, ev.Key))},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	last := uint32(0)
	for _, ev := range events {
		tr.Add(ev.tick-last, ev.msg)
		last = ev.tick
	}
	tr.Close(0)
	return tr
}

// OutputPath resolves the output file location from the configured
// directory, explicit filename or template, and the song title.
func OutputPath(dir, filename, template, title string) string {
	if filename == "" {
		slug := sanitizeTitle(title)
		if slug == "" {
			slug = "untitled"
		}
		filename = strings.ReplaceAll(template, "{song_title}", slug)
	}
	return filepath.Join(dir, filename)
}

func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
