package render

import (
	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/chord"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/util"
)

// renderGuitar strums or arpeggiates the block voicing. Strummed hits
// stagger string onsets by the strum delay, downstrokes low to high and
// upstrokes high to low. The tremolo-crescendo pattern type ramps
// velocity across repeated hits, and muted events collapse to short low
// chucks.
func (r *Renderer) renderGuitar(blocks []model.ResolvedBlock) ([]*Track, error) {
	t := &Track{Name: "guitar", Channel: channelGuitar, Program: programGuitar}
	d := r.cfg.Family(model.FamilyGuitar)

	for i := range blocks {
		blk := &blocks[i]
		if blk.IsRest {
			continue
		}
		acc := r.accessor(model.FamilyGuitar, blk)
		pat, err := r.pattern(model.FamilyGuitar, arrange.KeyRhythmKey, blk, acc, d)
		if err != nil {
			return nil, err
		}
		octave, err := acc.Int("target_octave", 3)
		if err != nil {
			return nil, err
		}
		numStrings, err := acc.Int("num_strings", 6)
		if err != nil {
			return nil, err
		}
		strumDelay, err := acc.Float("strum_delay_ql", 0.02)
		if err != nil {
			return nil, err
		}
		muteQL, err := acc.Float("mute_note_ql", 0.1)
		if err != nil {
			return nil, err
		}

		voicing := guitarVoicing(blk, octave, numStrings)
		vr := velocityRange(blk, model.FamilyGuitar)
		base := r.baseVelocity(vr[0], vr[1])

		var events []model.NoteEvent
		switch pat.PatternType {
		case model.PatternArpeggio:
			noteQL, err := acc.Float("arpeggio_note_ql", 0.5)
			if err != nil {
				return nil, err
			}
			events = r.expandArpeggio(blk, pat, voicing, channelGuitar, base, noteQL)
		case model.PatternTremoloCrescendo:
			events = r.tremoloCrescendo(blk, voicing, base, muteQL)
		default:
			events = r.strum(blk, pat, voicing, base, strumDelay, muteQL)
		}

		if err := r.humanizeIfSet(acc, events); err != nil {
			return nil, err
		}
		t.Events = append(t.Events, events...)
	}
	return []*Track{t}, nil
}

// guitarVoicing widens the chord across the string count: the root is
// doubled an octave down like an open chord shape.
func guitarVoicing(blk *model.ResolvedBlock, octave, numStrings int) []uint8 {
	notes := chord.Pitches(blk.Chord, octave, blk.TensionsToAdd...)
	if len(notes) > 0 && int(notes[0]) >= 12 {
		notes = append([]uint8{notes[0] - 12}, notes...)
	}
	if numStrings > 0 && len(notes) > numStrings {
		notes = notes[:numStrings]
	}
	return notes
}

// strum tiles the pattern across the block one hit at a time so each
// hit can stagger its string onsets in the event's strum direction.
func (r *Renderer) strum(blk *model.ResolvedBlock, pat *model.RhythmPattern, voicing []uint8, base int, delay, muteQL float64) []model.NoteEvent {
	patLen := pat.LengthBeats
	if patLen <= 0 {
		patLen = blk.TimeSignature.BeatsPerBar()
	}

	var out []model.NoteEvent
	for cycle := 0.0; cycle < blk.Duration; cycle += patLen {
		for i := range pat.Pattern {
			ev := &pat.Pattern[i]
			start := cycle + ev.Offset
			if start >= blk.Duration {
				continue
			}
			if ev.Probability != nil && r.rng.Float64() >= *ev.Probability {
				continue
			}

			vel := base
			if ev.VelocityFactor != nil {
				vel = int(float64(vel) * *ev.VelocityFactor)
			}
			if ev.Velocity != nil {
				vel = *ev.Velocity
			}
			if ev.Accent {
				vel += 10
			}
			dur := ev.Duration
			if start+dur > blk.Duration {
				dur = blk.Duration - start
			}
			if dur <= 0 {
				continue
			}

			if ev.Type == "mute" {
				for si, key := range voicing {
					out = append(out, model.NoteEvent{
						Key:      key,
						Velocity: util.ClampVelocity(vel - 20),
						Channel:  channelGuitar,
						Start:    blk.StartOffset + start + float64(si)*delay,
						Duration: muteQL,
					})
				}
				continue
			}
			ordered := voicing
			if ev.StrumDirection == "up" {
				ordered = reversed(voicing)
			}
			for si, key := range ordered {
				out = append(out, model.NoteEvent{
					Key:      key,
					Velocity: util.ClampVelocity(vel),
					Channel:  channelGuitar,
					Start:    blk.StartOffset + start + float64(si)*delay,
					Duration: util.Max(muteQL, dur-float64(si)*delay),
				})
			}
		}
	}
	return out
}

// tremoloCrescendo repeats the voicing at sixteenths, ramping velocity
// from soft to the block's base across the block.
func (r *Renderer) tremoloCrescendo(blk *model.ResolvedBlock, voicing []uint8, base int, noteQL float64) []model.NoteEvent {
	if noteQL <= 0 {
		noteQL = 0.25
	}
	steps := int(blk.Duration / noteQL)
	if steps <= 0 {
		return nil
	}
	var out []model.NoteEvent
	for i := 0; i < steps; i++ {
		vel := base/2 + (base-base/2)*i/util.Max(1, steps-1)
		for _, key := range voicing {
			out = append(out, model.NoteEvent{
				Key:      key,
				Velocity: util.ClampVelocity(vel),
				Channel:  channelGuitar,
				Start:    blk.StartOffset + float64(i)*noteQL,
				Duration: noteQL,
			})
		}
	}
	return out
}

func reversed(in []uint8) []uint8 {
	out := make([]uint8, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
