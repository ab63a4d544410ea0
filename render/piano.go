package render

import (
	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/chord"
	"github.com/kinoshitayoshihiro/haru/config"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/params"
	"github.com/kinoshitayoshihiro/haru/util"
)

// renderPiano produces two tracks, right hand and left hand, from the
// same channel. The right hand plays the chord voicing under its rhythm
// pattern; the left hand plays roots, fifths and octaves per its own
// pattern, or an algorithmic walking line.
func (r *Renderer) renderPiano(blocks []model.ResolvedBlock) ([]*Track, error) {
	rh := &Track{Name: "piano RH", Channel: channelPiano, Program: programPiano}
	lh := &Track{Name: "piano LH", Channel: channelPiano, Program: programPiano}
	d := r.cfg.Family(model.FamilyPiano)

	for i := range blocks {
		blk := &blocks[i]
		if blk.IsRest {
			continue
		}
		acc := r.accessor(model.FamilyPiano, blk)
		vr := velocityRange(blk, model.FamilyPiano)
		lhLo, lhHi, rhLo, rhHi := splitVelocity(vr)

		rhEvents, err := r.pianoHand(blk, acc, d, arrange.KeyRhythmKey, "rh", r.baseVelocity(rhLo, rhHi), i, blocks)
		if err != nil {
			return nil, err
		}
		lhEvents, err := r.pianoHand(blk, acc, d, arrange.KeyRhythmKeyLH, "lh", r.baseVelocity(lhLo, lhHi), i, blocks)
		if err != nil {
			return nil, err
		}
		if err := r.humanizeIfSet(acc, rhEvents); err != nil {
			return nil, err
		}
		if err := r.humanizeIfSet(acc, lhEvents); err != nil {
			return nil, err
		}
		rh.Events = append(rh.Events, rhEvents...)
		lh.Events = append(lh.Events, lhEvents...)
	}
	return []*Track{rh, lh}, nil
}

func splitVelocity(vr []int) (lhLo, lhHi, rhLo, rhHi int) {
	if len(vr) == 4 {
		return vr[0], vr[1], vr[2], vr[3]
	}
	return vr[0], vr[1], vr[0], vr[1]
}

func (r *Renderer) pianoHand(blk *model.ResolvedBlock, acc *params.Accessor, d *config.FamilyDefaults, rhythmParam, hand string, base int, idx int, blocks []model.ResolvedBlock) ([]model.NoteEvent, error) {
	pat, err := r.pattern(model.FamilyPiano, rhythmParam, blk, acc, d)
	if err != nil {
		return nil, err
	}

	octave, err := acc.Int(hand+"_target_octave", 4)
	if err != nil {
		return nil, err
	}
	numVoices, err := acc.Int(hand+"_num_voices", 3)
	if err != nil {
		return nil, err
	}
	style, err := acc.Str(hand+"_voicing_style", "closed")
	if err != nil {
		return nil, err
	}

	voicing := voicePitches(blk, style, octave, numVoices)
	if len(voicing) == 0 {
		return nil, nil
	}

	switch pat.PatternType {
	case model.PatternArpeggio:
		noteQL, err := acc.Float("arp_note_ql", 0.5)
		if err != nil {
			return nil, err
		}
		return r.expandArpeggio(blk, pat, voicing, channelPiano, base, noteQL), nil
	case model.PatternWalking8ths:
		line := r.walkingLine(blk, nextRootPC(blocks, idx), octave, 0.5)
		return lineEvents(blk, line, 0.5, channelPiano, base), nil
	default:
		return r.expandFixed(blk, pat, channelPiano, base, func(ev *model.PatternEvent) []uint8 {
			return eventPitches(ev, blk, voicing, octave, nextRootPC(blocks, idx))
		}), nil
	}
}

// voicePitches realizes the block's chord at the target octave. The
// open style raises every second voice an octave.
func voicePitches(blk *model.ResolvedBlock, style string, octave, numVoices int) []uint8 {
	notes := chord.Pitches(blk.Chord, octave, blk.TensionsToAdd...)
	if numVoices > 0 && len(notes) > numVoices {
		notes = notes[:numVoices]
	}
	if style == "open" {
		for i := 1; i < len(notes); i += 2 {
			if int(notes[i])+12 <= 127 {
				notes[i] += 12
			}
		}
	}
	return notes
}

// eventPitches maps a pattern event's semantic type to concrete keys.
// Untyped events sound the whole voicing.
func eventPitches(ev *model.PatternEvent, blk *model.ResolvedBlock, voicing []uint8, octave, nextPC int) []uint8 {
	oct := octave
	if ev.Octave != nil {
		oct = *ev.Octave
	}
	root := chord.RootMIDI(blk.Chord, oct)
	switch ev.Type {
	case model.EventTypeRoot, model.EventTypeGhost:
		return midiKeys(root)
	case model.EventTypeFifth:
		return midiKeys(root + 7)
	case model.EventTypeOctaveRoot:
		return midiKeys(root, root+12)
	case model.EventTypeApproach:
		return midiKeys(approachKey(root, nextPC))
	default:
		return voicing
	}
}

func midiKeys(keys ...int) []uint8 {
	out := make([]uint8, 0, len(keys))
	for _, k := range keys {
		if k >= 0 && k <= 127 {
			out = append(out, uint8(k))
		}
	}
	return out
}

// approachKey picks the chromatic neighbor of the next block's root
// nearest to the current root.
func approachKey(currentRoot, nextPC int) int {
	if nextPC < 0 {
		return currentRoot
	}
	target := (currentRoot/12)*12 + nextPC
	if target > currentRoot+6 {
		target -= 12
	} else if target < currentRoot-6 {
		target += 12
	}
	if target > currentRoot {
		return target - 1
	}
	return target + 1
}

// nextRootPC returns the root pitch class of the next sounding block,
// or -1 at the end of the song.
func nextRootPC(blocks []model.ResolvedBlock, idx int) int {
	for i := idx + 1; i < len(blocks); i++ {
		if !blocks[i].IsRest {
			return blocks[i].Chord.RootPC
		}
	}
	return -1
}

// expandArpeggio steps through the voicing at fixed intervals. An
// "up_down" direction option bounces at the ends.
func (r *Renderer) expandArpeggio(blk *model.ResolvedBlock, pat *model.RhythmPattern, voicing []uint8, channel uint8, base int, noteQL float64) []model.NoteEvent {
	direction := "up"
	if pat.Options != nil {
		if v, ok := pat.Options["direction"].(string); ok {
			direction = v
		}
	}
	order := voicing
	if direction == "up_down" && len(voicing) > 2 {
		order = make([]uint8, 0, 2*len(voicing)-2)
		order = append(order, voicing...)
		for i := len(voicing) - 2; i > 0; i-- {
			order = append(order, voicing[i])
		}
	}

	var out []model.NoteEvent
	step := 0
	for t := 0.0; t < blk.Duration; t += noteQL {
		dur := noteQL
		if t+dur > blk.Duration {
			dur = blk.Duration - t
		}
		out = append(out, model.NoteEvent{
			Key:      order[step%len(order)],
			Velocity: util.ClampVelocity(base),
			Channel:  channel,
			Start:    blk.StartOffset + t,
			Duration: dur,
		})
		step++
	}
	return out
}

// lineEvents lays a precomputed key sequence across the block at a
// fixed step.
func lineEvents(blk *model.ResolvedBlock, line []uint8, stepQL float64, channel uint8, base int) []model.NoteEvent {
	var out []model.NoteEvent
	for i, key := range line {
		start := float64(i) * stepQL
		if start >= blk.Duration {
			break
		}
		dur := stepQL
		if start+dur > blk.Duration {
			dur = blk.Duration - start
		}
		out = append(out, model.NoteEvent{
			Key:      key,
			Velocity: util.ClampVelocity(base),
			Channel:  channel,
			Start:    blk.StartOffset + start,
			Duration: dur,
		})
	}
	return out
}
