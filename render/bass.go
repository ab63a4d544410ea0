package render

import (
	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/chord"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/util"
)

// renderBass plays roots, fifths and octaves from its pattern's typed
// events, or an algorithmic walking or octave-jump line.
func (r *Renderer) renderBass(blocks []model.ResolvedBlock) ([]*Track, error) {
	t := &Track{Name: "bass", Channel: channelBass, Program: programBass}
	d := r.cfg.Family(model.FamilyBass)

	for i := range blocks {
		blk := &blocks[i]
		if blk.IsRest {
			continue
		}
		acc := r.accessor(model.FamilyBass, blk)
		pat, err := r.pattern(model.FamilyBass, arrange.KeyRhythmKey, blk, acc, d)
		if err != nil {
			return nil, err
		}
		octave, err := acc.Int("target_octave", 2)
		if err != nil {
			return nil, err
		}
		vr := velocityRange(blk, model.FamilyBass)
		base := r.baseVelocity(vr[0], vr[1])
		nextPC := nextRootPC(blocks, i)

		var events []model.NoteEvent
		switch pat.PatternType {
		case model.PatternWalking8ths:
			line := r.walkingLine(blk, nextPC, octave, 0.5)
			events = lineEvents(blk, line, 0.5, channelBass, base)
		case model.PatternOctaveJump:
			events = r.octaveJump(blk, octave, base, 0.5)
		default:
			root := chord.RootMIDI(blk.Chord, octave)
			voicing := midiKeys(root)
			events = r.expandFixed(blk, pat, channelBass, base, func(ev *model.PatternEvent) []uint8 {
				return eventPitches(ev, blk, voicing, octave, nextPC)
			})
		}

		if err := r.humanizeIfSet(acc, events); err != nil {
			return nil, err
		}
		t.Events = append(t.Events, events...)
	}
	return []*Track{t}, nil
}

// walkingLine builds a stepwise line through the chord tones, landing
// on a chromatic approach to the next block's root at the final step.
func (r *Renderer) walkingLine(blk *model.ResolvedBlock, nextPC, octave int, stepQL float64) []uint8 {
	steps := int(blk.Duration / stepQL)
	if steps <= 0 {
		return nil
	}
	root := chord.RootMIDI(blk.Chord, octave)
	tones := chord.Intervals(blk.Chord)

	line := make([]uint8, 0, steps)
	for i := 0; i < steps; i++ {
		var key int
		switch {
		case i == 0:
			key = root
		case i == steps-1 && nextPC >= 0:
			key = approachKey(root, nextPC)
		default:
			key = root + tones[r.rng.Intn(len(tones))]
		}
		line = append(line, uint8(util.Clamp(key, 0, 127)))
	}
	return line
}

// octaveJump alternates the root and its upper octave at a fixed step.
func (r *Renderer) octaveJump(blk *model.ResolvedBlock, octave, base int, stepQL float64) []model.NoteEvent {
	root := chord.RootMIDI(blk.Chord, octave)
	var line []uint8
	steps := int(blk.Duration / stepQL)
	for i := 0; i < steps; i++ {
		key := root
		if i%2 == 1 {
			key = root + 12
		}
		line = append(line, uint8(util.Clamp(key, 0, 127)))
	}
	return lineEvents(blk, line, stepQL, channelBass, base)
}
