package render

import (
	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/chord"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/util"
)

// renderMelody walks the section's scale between the configured octave
// bounds. Movement is mostly stepwise with a bias toward chord tones on
// strong beats, and the density parameter thins the line by dropping
// offbeat steps.
func (r *Renderer) renderMelody(blocks []model.ResolvedBlock) ([]*Track, error) {
	t := &Track{Name: "melody", Channel: channelMelody, Program: programMelody}
	d := r.cfg.Family(model.FamilyMelody)

	cursor := -1 // scale index carried across blocks
	for i := range blocks {
		blk := &blocks[i]
		if blk.IsRest {
			continue
		}
		acc := r.accessor(model.FamilyMelody, blk)
		pat, err := r.pattern(model.FamilyMelody, arrange.KeyRhythmKey, blk, acc, d)
		if err != nil {
			return nil, err
		}
		octLow, err := acc.Int("octave_low", 4)
		if err != nil {
			return nil, err
		}
		octHigh, err := acc.Int("octave_high", 5)
		if err != nil {
			return nil, err
		}
		density, err := acc.Float("density", 0.7)
		if err != nil {
			return nil, err
		}

		scale, err := melodyScale(blk, octLow, octHigh)
		if err != nil {
			return nil, err
		}
		if len(scale) == 0 {
			continue
		}
		vr := velocityRange(blk, model.FamilyMelody)
		base := r.baseVelocity(vr[0], vr[1])

		var events []model.NoteEvent
		if pat.IsFixed() && len(pat.Pattern) > 0 {
			events = r.expandFixed(blk, pat, channelMelody, base, func(ev *model.PatternEvent) []uint8 {
				cursor = r.stepCursor(cursor, len(scale))
				return []uint8{scale[cursor]}
			})
		} else {
			events, cursor = r.scaleWalk(blk, scale, cursor, base, density)
		}

		if err := r.humanizeIfSet(acc, events); err != nil {
			return nil, err
		}
		t.Events = append(t.Events, events...)
	}
	return []*Track{t}, nil
}

// melodyScale lists the scale keys of the block's tonic and mode across
// the octave span.
func melodyScale(blk *model.ResolvedBlock, octLow, octHigh int) ([]uint8, error) {
	var scale []uint8
	for oct := octLow; oct <= octHigh; oct++ {
		notes, err := chord.ScalePitches(blk.TonicOfSection, blk.Mode, oct)
		if err != nil {
			return nil, err
		}
		scale = append(scale, notes...)
	}
	return scale, nil
}

// stepCursor moves the scale cursor by at most two steps, staying in
// bounds. A fresh cursor starts mid-range.
func (r *Renderer) stepCursor(cursor, scaleLen int) int {
	if cursor < 0 || cursor >= scaleLen {
		return scaleLen / 2
	}
	step := r.rng.Intn(5) - 2
	return util.Clamp(cursor+step, 0, scaleLen-1)
}

// scaleWalk emits eighth notes across the block, each a small move from
// the previous pitch, with downbeats always sounding and offbeats
// gated by density.
func (r *Renderer) scaleWalk(blk *model.ResolvedBlock, scale []uint8, cursor int, base int, density float64) ([]model.NoteEvent, int) {
	const stepQL = 0.5
	var out []model.NoteEvent
	for t := 0.0; t < blk.Duration; t += stepQL {
		onBeat := t == float64(int(t))
		if !onBeat && r.rng.Float64() >= density {
			continue
		}
		cursor = r.stepCursor(cursor, len(scale))
		vel := base
		if onBeat {
			vel += 6
		}
		dur := stepQL
		if t+dur > blk.Duration {
			dur = blk.Duration - t
		}
		out = append(out, model.NoteEvent{
			Key:      scale[cursor],
			Velocity: util.ClampVelocity(vel),
			Channel:  channelMelody,
			Start:    blk.StartOffset + t,
			Duration: dur,
		})
	}
	return out, cursor
}
