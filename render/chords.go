package render

import (
	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/model"
)

// renderChords sustains the block voicing under its rhythm pattern,
// normally whole notes. It is the pad layer behind the busier parts.
func (r *Renderer) renderChords(blocks []model.ResolvedBlock) ([]*Track, error) {
	t := &Track{Name: "chords", Channel: channelChords, Program: programChords}
	d := r.cfg.Family(model.FamilyChords)

	for i := range blocks {
		blk := &blocks[i]
		if blk.IsRest {
			continue
		}
		acc := r.accessor(model.FamilyChords, blk)
		pat, err := r.pattern(model.FamilyChords, arrange.KeyRhythmKey, blk, acc, d)
		if err != nil {
			return nil, err
		}
		octave, err := acc.Int("target_octave", 3)
		if err != nil {
			return nil, err
		}
		numVoices, err := acc.Int("num_voices", 4)
		if err != nil {
			return nil, err
		}
		style, err := acc.Str("voicing_style", "closed")
		if err != nil {
			return nil, err
		}

		voicing := voicePitches(blk, style, octave, numVoices)
		vr := velocityRange(blk, model.FamilyChords)
		base := r.baseVelocity(vr[0], vr[1])

		events := r.expandFixed(blk, pat, channelChords, base, func(ev *model.PatternEvent) []uint8 {
			return voicing
		})
		if err := r.humanizeIfSet(acc, events); err != nil {
			return nil, err
		}
		t.Events = append(t.Events, events...)
	}
	return []*Track{t}, nil
}
