package render

import (
	log "github.com/sirupsen/logrus"

	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/params"
	"github.com/kinoshitayoshihiro/haru/util"
)

// gmDrums maps the instrument names used in drum patterns to General
// MIDI percussion keys.
var gmDrums = map[string]uint8{
	"kick":       36,
	"snare":      38,
	"rimshot":    37,
	"clap":       39,
	"closed_hat": 42,
	"pedal_hat":  44,
	"open_hat":   46,
	"crash":      49,
	"ride":       51,
	"ride_bell":  53,
	"tom_low":    45,
	"tom_mid":    47,
	"tom_high":   50,
	"tambourine": 54,
	"cowbell":    56,
	"shaker":     70,
	"side_stick": 37,
	"floor_tom":  43,
	"splash":     55,
	"china":      52,
}

var fillTomKeys = []uint8{50, 47, 45, 43}

// renderDrums plays through rest blocks as well; a rest silences the
// pitched parts, not the timekeeping. Fills replace the final bar of a
// block when the configured interval elapses or a section ends.
func (r *Renderer) renderDrums(blocks []model.ResolvedBlock) ([]*Track, error) {
	t := &Track{Name: "drums", Channel: channelDrums, IsDrums: true}
	d := r.cfg.Family(model.FamilyDrums)

	sectionStart := 0.0
	for i := range blocks {
		blk := &blocks[i]
		if blk.IsFirstInSection {
			sectionStart = blk.StartOffset
		}
		acc := r.accessor(model.FamilyDrums, blk)
		pat, err := r.pattern(model.FamilyDrums, arrange.KeyRhythmKey, blk, acc, d)
		if err != nil {
			return nil, err
		}

		vr := velocityRange(blk, model.FamilyDrums)
		base := r.baseVelocity(vr[0], vr[1])

		var events []model.NoteEvent
		if pat.PatternType == model.PatternRandomTomFill {
			events = r.tomFill(blk.StartOffset, blk.Duration, base)
		} else {
			events = r.expandFixed(blk, pat, channelDrums, base, drumPitches)
		}

		// A silent pattern means no timekeeping at all, so no fills
		// either. Algorithmic fills (random_tom_fill) already are one.
		silent := len(pat.Pattern) == 0 && len(pat.FillIns) == 0 &&
			pat.PatternType != model.PatternRandomTomFill
		if !silent {
			fillStart, ok, err := r.fillDue(blk, acc, sectionStart)
			if err != nil {
				return nil, err
			}
			if ok {
				events = trimFrom(events, fillStart)
				fill, err := r.pickFill(blk, pat, acc, fillStart, base)
				if err != nil {
					return nil, err
				}
				events = append(events, fill...)
			}
		}

		if err := r.humanizeIfSet(acc, events); err != nil {
			return nil, err
		}
		t.Events = append(t.Events, events...)
	}
	return []*Track{t}, nil
}

func drumPitches(ev *model.PatternEvent) []uint8 {
	key, ok := gmDrums[ev.Instrument]
	if !ok {
		log.WithField("instrument", ev.Instrument).Warn("unknown percussion name, skipping hit")
		return nil
	}
	return []uint8{key}
}

// fillDue reports whether this block should end in a fill, and the
// absolute beat the fill starts at (the block's final bar).
func (r *Renderer) fillDue(blk *model.ResolvedBlock, acc *params.Accessor, sectionStart float64) (float64, bool, error) {
	barLen := blk.TimeSignature.BeatsPerBar()
	if blk.Duration < barLen {
		return 0, false, nil
	}
	fillStart := blk.StartOffset + blk.Duration - barLen

	if blk.IsLastInSection {
		return fillStart, true, nil
	}
	interval, err := acc.Int("fill_interval_bars", 4)
	if err != nil {
		return 0, false, err
	}
	if interval <= 0 {
		return 0, false, nil
	}
	barsElapsed := int((blk.StartOffset + blk.Duration - sectionStart) / barLen)
	if barsElapsed > 0 && barsElapsed%interval == 0 {
		return fillStart, true, nil
	}
	return 0, false, nil
}

// trimFrom drops events at or after the fill start so the fill owns the
// final bar.
func trimFrom(events []model.NoteEvent, from float64) []model.NoteEvent {
	out := events[:0]
	for _, ev := range events {
		if ev.Start < from {
			out = append(out, ev)
		}
	}
	return out
}

// pickFill chooses among the pattern's own fill-ins first, then the
// configured fill keys, then a generated tom run.
func (r *Renderer) pickFill(blk *model.ResolvedBlock, pat *model.RhythmPattern, acc *params.Accessor, fillStart float64, base int) ([]model.NoteEvent, error) {
	keys, err := acc.Strings("fill_keys", nil)
	if err != nil {
		return nil, err
	}
	var candidates []string
	for _, k := range keys {
		if _, ok := pat.FillIns[k]; ok {
			candidates = append(candidates, k)
		}
	}
	barLen := blk.TimeSignature.BeatsPerBar()
	if len(candidates) == 0 {
		return r.tomFill(fillStart, barLen, base), nil
	}
	chosen := candidates[r.rng.Intn(len(candidates))]

	var out []model.NoteEvent
	for i := range pat.FillIns[chosen] {
		ev := &pat.FillIns[chosen][i]
		if ev.Offset >= barLen {
			continue
		}
		vel := base
		if ev.VelocityFactor != nil {
			vel = int(float64(vel) * *ev.VelocityFactor)
		}
		if ev.Velocity != nil {
			vel = *ev.Velocity
		}
		for _, key := range drumPitches(ev) {
			out = append(out, model.NoteEvent{
				Key:      key,
				Velocity: util.ClampVelocity(vel),
				Channel:  channelDrums,
				Start:    fillStart + ev.Offset,
				Duration: ev.Duration,
			})
		}
	}
	return out, nil
}

// tomFill generates a descending sixteenth-note tom run with a crash on
// the downbeat after, clipped to the given window.
func (r *Renderer) tomFill(start, length float64, base int) []model.NoteEvent {
	var out []model.NoteEvent
	step := 0.25
	i := 0
	for t := 0.0; t < length; t += step {
		key := fillTomKeys[(i/2)%len(fillTomKeys)]
		if r.rng.Float64() < 0.2 {
			key = 38
		}
		out = append(out, model.NoteEvent{
			Key:      key,
			Velocity: util.ClampVelocity(base + i),
			Channel:  channelDrums,
			Start:    start + t,
			Duration: step,
		})
		i++
	}
	return out
}
