package arrange

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kinoshitayoshihiro/haru/chord"
	"github.com/kinoshitayoshihiro/haru/config"
	"github.com/kinoshitayoshihiro/haru/intent"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/params"
	"github.com/kinoshitayoshihiro/haru/rhythm"
)

// Parameter keys the stream builder computes per family. They only fill
// gaps: an authored value in any cascade tier wins.
const (
	KeyStyle         = "style"
	KeyStyleLH       = "style_lh"
	KeyRhythmKey     = "rhythm_key"
	KeyRhythmKeyLH   = "rhythm_key_lh"
	KeyVelocityRange = "velocity_range"
)

// BuildStream walks the chordmap in document order and emits one
// resolved block per chord event. Tempo, time signature, tonic and mode
// carry forward as running state; section overrides replace them from
// that section on. Block start offsets are contiguous from zero.
func BuildStream(cm *model.ChordMap, lib *rhythm.Library, cfg *config.Config) ([]model.ResolvedBlock, error) {
	ts, err := model.ParseTimeSignature(cfg.GlobalTimeSignature)
	if err != nil {
		return nil, err
	}
	tempo := cfg.GlobalTempo
	tonic := cfg.GlobalKeyTonic
	mode := cfg.GlobalKeyMode

	families := cfg.EnabledFamilies()
	var stream []model.ResolvedBlock
	cursor := 0.0

	for si := range cm.Sections {
		sec := &cm.Sections[si]
		if sec.Tempo > 0 {
			tempo = sec.Tempo
		}
		if sec.TimeSignature != "" {
			ts, err = model.ParseTimeSignature(sec.TimeSignature)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sec.Name, err)
			}
		}
		if sec.Tonic != "" {
			tonic = sec.Tonic
		}
		if sec.Mode != "" {
			mode = sec.Mode
		}

		for ci := range sec.ChordProgression {
			ev := &sec.ChordProgression[ci]

			blk := model.ResolvedBlock{
				SectionName:      sec.Name,
				StartOffset:      cursor,
				Duration:         blockDuration(sec, ev, ts),
				ChordLabel:       ev.Chord,
				TonicOfSection:   tonic,
				Mode:             pickMode(mode, sec, ev),
				TensionsToAdd:    ev.TensionsToAdd,
				Tempo:            tempo,
				TimeSignature:    ts,
				IsFirstInSection: ci == 0,
				IsLastInSection:  ci == len(sec.ChordProgression)-1,
				PartParams:       map[string]map[string]any{},
			}

			if chord.IsRest(ev.Chord) {
				blk.IsRest = true
			} else {
				sym, perr := chord.Parse(ev.Chord)
				switch {
				case perr == nil:
					blk.Chord = sym
				case cfg.Lenient:
					log.WithFields(log.Fields{"section": sec.Name, "chord": ev.Chord}).
						WithError(perr).Warn("unparseable chord, substituting rest")
					blk.IsRest = true
				default:
					return nil, fmt.Errorf("section %q chord %d: %w", sec.Name, ci, perr)
				}
			}

			mi := blockIntent(sec, ev)
			for _, fam := range families {
				merged, err := mergeFamily(fam, cfg, sec, ev, mi, lib)
				if err != nil {
					return nil, fmt.Errorf("section %q chord %d: %w", sec.Name, ci, err)
				}
				blk.PartParams[fam] = merged
			}

			stream = append(stream, blk)
			cursor += blk.Duration
		}
	}
	return stream, nil
}

// blockDuration applies the duration precedence: an explicit value on
// the chord event, then an even split of the section length, then one
// bar of the running meter.
func blockDuration(sec *model.Section, ev *model.ChordEvent, ts model.TimeSignature) float64 {
	if ev.Duration > 0 {
		return ev.Duration
	}
	if sec.LengthInMeasures > 0 && len(sec.ChordProgression) > 0 {
		return sec.LengthInMeasures * ts.BeatsPerBar() / float64(len(sec.ChordProgression))
	}
	return ts.BeatsPerBar()
}

func pickMode(running string, sec *model.Section, ev *model.ChordEvent) string {
	if ev.Mode != "" {
		return ev.Mode
	}
	return running
}

func blockIntent(sec *model.Section, ev *model.ChordEvent) model.MusicalIntent {
	mi := sec.MusicalIntent
	if ev.Emotion != "" {
		mi.Emotion = ev.Emotion
	}
	if ev.Intensity != "" {
		mi.Intensity = ev.Intensity
	}
	return mi
}

// mergeFamily builds one family's merged parameter dictionary and fills
// in the computed style, rhythm key and velocity range where no tier
// authored them. Rhythm keys are pinned to patterns that actually exist
// in the library, walking the fallback chain now so every consumer sees
// the effective key.
func mergeFamily(fam string, cfg *config.Config, sec *model.Section, ev *model.ChordEvent, mi model.MusicalIntent, lib *rhythm.Library) (map[string]any, error) {
	d := cfg.Family(fam)
	merged := params.Merge(d.Params, sec.PartSettings[fam], ev.PartSpecificHints[fam], cfg.CLIPartParams[fam])

	res := intent.ResolveStyle(fam, d, mi)
	if _, ok := merged[KeyStyle]; !ok {
		merged[KeyStyle] = res.Style
	}
	if _, ok := merged[KeyRhythmKey]; !ok {
		merged[KeyRhythmKey] = res.RhythmKey
	}
	if _, ok := merged[KeyVelocityRange]; !ok {
		merged[KeyVelocityRange] = res.Velocity
	}
	if d.EmotionToStyleLH != nil {
		if _, ok := merged[KeyStyleLH]; !ok {
			merged[KeyStyleLH] = res.StyleLH
		}
		if _, ok := merged[KeyRhythmKeyLH]; !ok {
			merged[KeyRhythmKeyLH] = res.RhythmKeyLH
		}
	}

	if lib != nil {
		if requested, ok := merged[KeyRhythmKey].(string); ok {
			pat, err := lib.Select(fam, requested, d.FallbackRhythmKey)
			if err != nil {
				return nil, err
			}
			merged[KeyRhythmKey] = pat.Key
		}
		if requested, ok := merged[KeyRhythmKeyLH].(string); ok {
			pat, err := lib.Select(fam, requested, d.FallbackRhythmKeyLH)
			if err != nil {
				return nil, err
			}
			merged[KeyRhythmKeyLH] = pat.Key
		}
	}
	return merged, nil
}
