// Package render turns the resolved block stream into MIDI tracks and
// writes them out as a standard MIDI file. Each instrument family has
// its own generator; they all share the fixed-pattern expander and the
// humanizer, and draw from one seeded random source so a run is fully
// reproducible.
package render

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/kinoshitayoshihiro/haru/config"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/params"
	"github.com/kinoshitayoshihiro/haru/rhythm"
	"github.com/kinoshitayoshihiro/haru/util"
)

// General MIDI channel and program assignments per track.
const (
	channelPiano  uint8 = 0
	channelBass   uint8 = 1
	channelChords uint8 = 2
	channelGuitar uint8 = 3
	channelMelody uint8 = 4
	channelDrums  uint8 = 9

	programPiano  uint8 = 0  // acoustic grand
	programBass   uint8 = 33 // fingered electric bass
	programChords uint8 = 48 // string ensemble
	programGuitar uint8 = 25 // steel acoustic guitar
	programMelody uint8 = 73 // flute
)

// Track is one instrument voice destined for one SMF track chunk.
type Track struct {
	Name    string
	Channel uint8
	Program uint8
	IsDrums bool
	Events  []model.NoteEvent
}

// Song is a fully rendered arrangement ready for the SMF writer. Blocks
// are retained for the tempo and meter map.
type Song struct {
	Title  string
	Blocks []model.ResolvedBlock
	Tracks []*Track
}

// TotalBeats returns the song length in quarter-note beats.
func (s *Song) TotalBeats() float64 {
	if len(s.Blocks) == 0 {
		return 0
	}
	last := s.Blocks[len(s.Blocks)-1]
	return last.StartOffset + last.Duration
}

// Renderer drives all instrument generators over one block stream.
type Renderer struct {
	cfg *config.Config
	lib *rhythm.Library
	rng *rand.Rand
}

func New(cfg *config.Config, lib *rhythm.Library) *Renderer {
	return &Renderer{cfg: cfg, lib: lib, rng: rand.New(rand.NewSource(cfg.Seed))}
}

type generator func(*Renderer, []model.ResolvedBlock) ([]*Track, error)

var generators = map[string]generator{
	model.FamilyPiano:  (*Renderer).renderPiano,
	model.FamilyDrums:  (*Renderer).renderDrums,
	model.FamilyBass:   (*Renderer).renderBass,
	model.FamilyChords: (*Renderer).renderChords,
	model.FamilyGuitar: (*Renderer).renderGuitar,
	model.FamilyMelody: (*Renderer).renderMelody,
}

// Render runs every enabled generator over the block stream.
func (r *Renderer) Render(cm *model.ChordMap, blocks []model.ResolvedBlock) (*Song, error) {
	song := &Song{Title: cm.ProjectTitle, Blocks: blocks}
	for _, fam := range r.cfg.EnabledFamilies() {
		gen, ok := generators[fam]
		if !ok {
			return nil, fmt.Errorf("no generator for part %q", fam)
		}
		tracks, err := gen(r, blocks)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", fam, err)
		}
		for _, t := range tracks {
			log.WithFields(log.Fields{"track": t.Name, "notes": len(t.Events)}).
				Debug("rendered track")
			song.Tracks = append(song.Tracks, t)
		}
	}
	return song, nil
}

func (r *Renderer) accessor(fam string, blk *model.ResolvedBlock) *params.Accessor {
	return &params.Accessor{Family: fam, Params: blk.PartParams[fam], Lenient: r.cfg.Lenient}
}

// pattern fetches the block's effective rhythm pattern under the given
// parameter key.
func (r *Renderer) pattern(fam, key string, blk *model.ResolvedBlock, acc *params.Accessor, d *config.FamilyDefaults) (*model.RhythmPattern, error) {
	requested, err := acc.Str(key, d.FallbackRhythmKey)
	if err != nil {
		return nil, err
	}
	return r.lib.Select(fam, requested, d.FallbackRhythmKey)
}

// velocityRange reads the block's velocity range parameter, accepting
// both the literal [][]int from the defaults tables and the []any form
// JSON produces.
func velocityRange(blk *model.ResolvedBlock, fam string) []int {
	v, ok := blk.PartParams[fam]["velocity_range"]
	if !ok {
		return []int{64, 76}
	}
	switch tuple := v.(type) {
	case []int:
		return tuple
	case []any:
		out := make([]int, 0, len(tuple))
		for _, item := range tuple {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case float64:
				out = append(out, int(n))
			}
		}
		if len(out) == 2 || len(out) == 4 {
			return out
		}
	}
	return []int{64, 76}
}

// baseVelocity draws the block's base velocity from [lo, hi].
func (r *Renderer) baseVelocity(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}

// expandFixed tiles a fixed pattern across the block, calling pitches
// for each surviving event to decide what sounds. Probability gates are
// Bernoulli trials on the shared random source. Swing shifts offbeat
// eighths to the pattern's swing point.
func (r *Renderer) expandFixed(blk *model.ResolvedBlock, pat *model.RhythmPattern, channel uint8, base int, pitches func(ev *model.PatternEvent) []uint8) []model.NoteEvent {
	patLen := pat.LengthBeats
	if patLen <= 0 {
		patLen = blk.TimeSignature.BeatsPerBar()
	}

	var out []model.NoteEvent
	for cycle := 0.0; cycle < blk.Duration; cycle += patLen {
		for i := range pat.Pattern {
			ev := &pat.Pattern[i]
			offset := ev.Offset
			if pat.Swing != nil {
				if frac := offset - float64(int(offset)); frac == 0.5 {
					offset = float64(int(offset)) + *pat.Swing
				}
			}
			start := cycle + offset
			if start >= blk.Duration {
				continue
			}
			if ev.Probability != nil && r.rng.Float64() >= *ev.Probability {
				continue
			}

			vel := base
			if pat.VelocityBase != nil {
				vel = *pat.VelocityBase
			}
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

			for _, key := range pitches(ev) {
				out = append(out, model.NoteEvent{
					Key:      key,
					Velocity: util.ClampVelocity(vel),
					Channel:  channel,
					Start:    blk.StartOffset + start,
					Duration: dur,
				})
			}
		}
	}
	return out
}
