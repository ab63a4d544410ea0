package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinoshitayoshihiro/haru/config"
	"github.com/kinoshitayoshihiro/haru/model"
)

func TestKnownEmotionResolvesDirectly(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	res := ResolveStyle(model.FamilyPiano, cfg.Family(model.FamilyPiano),
		model.MusicalIntent{Emotion: "reflective", Intensity: "medium"})

	assert.Equal("reflective_arpeggio_rh", res.Style)
	assert.Equal("piano_flowing_arpeggio_8ths", res.RhythmKey)
	assert.Equal("sustained_root_lh", res.StyleLH)
	assert.Equal([]int{60, 70, 65, 75}, res.Velocity)
}

func TestUnknownEmotionFallsToTableDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	res := ResolveStyle(model.FamilyDrums, cfg.Family(model.FamilyDrums),
		model.MusicalIntent{Emotion: "joy", Intensity: "medium"})

	assert.Equal("basic_rock_4_4", res.Style)
	assert.Equal("basic_rock_4_4", res.RhythmKey)
}

func TestCompositeEmotionIsSingleLookupKey(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	d := cfg.Family(model.FamilyPiano)
	d.EmotionToStyle["hopeful_yet_uncertain"] = "chordal_moving_rh"

	res := ResolveStyle(model.FamilyPiano, d,
		model.MusicalIntent{Emotion: "Hopeful_Yet_Uncertain", Intensity: "medium"})
	assert.Equal("chordal_moving_rh", res.Style)

	res = ResolveStyle(model.FamilyPiano, d,
		model.MusicalIntent{Emotion: "hopeful_but_uncertain", Intensity: "medium"})
	assert.Equal("simple_block_rh", res.Style)
}

func TestMissingDefaultEntryUsesLiteralFallback(t *testing.T) {
	assert := assert.New(t)

	d := &config.FamilyDefaults{
		EmotionToStyle:      map[string]string{},
		StyleToRhythmKey:    map[string]string{},
		IntensityToVelocity: map[string][]int{},
		FallbackStyle:       "sustained_pad",
		FallbackRhythmKey:   "chords_whole_notes",
		FallbackVelocity:    []int{58, 68},
	}
	res := ResolveStyle(model.FamilyChords, d,
		model.MusicalIntent{Emotion: "anything", Intensity: "whatever"})

	assert.Equal("sustained_pad", res.Style)
	assert.Equal("chords_whole_notes", res.RhythmKey)
	assert.Equal([]int{58, 68}, res.Velocity)
}

func TestVelocityHalvesForPianoTuples(t *testing.T) {
	assert := assert.New(t)

	res := Resolution{Velocity: []int{50, 60, 70, 80}}
	lo, hi := res.VelocityLH()
	assert.Equal(50, lo)
	assert.Equal(60, hi)
	lo, hi = res.VelocityRH()
	assert.Equal(70, lo)
	assert.Equal(80, hi)

	res = Resolution{Velocity: []int{64, 76}}
	lo, hi = res.VelocityRH()
	assert.Equal(64, lo)
	assert.Equal(76, hi)
}
