package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinoshitayoshihiro/haru/model"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestEveryFamilyHasDefaultTableEntries(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	for _, fam := range model.Families {
		d := cfg.Family(fam)
		assert.NotNil(d, fam)
		assert.Contains(d.EmotionToStyle, "default", fam)
		assert.Contains(d.IntensityToVelocity, "default", fam)
		assert.NotEmpty(d.FallbackRhythmKey, fam)
	}
}

func TestValidateCollectsAllDefects(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	delete(cfg.Defaults[model.FamilyDrums].EmotionToStyle, "default")
	cfg.Defaults[model.FamilyBass].IntensityToVelocity["medium"] = []int{1, 2, 3}
	cfg.GlobalTempo = 0

	err := cfg.Validate()
	assert.Error(err)
	assert.Contains(err.Error(), "drums")
	assert.Contains(err.Error(), "bass")
	assert.Contains(err.Error(), "tempo")
}

func TestEnabledFamiliesKeepsFixedOrder(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.PartsToGenerate[model.FamilyBass] = true
	cfg.PartsToGenerate[model.FamilyMelody] = true

	assert.Equal([]string{
		model.FamilyPiano, model.FamilyDrums, model.FamilyBass,
		model.FamilyChords, model.FamilyGuitar, model.FamilyMelody,
	}, cfg.EnabledFamilies())
}

func TestApplyChordMapGlobalsKeepsDefaultsForZeroValues(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.ApplyChordMapGlobals(&model.ChordMap{GlobalTempo: 72, GlobalKeyTonic: "D"})

	assert.Equal(72.0, cfg.GlobalTempo)
	assert.Equal("D", cfg.GlobalKeyTonic)
	assert.Equal("4/4", cfg.GlobalTimeSignature)
	assert.Equal("major", cfg.GlobalKeyMode)
}

func TestLoadSettingsMergesTablesAndParams(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "settings.json")
	doc := `{
		"global_tempo": 120,
		"parts_to_generate": {"guitar": false},
		"part_defaults": {
			"piano": {
				"emotion_to_style": {"furious": "powerful_block_8ths_rh"},
				"params": {"rh_target_octave": 5}
			}
		}
	}`
	assert.NoError(os.WriteFile(path, []byte(doc), 0o644))

	cfg := Default()
	assert.NoError(LoadSettings(cfg, path))

	assert.Equal(120.0, cfg.GlobalTempo)
	assert.False(cfg.PartsToGenerate[model.FamilyGuitar])

	piano := cfg.Family(model.FamilyPiano)
	assert.Equal("powerful_block_8ths_rh", piano.EmotionToStyle["furious"])
	assert.Equal("simple_block_rh", piano.EmotionToStyle["default"])
	assert.Equal(float64(5), piano.Params["rh_target_octave"])
	assert.Equal("closed", piano.Params["rh_voicing_style"])
	assert.NoError(cfg.Validate())
}

func TestLoadSettingsRejectsUnknownPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"part_defaults":{"kazoo":{}}}`), 0o644))
	assert.Error(t, LoadSettings(Default(), path))
}

func TestApplySetCoercesValues(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.ApplySet("piano.rh_target_octave=5"))
	assert.NoError(cfg.ApplySet("drums.humanize=false"))
	assert.NoError(cfg.ApplySet("guitar.strum_delay_ql=0.03"))
	assert.NoError(cfg.ApplySet("piano.rh_voicing_style=open"))

	assert.Equal(5, cfg.CLIPartParams["piano"]["rh_target_octave"])
	assert.Equal(false, cfg.CLIPartParams["drums"]["humanize"])
	assert.Equal(0.03, cfg.CLIPartParams["guitar"]["strum_delay_ql"])
	assert.Equal("open", cfg.CLIPartParams["piano"]["rh_voicing_style"])
}

func TestApplySetRejectsBadSpecs(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Error(cfg.ApplySet("nodot"))
	assert.Error(cfg.ApplySet("piano=5"))
	assert.Error(cfg.ApplySet("kazoo.x=1"))
	assert.Error(cfg.ApplySet(".key=1"))
}
