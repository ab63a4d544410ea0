package rhythm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeLib(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadsJSONLibrary(t *testing.T) {
	assert := assert.New(t)

	path := writeLib(t, "lib.json", `{
		"drums_patterns": {
			"silent": {"length_beats": 4, "pattern": []},
			"groove": {
				"length_beats": 4,
				"pattern": [{"offset": 0, "duration": 0.5, "instrument": "kick"}]
			}
		}
	}`)
	lib, err := Load(path)
	assert.NoError(err)
	assert.Equal([]string{"drums"}, lib.Families())
	assert.Equal([]string{"groove", "silent"}, lib.Keys("drums"))

	pat, ok := lib.Lookup("drums", "groove")
	assert.True(ok)
	assert.Equal("groove", pat.Key)
	assert.Equal("kick", pat.Pattern[0].Instrument)
}

func TestLoadsYAMLLibrary(t *testing.T) {
	assert := assert.New(t)

	path := writeLib(t, "lib.yml", `
piano_patterns:
  silent:
    length_beats: 4.0
    pattern: []
  blocks:
    length_beats: 4.0
    pattern:
      - { offset: 0.0, duration: 1.0, velocity_factor: 0.9 }
`)
	lib, err := Load(path)
	assert.NoError(err)
	pat, ok := lib.Lookup("piano", "blocks")
	assert.True(ok)
	assert.Equal(4.0, pat.LengthBeats)
	assert.NotNil(pat.Pattern[0].VelocityFactor)
	assert.Equal(0.9, *pat.Pattern[0].VelocityFactor)
}

func TestSingularCatalogueNamesServeTheSameFamily(t *testing.T) {
	assert := assert.New(t)

	path := writeLib(t, "lib.yml", `
drum_patterns:
  silent:
    length_beats: 4.0
    pattern: []
  basic_rock_4_4:
    length_beats: 4.0
    pattern:
      - { offset: 0.0, duration: 0.5, instrument: kick }
chord_patterns:
  silent:
    length_beats: 4.0
    pattern: []
`)
	lib, err := Load(path)
	assert.NoError(err)
	assert.Equal([]string{"chords", "drums"}, lib.Families())

	pat, ok := lib.Lookup("drums", "basic_rock_4_4")
	assert.True(ok)
	assert.Equal("kick", pat.Pattern[0].Instrument)
	_, ok = lib.Lookup("chords", "silent")
	assert.True(ok)
}

func TestInheritOverlaysParentKeywise(t *testing.T) {
	assert := assert.New(t)

	path := writeLib(t, "lib.json", `{
		"drums_patterns": {
			"parent": {
				"description": "base groove",
				"length_beats": 4,
				"velocity_base": 80,
				"pattern": [
					{"offset": 0, "duration": 0.5, "instrument": "kick"},
					{"offset": 1, "duration": 0.5, "instrument": "snare"}
				]
			},
			"child": {
				"inherit": "parent",
				"pattern": [{"offset": 0, "duration": 0.25, "instrument": "closed_hat"}]
			}
		}
	}`)
	lib, err := Load(path)
	assert.NoError(err)

	child, ok := lib.Lookup("drums", "child")
	assert.True(ok)
	assert.Equal("base groove", child.Description)
	assert.Equal(4.0, child.LengthBeats)
	assert.Equal(80, *child.VelocityBase)
	assert.Len(child.Pattern, 1)
	assert.Equal("closed_hat", child.Pattern[0].Instrument)
	assert.Empty(child.Inherit)
}

func TestInheritChainsResolveTransitively(t *testing.T) {
	assert := assert.New(t)

	path := writeLib(t, "lib.json", `{
		"bass_patterns": {
			"a": {"length_beats": 4, "velocity_base": 70, "pattern": []},
			"b": {"inherit": "a", "description": "mid"},
			"c": {"inherit": "b"}
		}
	}`)
	lib, err := Load(path)
	assert.NoError(err)

	c, ok := lib.Lookup("bass", "c")
	assert.True(ok)
	assert.Equal(4.0, c.LengthBeats)
	assert.Equal("mid", c.Description)
	assert.Equal(70, *c.VelocityBase)
}

func TestInheritCycleIsFatal(t *testing.T) {
	path := writeLib(t, "lib.json", `{
		"bass_patterns": {
			"a": {"inherit": "b"},
			"b": {"inherit": "a"}
		}
	}`)
	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestInheritUnknownParentIsFatal(t *testing.T) {
	path := writeLib(t, "lib.json", `{
		"bass_patterns": {"a": {"inherit": "ghost"}}
	}`)
	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestSelectWalksFallbackChain(t *testing.T) {
	assert := assert.New(t)

	path := writeLib(t, "lib.json", `{
		"piano_patterns": {
			"silent": {"length_beats": 4, "pattern": []},
			"blocks": {"length_beats": 4, "pattern": [{"offset": 0, "duration": 1}]}
		}
	}`)
	lib, err := Load(path)
	assert.NoError(err)

	pat, err := lib.Select("piano", "blocks", "whatever")
	assert.NoError(err)
	assert.Equal("blocks", pat.Key)

	pat, err = lib.Select("piano", "missing", "blocks")
	assert.NoError(err)
	assert.Equal("blocks", pat.Key)

	pat, err = lib.Select("piano", "missing", "also_missing")
	assert.NoError(err)
	assert.Equal("silent", pat.Key)
}

func TestSelectFailsWhenEvenSilentIsAbsent(t *testing.T) {
	assert := assert.New(t)

	path := writeLib(t, "lib.json", `{
		"piano_patterns": {
			"blocks": {"length_beats": 4, "pattern": [{"offset": 0, "duration": 1}]}
		}
	}`)
	lib, err := Load(path)
	assert.NoError(err)

	_, err = lib.Select("piano", "missing", "also_missing")
	assert.Error(err)
	var nf *NotFoundError
	assert.ErrorAs(err, &nf)
	assert.Equal("piano", nf.Family)
	assert.Equal("missing", nf.Key)
}

func TestRejectsUnknownTopLevelKeys(t *testing.T) {
	path := writeLib(t, "lib.json", `{"not_a_catalogue": {}}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestRejectsMalformedPatternEvents(t *testing.T) {
	path := writeLib(t, "lib.json", `{
		"drums_patterns": {
			"bad": {"pattern": [{"offset": -1, "duration": 0}]}
		}
	}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestBundledLibraryLoads(t *testing.T) {
	assert := assert.New(t)

	lib, err := Load("../data/rhythm_library.yml")
	assert.NoError(err)
	for _, fam := range []string{"piano", "drums", "bass", "chords", "guitar", "melody"} {
		_, ok := lib.Lookup(fam, "silent")
		assert.True(ok, fam)
	}

	anthem, ok := lib.Lookup("drums", "anthem_rock_16th_hat")
	assert.True(ok)
	assert.Contains(anthem.FillIns, "snare_roll_half_bar")
	assert.Equal(96, *anthem.VelocityBase)
}
