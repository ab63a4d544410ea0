package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinoshitayoshihiro/haru/model"
)

func TestParsesPlainTriads(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("C")
	assert.NoError(err)
	assert.Equal(0, sym.RootPC)
	assert.Equal(model.QualityMajor, sym.Quality)

	sym, err = Parse("F#m")
	assert.NoError(err)
	assert.Equal(6, sym.RootPC)
	assert.Equal(model.QualityMinor, sym.Quality)

	sym, err = Parse("Bbdim")
	assert.NoError(err)
	assert.Equal(10, sym.RootPC)
	assert.Equal(model.QualityDiminished, sym.Quality)
}

func TestBareExtensionIsDominant(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("C7")
	assert.NoError(err)
	assert.Equal(model.QualityDominant, sym.Quality)
	assert.Equal(7, sym.Extension)

	sym, err = Parse("G13")
	assert.NoError(err)
	assert.Equal(model.QualityDominant, sym.Quality)
	assert.Equal(13, sym.Extension)
}

func TestMajMinTokensWinOverBareM(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("Cmaj7")
	assert.NoError(err)
	assert.Equal(model.QualityMajor, sym.Quality)
	assert.Equal(7, sym.Extension)

	sym, err = Parse("Cmin7")
	assert.NoError(err)
	assert.Equal(model.QualityMinor, sym.Quality)

	sym, err = Parse("Cm7")
	assert.NoError(err)
	assert.Equal(model.QualityMinor, sym.Quality)
}

func TestParsesAlterationRuns(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("C7b9#11")
	assert.NoError(err)
	assert.Equal(0, sym.RootPC)
	assert.Equal(7, sym.Extension)
	assert.Equal([]string{"b9", "#11"}, sym.Alterations)
}

func TestRejectsParenthesizedTensionList(t *testing.T) {
	_, err := Parse("C7(b9,#11)")
	assert.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParsesAddOmitAndSlashBass(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("Cadd9/E")
	assert.NoError(err)
	assert.Equal([]int{9}, sym.Added)
	assert.Equal("E", sym.Bass)
	assert.Equal(4, sym.BassPC)

	sym, err = Parse("Comit3")
	assert.NoError(err)
	assert.Equal([]int{3}, sym.Omitted)

	_, err = Parse("Comit9")
	assert.Error(err)
}

func TestParsesSusAndPowerChords(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("Dsus4")
	assert.NoError(err)
	assert.Equal(model.QualitySus4, sym.Quality)

	sym, err = Parse("A5")
	assert.NoError(err)
	assert.Equal(model.QualityPower, sym.Quality)
}

func TestRejectsGarbage(t *testing.T) {
	assert := assert.New(t)

	for _, label := range []string{"H", "Cmaj7x", "C/", "C//G", "7"} {
		_, err := Parse(label)
		assert.Error(err, label)
	}
}

func TestRestLabels(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsRest("rest"))
	assert.True(IsRest("N.C."))
	assert.True(IsRest(" - "))
	assert.True(IsRest(""))
	assert.False(IsRest("C"))

	_, err := Parse("rest")
	assert.Error(err)
}

func TestDoubleAccidentalsWrapPitchClass(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("Cbb")
	assert.NoError(err)
	assert.Equal(10, sym.RootPC)

	sym, err = Parse("B##")
	assert.NoError(err)
	assert.Equal(1, sym.RootPC)
}

func TestIntervalsForSeventhChords(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("Cmaj7")
	assert.NoError(err)
	assert.Equal([]int{0, 4, 7, 11}, Intervals(sym))

	sym, err = Parse("C7")
	assert.NoError(err)
	assert.Equal([]int{0, 4, 7, 10}, Intervals(sym))

	sym, err = Parse("Cm7b5")
	assert.NoError(err)
	assert.Equal([]int{0, 3, 6, 10}, Intervals(sym))
}

func TestIntervalsApplyTensionsAndOmits(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("C7omit5")
	assert.NoError(err)
	assert.Equal([]int{0, 4, 10}, Intervals(sym))

	sym, err = Parse("C7")
	assert.NoError(err)
	assert.Equal([]int{0, 4, 7, 10, 13}, Intervals(sym, "b9"))
}

func TestPitchesPrependSlashBass(t *testing.T) {
	assert := assert.New(t)

	sym, err := Parse("C/G")
	assert.NoError(err)
	notes := Pitches(sym, 4)
	assert.Equal(uint8(55), notes[0]) // G3 below the voicing
	assert.Equal(uint8(60), notes[1]) // C4 root
}

func TestScaleSemitonesFallsBackToMajor(t *testing.T) {
	assert := assert.New(t)

	steps, ok := ScaleSemitones("dorian")
	assert.True(ok)
	assert.Equal([]int{0, 2, 3, 5, 7, 9, 10}, steps)

	steps, ok = ScaleSemitones("klingon")
	assert.False(ok)
	assert.Equal([]int{0, 2, 4, 5, 7, 9, 11}, steps)
}

func TestScalePitches(t *testing.T) {
	assert := assert.New(t)

	notes, err := ScalePitches("C", "major", 4)
	assert.NoError(err)
	assert.Equal([]uint8{60, 62, 64, 65, 67, 69, 71}, notes)

	_, err = ScalePitches("X", "major", 4)
	assert.Error(err)
}
