package config

import "github.com/kinoshitayoshihiro/haru/model"

// Default returns a fresh copy of the built-in configuration. Every
// fallback value below is a literal: nothing here refers to a key that
// may not exist at run time.
func Default() *Config {
	return &Config{
		GlobalTempo:         100,
		GlobalTimeSignature: "4/4",
		GlobalKeyTonic:      "C",
		GlobalKeyMode:       "major",
		PartsToGenerate: map[string]bool{
			model.FamilyPiano:  true,
			model.FamilyDrums:  true,
			model.FamilyGuitar: true,
			model.FamilyBass:   false,
			model.FamilyChords: true,
			model.FamilyMelody: false,
		},
		OutputDir:              "midi_output",
		OutputFilenameTemplate: "output_{song_title}.mid",
		Seed:                   1,
		CLIPartParams:          map[string]map[string]any{},
		Defaults: map[string]*FamilyDefaults{
			model.FamilyPiano:  pianoDefaults(),
			model.FamilyDrums:  drumDefaults(),
			model.FamilyBass:   bassDefaults(),
			model.FamilyChords: chordsDefaults(),
			model.FamilyGuitar: guitarDefaults(),
			model.FamilyMelody: melodyDefaults(),
		},
	}
}

func pianoDefaults() *FamilyDefaults {
	return &FamilyDefaults{
		EmotionToStyle: map[string]string{
			"default":    "simple_block_rh",
			"reflective": "reflective_arpeggio_rh",
			"sorrow":     "reflective_arpeggio_rh",
			"gratitude":  "chordal_moving_rh",
			"hopeful":    "chordal_moving_rh",
			"determined": "powerful_block_8ths_rh",
			"soaring":    "powerful_block_8ths_rh",
		},
		EmotionToStyleLH: map[string]string{
			"default":    "simple_root_lh",
			"reflective": "sustained_root_lh",
			"sorrow":     "sustained_root_lh",
			"gratitude":  "walking_bass_like_lh",
			"hopeful":    "walking_bass_like_lh",
			"determined": "active_octave_lh",
			"soaring":    "active_octave_lh",
		},
		StyleToRhythmKey: map[string]string{
			"simple_block_rh":        "piano_block_quarters",
			"reflective_arpeggio_rh": "piano_flowing_arpeggio_8ths",
			"chordal_moving_rh":      "piano_chordal_moving",
			"powerful_block_8ths_rh": "piano_block_8ths",
			"simple_root_lh":         "piano_lh_quarter_roots",
			"sustained_root_lh":      "piano_lh_whole_roots",
			"walking_bass_like_lh":   "piano_lh_walking",
			"active_octave_lh":       "piano_lh_octave_8ths",
		},
		IntensityToVelocity: map[string][]int{
			"default":     {60, 70, 65, 75},
			"low":         {50, 60, 55, 65},
			"medium_low":  {55, 65, 60, 70},
			"medium":      {60, 70, 65, 75},
			"medium_high": {65, 80, 70, 85},
			"high":        {70, 85, 75, 90},
		},
		FallbackStyle:       "simple_block_rh",
		FallbackStyleLH:     "simple_root_lh",
		FallbackRhythmKey:   "piano_block_quarters",
		FallbackRhythmKeyLH: "piano_lh_whole_roots",
		FallbackVelocity:    []int{60, 70, 65, 75},
		Params: map[string]any{
			"rh_voicing_style":  "closed",
			"lh_voicing_style":  "closed",
			"rh_target_octave":  4,
			"lh_target_octave":  2,
			"rh_num_voices":     3,
			"lh_num_voices":     1,
			"arp_note_ql":       0.5,
			"humanize":          true,
			"humanize_time_var": 0.01,
			"humanize_vel_var":  4,
		},
	}
}

func drumDefaults() *FamilyDefaults {
	return &FamilyDefaults{
		EmotionToStyle: map[string]string{
			"default":    "basic_rock_4_4",
			"reflective": "no_drums",
			"sorrow":     "ballad_soft_8th_hat",
			"gratitude":  "ballad_soft_8th_hat",
			"hopeful":    "rock_ballad_build_up",
			"determined": "anthem_rock_8th_hat",
			"soaring":    "anthem_rock_16th_hat",
		},
		StyleToRhythmKey: map[string]string{
			"basic_rock_4_4":       "basic_rock_4_4",
			"no_drums":             "no_drums",
			"ballad_soft_8th_hat":  "ballad_soft_8th_hat",
			"rock_ballad_build_up": "rock_ballad_build_up",
			"anthem_rock_8th_hat":  "anthem_rock_8th_hat",
			"anthem_rock_16th_hat": "anthem_rock_16th_hat",
		},
		IntensityToVelocity: map[string][]int{
			"default":     {70, 80},
			"low":         {55, 65},
			"medium_low":  {60, 70},
			"medium":      {70, 80},
			"medium_high": {75, 85},
			"high":        {85, 95},
		},
		FallbackStyle:     "basic_rock_4_4",
		FallbackRhythmKey: "basic_rock_4_4",
		FallbackVelocity:  []int{70, 80},
		Params: map[string]any{
			"fill_interval_bars": 4,
			"fill_keys":          []any{"snare_roll_half_bar", "chorus_end_fill"},
			"humanize":           true,
			"humanize_time_var":  0.015,
			"humanize_vel_var":   6,
		},
	}
}

func bassDefaults() *FamilyDefaults {
	return &FamilyDefaults{
		EmotionToStyle: map[string]string{
			"default":    "simple_roots",
			"sorrow":     "sustained_roots",
			"reflective": "sustained_roots",
			"determined": "root_fifth",
			"soaring":    "walking",
		},
		StyleToRhythmKey: map[string]string{
			"simple_roots":    "bass_quarter_roots",
			"sustained_roots": "bass_whole_roots",
			"root_fifth":      "bass_root_fifth_8ths",
			"walking":         "bass_walking_8ths",
		},
		IntensityToVelocity: map[string][]int{
			"default":     {64, 76},
			"low":         {52, 64},
			"medium":      {64, 76},
			"medium_high": {70, 82},
			"high":        {78, 92},
		},
		FallbackStyle:     "simple_roots",
		FallbackRhythmKey: "bass_quarter_roots",
		FallbackVelocity:  []int{64, 76},
		Params: map[string]any{
			"target_octave":     2,
			"humanize":          true,
			"humanize_time_var": 0.01,
			"humanize_vel_var":  5,
		},
	}
}

func chordsDefaults() *FamilyDefaults {
	return &FamilyDefaults{
		EmotionToStyle: map[string]string{
			"default": "sustained_pad",
		},
		StyleToRhythmKey: map[string]string{
			"sustained_pad": "chords_whole_notes",
		},
		IntensityToVelocity: map[string][]int{
			"default": {58, 68},
			"low":     {48, 58},
			"high":    {68, 80},
		},
		FallbackStyle:     "sustained_pad",
		FallbackRhythmKey: "chords_whole_notes",
		FallbackVelocity:  []int{58, 68},
		Params: map[string]any{
			"voicing_style":     "closed",
			"target_octave":     3,
			"num_voices":        4,
			"humanize":          false,
			"humanize_time_var": 0.0,
			"humanize_vel_var":  0,
		},
	}
}

func guitarDefaults() *FamilyDefaults {
	return &FamilyDefaults{
		EmotionToStyle: map[string]string{
			"default":    "strum_basic",
			"reflective": "arpeggio_gentle",
			"sorrow":     "arpeggio_gentle",
			"determined": "power_drive",
			"soaring":    "power_drive",
		},
		StyleToRhythmKey: map[string]string{
			"strum_basic":     "guitar_folk_strum",
			"arpeggio_gentle": "guitar_ballad_arpeggio",
			"power_drive":     "guitar_rock_mute_16th",
		},
		IntensityToVelocity: map[string][]int{
			"default":     {62, 74},
			"low":         {50, 62},
			"medium":      {62, 74},
			"medium_high": {68, 80},
			"high":        {76, 90},
		},
		FallbackStyle:     "strum_basic",
		FallbackRhythmKey: "guitar_folk_strum",
		FallbackVelocity:  []int{62, 74},
		Params: map[string]any{
			"voicing_style":     "standard",
			"num_strings":       6,
			"target_octave":     3,
			"strum_delay_ql":    0.02,
			"arpeggio_type":     "up",
			"arpeggio_note_ql":  0.5,
			"mute_note_ql":      0.1,
			"humanize":          true,
			"humanize_time_var": 0.015,
			"humanize_vel_var":  6,
		},
	}
}

func melodyDefaults() *FamilyDefaults {
	return &FamilyDefaults{
		EmotionToStyle: map[string]string{
			"default":    "flowing",
			"reflective": "sparse",
		},
		StyleToRhythmKey: map[string]string{
			"flowing": "melody_scale_walk",
			"sparse":  "melody_long_tones",
		},
		IntensityToVelocity: map[string][]int{
			"default": {66, 78},
			"low":     {54, 66},
			"high":    {76, 90},
		},
		FallbackStyle:     "flowing",
		FallbackRhythmKey: "melody_scale_walk",
		FallbackVelocity:  []int{66, 78},
		Params: map[string]any{
			"octave_low":        4,
			"octave_high":       5,
			"density":           0.7,
			"humanize":          true,
			"humanize_time_var": 0.02,
			"humanize_vel_var":  5,
		},
	}
}
