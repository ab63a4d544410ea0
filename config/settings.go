package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// settingsFile mirrors the optional on-disk settings document. Pointer
// and nil-able fields distinguish "absent" from zero values so only the
// keys the user wrote override the built-in defaults.
type settingsFile struct {
	GlobalTempo         *float64        `json:"global_tempo"`
	GlobalTimeSignature *string         `json:"global_time_signature"`
	GlobalKeyTonic      *string         `json:"global_key_tonic"`
	GlobalKeyMode       *string         `json:"global_key_mode"`
	PartsToGenerate     map[string]bool `json:"parts_to_generate"`
	OutputDir           *string         `json:"output_dir"`
	OutputFilename      *string         `json:"output_filename"`

	Defaults map[string]*familySettings `json:"part_defaults"`
}

type familySettings struct {
	EmotionToStyle      map[string]string `json:"emotion_to_style"`
	EmotionToStyleLH    map[string]string `json:"emotion_to_style_lh"`
	StyleToRhythmKey    map[string]string `json:"style_to_rhythm_key"`
	IntensityToVelocity map[string][]int  `json:"intensity_to_velocity"`
	Params              map[string]any    `json:"params"`
}

// LoadSettings reads a settings file and overlays it onto cfg. Keyword
// tables merge entry-wise; params merge key-wise. The result is
// validated by the caller.
func LoadSettings(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings file: %w", err)
	}
	var sf settingsFile
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return fmt.Errorf("parsing settings file %s: %w", path, err)
	}

	if sf.GlobalTempo != nil {
		cfg.GlobalTempo = *sf.GlobalTempo
	}
	if sf.GlobalTimeSignature != nil {
		cfg.GlobalTimeSignature = *sf.GlobalTimeSignature
	}
	if sf.GlobalKeyTonic != nil {
		cfg.GlobalKeyTonic = *sf.GlobalKeyTonic
	}
	if sf.GlobalKeyMode != nil {
		cfg.GlobalKeyMode = *sf.GlobalKeyMode
	}
	for fam, enabled := range sf.PartsToGenerate {
		cfg.PartsToGenerate[fam] = enabled
	}
	if sf.OutputDir != nil {
		cfg.OutputDir = *sf.OutputDir
	}
	if sf.OutputFilename != nil {
		cfg.OutputFilename = *sf.OutputFilename
	}

	for fam, fs := range sf.Defaults {
		d := cfg.Defaults[fam]
		if d == nil {
			return fmt.Errorf("settings file %s: unknown part %q", path, fam)
		}
		mergeStringTable(d.EmotionToStyle, fs.EmotionToStyle)
		if fs.EmotionToStyleLH != nil {
			if d.EmotionToStyleLH == nil {
				d.EmotionToStyleLH = map[string]string{}
			}
			mergeStringTable(d.EmotionToStyleLH, fs.EmotionToStyleLH)
		}
		mergeStringTable(d.StyleToRhythmKey, fs.StyleToRhythmKey)
		for intensity, tuple := range fs.IntensityToVelocity {
			d.IntensityToVelocity[intensity] = tuple
		}
		for k, v := range fs.Params {
			d.Params[k] = v
		}
	}
	return nil
}

func mergeStringTable(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// ApplySet records one --set flag of the form family.key=value into the
// CLI tier of the cascade. Values parse as bool, int, float, then fall
// back to string.
func (c *Config) ApplySet(spec string) error {
	eq := strings.IndexByte(spec, '=')
	if eq < 0 {
		return fmt.Errorf("--set %q: want family.key=value", spec)
	}
	path, value := spec[:eq], spec[eq+1:]
	dot := strings.IndexByte(path, '.')
	if dot <= 0 || dot == len(path)-1 {
		return fmt.Errorf("--set %q: want family.key=value", spec)
	}
	fam, key := path[:dot], path[dot+1:]
	if c.Defaults[fam] == nil {
		return fmt.Errorf("--set %q: unknown part %q", spec, fam)
	}
	if c.CLIPartParams[fam] == nil {
		c.CLIPartParams[fam] = map[string]any{}
	}
	c.CLIPartParams[fam][key] = coerceValue(value)
	return nil
}

func coerceValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
