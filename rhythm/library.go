// Package rhythm loads and serves the rhythm pattern library. Library
// files are JSON or YAML documents whose top-level keys are
// "<family>_patterns" catalogues. Template inheritance is resolved
// eagerly at load, so every served pattern is already flattened.
package rhythm

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/util"
)

//go:embed schema.json
var librarySchema string

const catalogueSuffix = "_patterns"

// familyAliases maps singular catalogue names onto the family names the
// generators query, so "drum_patterns" and "drums_patterns" both serve
// the drums family.
var familyAliases = map[string]string{
	"drum":  model.FamilyDrums,
	"chord": model.FamilyChords,
}

// Library is the read-only pattern store, grouped by instrument family.
type Library struct {
	categories map[string]map[string]*model.RhythmPattern
}

// NotFoundError reports a rhythm key absent from its family catalogue.
type NotFoundError struct {
	Family string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rhythm key %q not found in %s catalogue", e.Key, e.Family)
}

// Load reads and validates a library file, resolving all inheritance.
func Load(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rhythm library: %w", err)
	}

	var doc map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing rhythm library %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing rhythm library %s: %w", path, err)
		}
	}

	if err := validateShape(doc); err != nil {
		return nil, fmt.Errorf("rhythm library %s: %w", path, err)
	}

	lib := &Library{categories: map[string]map[string]*model.RhythmPattern{}}
	for _, catName := range util.SortedKeys(doc) {
		family := strings.TrimSuffix(catName, catalogueSuffix)
		if alias, ok := familyAliases[family]; ok {
			family = alias
		}
		rawCat, ok := doc[catName].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rhythm library %s: catalogue %q is not an object", path, catName)
		}
		cat, err := resolveCatalogue(family, rawCat)
		if err != nil {
			return nil, fmt.Errorf("rhythm library %s: %w", path, err)
		}
		lib.categories[family] = cat
		log.WithFields(log.Fields{"family": family, "patterns": len(cat)}).
			Debug("loaded rhythm catalogue")
	}
	return lib, nil
}

func validateShape(doc map[string]any) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(librarySchema),
		gojsonschema.NewBytesLoader(docJSON),
	)
	if err != nil {
		return fmt.Errorf("validating shape: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid shape: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// resolveCatalogue flattens every inherit chain in one catalogue. The
// overlay is key-wise on the raw maps, so a child's "pattern" list
// replaces the parent's wholesale.
func resolveCatalogue(family string, rawCat map[string]any) (map[string]*model.RhythmPattern, error) {
	resolved := map[string]map[string]any{}
	for _, key := range util.SortedKeys(rawCat) {
		if _, err := resolveKey(family, rawCat, resolved, key, map[string]bool{}); err != nil {
			return nil, err
		}
	}

	out := make(map[string]*model.RhythmPattern, len(resolved))
	for key, flat := range resolved {
		pat, err := decodePattern(flat)
		if err != nil {
			return nil, fmt.Errorf("pattern %s/%s: %w", family, key, err)
		}
		pat.Key = key
		out[key] = pat
	}
	return out, nil
}

func resolveKey(family string, rawCat map[string]any, resolved map[string]map[string]any, key string, visiting map[string]bool) (map[string]any, error) {
	if flat, ok := resolved[key]; ok {
		return flat, nil
	}
	if visiting[key] {
		return nil, fmt.Errorf("inheritance cycle through %s/%s", family, key)
	}
	raw, ok := rawCat[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("pattern %s/%s is not an object", family, key)
	}

	flat := map[string]any{}
	if parent, ok := raw["inherit"].(string); ok && parent != "" {
		if _, exists := rawCat[parent]; !exists {
			return nil, fmt.Errorf("pattern %s/%s inherits unknown key %q", family, key, parent)
		}
		visiting[key] = true
		base, err := resolveKey(family, rawCat, resolved, parent, visiting)
		if err != nil {
			return nil, err
		}
		delete(visiting, key)
		for k, v := range base {
			flat[k] = v
		}
	}
	for k, v := range raw {
		if k == "inherit" {
			continue
		}
		flat[k] = v
	}
	resolved[key] = flat
	return flat, nil
}

func decodePattern(flat map[string]any) (*model.RhythmPattern, error) {
	buf, err := json.Marshal(flat)
	if err != nil {
		return nil, err
	}
	var pat model.RhythmPattern
	if err := json.Unmarshal(buf, &pat); err != nil {
		return nil, err
	}
	return &pat, nil
}

// Families returns the catalogue names present in the library, sorted.
func (l *Library) Families() []string {
	return util.SortedKeys(l.categories)
}

// Keys returns the sorted pattern keys of one family's catalogue.
func (l *Library) Keys(family string) []string {
	return util.SortedKeys(l.categories[family])
}

// Lookup fetches one pattern without any fallback.
func (l *Library) Lookup(family, key string) (*model.RhythmPattern, bool) {
	pat, ok := l.categories[family][key]
	return pat, ok
}

// Select walks the fallback chain for one block: the requested key,
// then the family's configured fallback key, then "silent". A library
// that lacks all three is unusable for the request and that is fatal.
func (l *Library) Select(family, requested, fallback string) (*model.RhythmPattern, error) {
	if pat, ok := l.Lookup(family, requested); ok {
		return pat, nil
	}
	log.WithFields(log.Fields{"family": family, "key": requested, "fallback": fallback}).
		Warn("rhythm key not in catalogue, trying fallback")
	if pat, ok := l.Lookup(family, fallback); ok {
		return pat, nil
	}
	if pat, ok := l.Lookup(family, "silent"); ok {
		log.WithFields(log.Fields{"family": family, "key": requested}).
			Warn("fallback rhythm key missing too, using silent pattern")
		return pat, nil
	}
	return nil, &NotFoundError{Family: family, Key: requested}
}
