// Package arrange turns a chordmap document into the flat stream of
// resolved blocks the instrument generators consume.
package arrange

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kinoshitayoshihiro/haru/model"
)

//go:embed schema.json
var chordMapSchema string

// LoadChordMap reads, shape-checks and decodes one chordmap document.
func LoadChordMap(path string) (*model.ChordMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chordmap: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(chordMapSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("chordmap %s: validating shape: %w", path, err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("chordmap %s: invalid shape: %s", path, strings.Join(msgs, "; "))
	}

	var cm model.ChordMap
	if err := json.Unmarshal(raw, &cm); err != nil {
		return nil, fmt.Errorf("chordmap %s: %w", path, err)
	}
	return &cm, nil
}
