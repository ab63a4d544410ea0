// Package params implements the four-tier parameter cascade. Merge is a
// pure shallow overlay: later tiers win key-wise, and a nested map
// value replaces the whole lower-tier map rather than merging into it.
package params

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Merge overlays the cascade tiers lowest-precedence first. The inputs
// are never mutated.
func Merge(tiers ...map[string]any) map[string]any {
	out := map[string]any{}
	for _, tier := range tiers {
		for k, v := range tier {
			out[k] = v
		}
	}
	return out
}

// MissingKeyError names a parameter absent from every cascade tier.
type MissingKeyError struct {
	Family string
	Key    string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("part %s: parameter %q missing from every tier", e.Family, e.Key)
}

// Accessor reads merged parameters for one family. In strict mode a
// missing or mistyped key is an error; in lenient mode the documented
// literal default is substituted and logged.
type Accessor struct {
	Family  string
	Params  map[string]any
	Lenient bool
}

func (a *Accessor) miss(key string, def any) error {
	if a.Lenient {
		log.WithFields(log.Fields{"part": a.Family, "param": key, "default": def}).
			Warn("parameter missing, substituting default")
		return nil
	}
	return &MissingKeyError{Family: a.Family, Key: key}
}

// Str fetches a string parameter, falling back to def in lenient mode.
func (a *Accessor) Str(key, def string) (string, error) {
	v, ok := a.Params[key]
	if !ok {
		return def, a.miss(key, def)
	}
	s, ok := v.(string)
	if !ok {
		return def, a.miss(key, def)
	}
	return s, nil
}

// Float fetches a numeric parameter. JSON decodes all numbers as
// float64; literal ints from the defaults tables are accepted too.
func (a *Accessor) Float(key string, def float64) (float64, error) {
	v, ok := a.Params[key]
	if !ok {
		return def, a.miss(key, def)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return def, a.miss(key, def)
}

// Int fetches an integer parameter, truncating JSON floats.
func (a *Accessor) Int(key string, def int) (int, error) {
	v, ok := a.Params[key]
	if !ok {
		return def, a.miss(key, def)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	}
	return def, a.miss(key, def)
}

// Bool fetches a boolean parameter.
func (a *Accessor) Bool(key string, def bool) (bool, error) {
	v, ok := a.Params[key]
	if !ok {
		return def, a.miss(key, def)
	}
	b, ok := v.(bool)
	if !ok {
		return def, a.miss(key, def)
	}
	return b, nil
}

// Strings fetches a list-of-strings parameter.
func (a *Accessor) Strings(key string, def []string) ([]string, error) {
	v, ok := a.Params[key]
	if !ok {
		return def, a.miss(key, def)
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return def, a.miss(key, def)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return def, a.miss(key, def)
}
