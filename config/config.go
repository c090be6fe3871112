// Package config loads the process-wide tunables this module's
// operations read at startup: which stripifier algorithms (C5) are
// allowed to enter the race, how many of them run concurrently, and
// which SZS encoder variant (C1) a caller gets when it doesn't name
// one explicitly.
//
// Grounded on g3n-engine/gui/builder.go's ParseString, the teacher's
// own use of gopkg.in/yaml.v2: a plain struct decoded with
// yaml.Unmarshal, fields left untagged and matched by yaml.v2's
// default lowercased-name rule, documented with inline comments rather
// than a struct tag per field.
package config

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Config is the top-level tunables document.
type Config struct {
	Strip Strip // Triangle-strip driver tunables
	Szs   Szs   // SZS encoder default
}

// Strip lists which stripifier algorithms (C5) the race should consider
// and how many of them may run at once. The strip package does not read
// these values: its race runs the algorithms one after another and
// skips only its own built-in exclusions (Haroohie, DracoDegen).
type Strip struct {
	Disabled   []string // Algorithm names (Algo.String()) to exclude from the race
	WorkerPool int      // Max concurrent algorithms per race; 0 means unbounded
}

// Szs selects the SZS encoder (C1) used when a caller asks for "the
// default" rather than naming EncodeWorstCase/EncodeBMH/EncodeCTGP
// directly.
type Szs struct {
	DefaultEncoder string // "worstcase", "bmh", or "ctgp"
}

// Default returns the tunables this module ships with when no YAML
// document is supplied: every algorithm enabled, an unbounded worker
// pool, and the BMH encoder as the default (the same balance of
// output size vs. encode time RHSTOptimizer.cpp's own comments favor
// for its non-Haroohie, non-DracoDegen default race).
func Default() Config {
	return Config{
		Strip: Strip{WorkerPool: 0},
		Szs:   Szs{DefaultEncoder: "bmh"},
	}
}

// Load parses a YAML tunables document, starting from Default() so an
// omitted section keeps its default value instead of zeroing out.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing tunables: %w", err)
	}
	return cfg, nil
}

// IsDisabled reports whether algo (by its String() name) is excluded
// from the stripifier race.
func (c Config) IsDisabled(algoName string) bool {
	for _, name := range c.Strip.Disabled {
		if name == algoName {
			return true
		}
	}
	return false
}
