package engine

import (
	"os"

	"github.com/flowframe/engine/continuity"
	"gopkg.in/yaml.v3"
)

// Config is the engine's own ambient tuning configuration -- continuity
// knobs, the production-mode flag, and the compile cache path --
// loaded from YAML the way the teacher's LoadProgramFileFromYAML loads
// CGRA mesh shape (core/program.go). The authored *graph* is a separate,
// domain-specific HCL document (package hcl); this file never describes
// a patch.
type Config struct {
	Continuity struct {
		DecayExponent float64 `yaml:"decayExponent"`
		TauMultiplier float64 `yaml:"tauMultiplier"`
		BaseTauMs     float64 `yaml:"baseTauMs"`
	} `yaml:"continuity"`
	ProductionMode bool   `yaml:"productionMode"`
	CachePath      string `yaml:"cachePath"`
}

// DefaultConfig returns the spec's suggested midpoint continuity knobs
// with an empty cache path (the compile cache lives in memory only) and
// debug (non-production) mode.
func DefaultConfig() Config {
	var c Config
	knobs := continuity.DefaultKnobs()
	c.Continuity.DecayExponent = knobs.DecayExponent
	c.Continuity.TauMultiplier = knobs.TauMultiplier
	c.Continuity.BaseTauMs = knobs.BaseTauMs
	return c
}

// LoadConfig reads a YAML Config document from path over DefaultConfig's
// values, so a field the file omits (e.g. a file with just
// `productionMode: true`) keeps its default. If the result has a zero
// baseTauMs, the whole continuity block is reset to the defaults; other
// explicitly zeroed knobs are kept as written.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Continuity.BaseTauMs == 0 {
		def := DefaultConfig()
		cfg.Continuity = def.Continuity
	}
	return cfg, nil
}

func (c Config) continuityKnobs() continuity.Knobs {
	return continuity.Knobs{
		DecayExponent: c.Continuity.DecayExponent,
		TauMultiplier: c.Continuity.TauMultiplier,
		BaseTauMs:     c.Continuity.BaseTauMs,
	}
}
