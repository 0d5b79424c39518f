// Package collector parses the recombination-collector wire format
// (SPEC_FULL.md section 4.1) and drives an ftprime.Recorder from it,
// grounded on the original ftprime.RecombCollector
// (original_source/ftprime/recomb_collector.py).
package collector

import "github.com/BurntSushi/toml"

// Config carries the parameters a RecombCollector needs to map a
// simulator's diploid individual/ploidy/locus coordinates onto
// chromosome input IDs and genomic breakpoints, the Go equivalent of
// RecombCollector.__init__'s arguments.
type Config struct {
	NumSamples     int       `toml:"nsamples"`
	Generations    int       `toml:"generations"`
	PopulationSize int       `toml:"population_size"`
	AncestorAge    int       `toml:"ancestor_age"`
	Length         float64   `toml:"length"`
	LocusPosition  []float64 `toml:"locus_position"`

	validated bool
}

// LoadConfig reads a Config from a TOML file at path, following the
// teacher's config_parser.go / loader.go idiom (toml.DecodeFile +
// Validate).
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the structural validity of a collector configuration.
func (c *Config) Validate() error {
	if c.NumSamples <= 0 {
		return errInvalidConfig("nsamples must be positive")
	}
	if c.PopulationSize <= 0 {
		return errInvalidConfig("population_size must be positive")
	}
	if c.Length <= 0 {
		return errInvalidConfig("length must be positive")
	}
	if len(c.LocusPosition) < 2 {
		return errInvalidConfig("locus_position must list at least two positions")
	}
	c.validated = true
	return nil
}
