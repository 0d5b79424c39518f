package ftprime

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// RecorderConfig drives the cmd/argrecorder binary, grounded on the
// teacher's SingleHostConfig / EvoEpiConfig (config_parser.go,
// evoepi_config.go) and their toml.DecodeFile + Validate idiom
// (SPEC_FULL.md section 2.3).
type RecorderConfig struct {
	SequenceLength    float64 `toml:"sequence_length"`
	InitialRosterSize int     `toml:"initial_roster_size"`
	SimplifyInterval  int     `toml:"simplify_interval"` // cmd/argrecorder only tests it for > 0, which triggers one Simplify of the initial roster

	LogPath    string `toml:"log_path"`
	LoggerType string `toml:"logger_type"` // csv|sqlite

	validated bool
}

// LoadRecorderConfig reads a RecorderConfig from a TOML file at path
// and validates it, mirroring loader.go's LoadSingleHostConfig.
func LoadRecorderConfig(path string) (RecorderConfig, error) {
	var cfg RecorderConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return RecorderConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RecorderConfig{}, err
	}
	return cfg, nil
}

// Validate checks the validity of the configuration.
func (c *RecorderConfig) Validate() error {
	if c.SequenceLength <= 0 {
		return fmt.Errorf("sequence_length must be positive, got %g", c.SequenceLength)
	}
	if c.InitialRosterSize < 0 {
		return fmt.Errorf("initial_roster_size must be non-negative, got %d", c.InitialRosterSize)
	}
	switch strings.ToLower(c.LoggerType) {
	case "csv", "sqlite", "":
	default:
		return fmt.Errorf("unrecognized logger_type %q (want csv|sqlite)", c.LoggerType)
	}
	c.validated = true
	return nil
}
