// Package config is the configuration object the evaluator consumes (§6):
// target language version and the three configurable diagnostic levels.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/laughingirL/pyright/internal/diagnostics"
)

// Configuration mirrors §6's consumed-from-configuration surface exactly:
// pythonVersion plus the three reportOptional* levels. PythonVersion holds
// the Python 3 minor version being targeted (e.g. 10 for 3.10) — evaluator
// rules gated on language-version cutoffs (dataclasses' post-3.7 field
// naming rule, among others) compare against it directly.
type Configuration struct {
	PythonVersion              int               `yaml:"pythonVersion"`
	ReportOptionalMemberAccess diagnostics.Level `yaml:"reportOptionalMemberAccess"`
	ReportOptionalSubscript    diagnostics.Level `yaml:"reportOptionalSubscript"`
	ReportOptionalCall         diagnostics.Level `yaml:"reportOptionalCall"`
}

// Default returns the configuration used when no file is supplied: target
// version 3.10, all three optional-access diagnostics at warning level (the
// pyright default for these specific rules).
func Default() Configuration {
	return Configuration{
		PythonVersion:              10,
		ReportOptionalMemberAccess: diagnostics.LevelWarning,
		ReportOptionalSubscript:    diagnostics.LevelWarning,
		ReportOptionalCall:         diagnostics.LevelWarning,
	}
}

// Load reads a YAML configuration file, filling in Default() for any field
// the file omits.
func Load(path string) (Configuration, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}


