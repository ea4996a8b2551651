package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"solir/internal/ast"
	"solir/internal/errors"
)

// DefaultFile is the project file name Load looks for when the caller
// does not name one.
const DefaultFile = "solir.yaml"

// DefaultSolcVersion is assumed when no project file pins a compiler.
const DefaultSolcVersion = "0.8.19"

// Config carries the analyzer settings read from an optional solir.yaml
// at the project root. Start from Default; the zero value pins no
// compiler version.
type Config struct {
	// SolcVersion pins the compiler version analyses assume, which
	// decides version-gated behavior like the STATICCALL reentrancy
	// cutoff. Compiler metadata suffixes ("0.8.19+commit.7dd6d404")
	// parse.
	SolcVersion string `yaml:"solc"`

	// Strict promotes resolver warnings to run-failing diagnostics.
	Strict bool `yaml:"strict"`
}

// Default returns the settings used when no project file is present.
func Default() *Config {
	return &Config{SolcVersion: DefaultSolcVersion}
}

// Load reads a project file and overlays it on the defaults. A missing
// file is not an error: every analysis runs on defaults alone. A file
// that exists but cannot be applied is reported as an E0400 diagnostic.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // reject unknown keys, catches typos
	if err := decoder.Decode(cfg); err != nil {
		if err == io.EOF { // empty file, same as no file
			return cfg, nil
		}
		return nil, errors.InvalidConfig(fmt.Sprintf("cannot parse %s: %v", path, err))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := semver.NewVersion(c.SolcVersion); err != nil {
		return errors.InvalidConfig(fmt.Sprintf("cannot parse solc version %q", c.SolcVersion))
	}
	return nil
}

// Unit creates a compilation unit pinned to the configured solc version.
func (c *Config) Unit() (*ast.CompilationUnit, error) {
	return ast.NewCompilationUnit(c.SolcVersion)
}

// Severe reports whether a diagnostic fails the run under this
// configuration. Errors always do; warnings only in strict mode.
func (c *Config) Severe(diag errors.AnalysisError) bool {
	if diag.Level == errors.Error {
		return true
	}
	return c.Strict && diag.Level == errors.Warning
}
