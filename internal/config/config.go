// Package config loads the recordcheck CLI configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/recordcheck"
	"github.com/reoring/recordcheck/i18n"
	"github.com/reoring/recordcheck/internal/logging"
)

// Config mirrors the YAML file. Zero values mean "not set".
type Config struct {
	LogLevel      string `yaml:"log_level"`
	SchemaMode    string `yaml:"schema_mode"`
	DuplicateKeys string `yaml:"duplicate_keys"`
	MaxBytes      int64  `yaml:"max_bytes"`
	Language      string `yaml:"language"`
}

// Error is a configuration problem: a missing or unreadable file, an invalid
// value, or an unknown record kind.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error from a formatted cause.
func Errorf(op, format string, args ...any) *Error {
	return &Error{Op: op, Err: fmt.Errorf(format, args...)}
}

// Load reads a YAML config. An empty path returns the zero Config; a path
// that does not exist is an *Error.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, &Error{Op: "load config", Err: fmt.Errorf("file %s does not exist", path)}
		}
		return cfg, &Error{Op: "load config", Err: err}
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &Error{Op: "parse config " + path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &Error{Op: "log_level", Err: err}
	}
	if _, err := recordcheck.ParseSchemaMode(c.SchemaMode); err != nil {
		return &Error{Op: "schema_mode", Err: err}
	}
	if _, err := recordcheck.ParseSeverity(c.DuplicateKeys); err != nil {
		return &Error{Op: "duplicate_keys", Err: err}
	}
	if c.MaxBytes < 0 {
		return Errorf("max_bytes", "must not be negative, got %d", c.MaxBytes)
	}
	if c.Language != "" && !i18n.Supported(c.Language) {
		return Errorf("language", "unsupported language %q", c.Language)
	}
	return nil
}

// Options converts the settings into library options. Logger is left unset.
func (c Config) Options() (recordcheck.ValidateOpt, error) {
	var opt recordcheck.ValidateOpt
	mode, err := recordcheck.ParseSchemaMode(c.SchemaMode)
	if err != nil {
		return opt, &Error{Op: "schema_mode", Err: err}
	}
	dup, err := recordcheck.ParseSeverity(c.DuplicateKeys)
	if err != nil {
		return opt, &Error{Op: "duplicate_keys", Err: err}
	}
	opt.SchemaMode = mode
	opt.Strictness.OnDuplicateKey = dup
	opt.MaxBytes = c.MaxBytes
	return opt, nil
}
