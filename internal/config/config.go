// Package config loads jisho.cue configuration files.
//
// A configuration file is plain CUE unified with the embedded #Config
// schema; the schema supplies defaults and rejects ill-typed values
// with a source position.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "jisho.cue"

// Config is the decoded configuration.
type Config struct {
	Dictionary       Dictionary `json:"dictionary"`
	Database         string     `json:"database,omitempty"`
	Language         string     `json:"language"`
	TimeLimitSeconds float64    `json:"time_limit_seconds"`
	Limit            int        `json:"limit"`
	Cache            bool       `json:"cache"`
}

// Dictionary locates the word list.
type Dictionary struct {
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
	Name     string `json:"name"`
}

// TimeLimit returns the search budget.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds * float64(time.Second))
}

// Error is a configuration error with source position.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the configuration of an empty file.
func Default() Config {
	cfg, err := Parse(nil, "default.cue")
	if err != nil {
		// The embedded schema is fixed at build time.
		panic(fmt.Sprintf("config: default configuration invalid: %v", err))
	}
	return cfg
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// LoadOrDefault loads path, or returns Default when path is empty or
// names the default file and that file does not exist.
func LoadOrDefault(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	return Load(path)
}

// Parse validates data against the schema. filename is used in error
// positions.
func Parse(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	file := ctx.CompileBytes(data, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := def.Unify(file)
	if err := v.Validate(); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "config"
	if path := first.Path(); len(path) > 0 {
		field = strings.Join(path, ".")
	}
	msg, args := first.Msg()
	e := &Error{Field: field, Message: fmt.Sprintf(msg, args...)}
	if positions := errors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
