// Package config loads graphmapper settings from a TOML file.
//
// Every key is optional; missing keys keep their defaults:
//
//	threshold = 80          # fuzzy acceptance threshold, 0-100
//	out_dir = "out"         # artifact directory
//	autosave = true         # write the CSV after every mutation
//	allow_self_loops = true
//
//	[render]
//	engine = "graphviz"     # graphviz, dot or none
//	command = "dot"         # executable for the dot engine
//	cache = true            # reuse PDFs rendered from identical DOT
//
// Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	gmerrors "github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/match"
	"github.com/matzehuels/graphmapper/pkg/render"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "graphmapper.toml"

// Render engines.
const (
	EngineGraphviz = "graphviz"
	EngineDot      = "dot"
	EngineNone     = "none"
)

// Config holds all settings.
type Config struct {
	Threshold      int    `toml:"threshold" validate:"gte=0,lte=100"`
	OutDir         string `toml:"out_dir" validate:"required"`
	Autosave       bool   `toml:"autosave"`
	AllowSelfLoops bool   `toml:"allow_self_loops"`
	Render         Render `toml:"render"`
}

// Render configures PDF rendering on export.
type Render struct {
	Engine  string `toml:"engine" validate:"oneof=graphviz dot none"`
	Command string `toml:"command" validate:"required_if=Engine dot"`
	Cache   bool   `toml:"cache"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Threshold:      match.DefaultThreshold,
		OutDir:         "out",
		Autosave:       true,
		AllowSelfLoops: true,
		Render: Render{
			Engine:  EngineGraphviz,
			Command: render.DefaultCommand,
			Cache:   true,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the TOML file at path on top of the defaults.
// A missing file is not an error unless required is set, which callers use
// for an explicit --config flag.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, gmerrors.Wrap(gmerrors.ErrCodeNotFound, err, "config %s", path)
		}
		return Config{}, gmerrors.Wrap(gmerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, gmerrors.New(gmerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gmerrors.Wrap(gmerrors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return gmerrors.New(gmerrors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0 and 100, got %v", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}
