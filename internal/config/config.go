// Package config holds the run parameters of the cmp command: the eight
// positional scan parameters and the optional settings that may come from
// a YAML file or flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-velan/internal/interp"
	"github.com/cwbudde/algo-velan/su"
)

var (
	// ErrInvalidParams wraps every positional-parameter validation failure.
	ErrInvalidParams = errors.New("config: invalid parameters")
	// ErrInvalidConfig wraps every settings validation failure.
	ErrInvalidConfig = errors.New("config: invalid settings")
)

// Config is the optional settings block.
type Config struct {
	Workers          int     `yaml:"workers"`
	OutDir           string  `yaml:"out_dir"`
	VelocityOut      string  `yaml:"velocity_out"`
	CoherenceOut     string  `yaml:"coherence_out"`
	StackOut         string  `yaml:"stack_out"`
	Interp           string  `yaml:"interp"`
	ByteOrder        string  `yaml:"byte_order"`
	MidpointAperture float64 `yaml:"midpoint_aperture"`
	PicksDB          string  `yaml:"picks_db"`
	Verbose          bool    `yaml:"verbose"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		OutDir:       ".",
		VelocityOut:  "c.su",
		CoherenceOut: "cmp.coher.su",
		StackOut:     "cmp.stack.su",
		Interp:       interp.Linear.String(),
		ByteOrder:    "little",
	}
}

// Load reads a YAML settings file over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0: %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := interp.ParseKind(c.Interp); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := su.ParseByteOrder(c.ByteOrder); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MidpointAperture < 0 || math.IsNaN(c.MidpointAperture) {
		return fmt.Errorf("%w: midpoint aperture must be >= 0: %v", ErrInvalidConfig, c.MidpointAperture)
	}
	for name, v := range map[string]string{"velocity_out": c.VelocityOut, "coherence_out": c.CoherenceOut, "stack_out": c.StackOut} {
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
		}
	}
	return nil
}

// OutputPaths returns the velocity, coherence and stack output paths.
func (c Config) OutputPaths() (velocity, coherence, stack string) {
	join := func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(c.OutDir, name)
	}
	return join(c.VelocityOut), join(c.CoherenceOut), join(c.StackOut)
}

// Params are the positional scan parameters.
type Params struct {
	C0    float64
	C1    float64
	NC    int
	APH   float64
	Tau   float64
	Input string
	CDP0  int32
	CDP1  int32
}

// NumArgs is the number of positional arguments.
const NumArgs = 8

// ParseParams parses C0 C1 NC APH TAU INPUT CDP0 CDP1.
func ParseParams(args []string) (Params, error) {
	var p Params
	if len(args) != NumArgs {
		return p, fmt.Errorf("%w: want %d arguments, got %d", ErrInvalidParams, NumArgs, len(args))
	}
	floats := []struct {
		name string
		dst  *float64
		s    string
	}{
		{"C0", &p.C0, args[0]},
		{"C1", &p.C1, args[1]},
		{"APH", &p.APH, args[3]},
		{"TAU", &p.Tau, args[4]},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(f.s, 64)
		if err != nil {
			return p, fmt.Errorf("%w: %s: %v", ErrInvalidParams, f.name, err)
		}
		*f.dst = v
	}
	nc, err := strconv.Atoi(args[2])
	if err != nil {
		return p, fmt.Errorf("%w: NC: %v", ErrInvalidParams, err)
	}
	p.NC = nc
	p.Input = args[5]
	for i, dst := range []*int32{&p.CDP0, &p.CDP1} {
		v, err := strconv.ParseInt(args[6+i], 10, 32)
		if err != nil {
			return p, fmt.Errorf("%w: CDP%d: %v", ErrInvalidParams, i, err)
		}
		*dst = int32(v)
	}
	return p, p.Validate()
}

// Validate checks the physical constraints of the parameters.
func (p Params) Validate() error {
	switch {
	case !(p.C0 > 0) || math.IsInf(p.C0, 0):
		return fmt.Errorf("%w: C0 must be a positive velocity: %v", ErrInvalidParams, p.C0)
	case !(p.C1 > p.C0) || math.IsInf(p.C1, 0):
		return fmt.Errorf("%w: C1 must exceed C0: %v <= %v", ErrInvalidParams, p.C1, p.C0)
	case p.NC < 1:
		return fmt.Errorf("%w: NC must be >= 1: %d", ErrInvalidParams, p.NC)
	case !(p.APH >= 0):
		return fmt.Errorf("%w: APH must be >= 0: %v", ErrInvalidParams, p.APH)
	case !(p.Tau >= 0) || math.IsInf(p.Tau, 0):
		return fmt.Errorf("%w: TAU must be >= 0: %v", ErrInvalidParams, p.Tau)
	case p.Input == "":
		return fmt.Errorf("%w: INPUT must not be empty", ErrInvalidParams)
	case p.CDP0 > p.CDP1:
		return fmt.Errorf("%w: CDP0 must not exceed CDP1: %d > %d", ErrInvalidParams, p.CDP0, p.CDP1)
	}
	return nil
}
