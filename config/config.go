package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for configuration loading.
var (
	// ErrBadConfig indicates unreadable or malformed YAML.
	ErrBadConfig = errors.New("config: malformed configuration")

	// ErrBadValue indicates a well-formed file with an inconsistent value.
	ErrBadValue = errors.New("config: invalid value")
)

// Config is one simulation run, as read from the YAML run file.
type Config struct {
	// Bare couplings of the action.
	K0 float64 `yaml:"k0"`
	K3 float64 `yaml:"k3"`

	// Epsilon is the volume-fixing strength applied to the acceptance
	// ratios while a target volume is set.
	Epsilon float64 `yaml:"epsilon"`

	// Seed fixes the single generator shared by mesh and driver.
	Seed int64 `yaml:"seed"`

	// Genus of the spatial slices; only 0 (spherical) is supported.
	Genus int `yaml:"genus"`

	// TargetVolume fixes the total tetrahedron count; 0 leaves volume
	// free.
	TargetVolume int `yaml:"target_volume"`
	// Target2Volume gates slice measurements on a slice reaching this
	// (3,1) count; 0 measures unconditionally.
	Target2Volume int `yaml:"target_2volume"`

	// Sweep schedule. Each sweep is KSteps*1000 attempted moves.
	ThermalSweeps int `yaml:"thermal_sweeps"`
	MeasureSweeps int `yaml:"measure_sweeps"`
	KSteps        int `yaml:"ksteps"`

	// Strictness selects the manifold constraint level, 0 through 3.
	Strictness int `yaml:"strictness"`

	// Geometry and output locations. InFile is required; an empty
	// OutFile disables the final export.
	InFile    string `yaml:"in_file"`
	OutFile   string `yaml:"out_file"`
	OutputDir string `yaml:"output_dir"`

	// FileID tags the per-observable data files.
	FileID string `yaml:"file_id"`
}

// Default returns the baseline configuration a run file overrides.
func Default() Config {
	return Config{
		K0:            1.0,
		K3:            0.75,
		Epsilon:       0.02,
		Seed:          1,
		ThermalSweeps: 10,
		MeasureSweeps: 100,
		KSteps:        100,
		OutputDir:     "out",
		FileID:        "run",
	}
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown fields are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the run file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	defer f.Close()
	return Parse(f)
}

// Validate checks the semantic constraints Parse enforces.
func (c Config) Validate() error {
	if c.Genus != 0 {
		return fmt.Errorf("%w: genus %d (only spherical slices are supported)", ErrBadValue, c.Genus)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon %g", ErrBadValue, c.Epsilon)
	}
	if c.TargetVolume < 0 {
		return fmt.Errorf("%w: target_volume %d", ErrBadValue, c.TargetVolume)
	}
	if c.Target2Volume < 0 {
		return fmt.Errorf("%w: target_2volume %d", ErrBadValue, c.Target2Volume)
	}
	if c.ThermalSweeps < 0 {
		return fmt.Errorf("%w: thermal_sweeps %d", ErrBadValue, c.ThermalSweeps)
	}
	if c.MeasureSweeps < 0 {
		return fmt.Errorf("%w: measure_sweeps %d", ErrBadValue, c.MeasureSweeps)
	}
	if c.KSteps < 1 {
		return fmt.Errorf("%w: ksteps %d", ErrBadValue, c.KSteps)
	}
	if c.Strictness < 0 || c.Strictness > 3 {
		return fmt.Errorf("%w: strictness %d", ErrBadValue, c.Strictness)
	}
	if c.InFile == "" {
		return fmt.Errorf("%w: in_file is required", ErrBadValue)
	}
	if c.FileID == "" {
		return fmt.Errorf("%w: file_id must not be empty", ErrBadValue)
	}
	return nil
}
