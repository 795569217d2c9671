package config

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config specifies all solve parameters. It supports YAML parsing and
// includes comprehensive validation.
type Config struct {
	// Seed is the master seed for deterministic annealing runs. Use 0 to
	// auto-generate from current time.
	Seed uint64 `yaml:"seed" json:"seed"`

	// ProblemSizes maps a known contest problem name to its room count.
	// Ships with the six sizes from the ICFPC 2025 "Aedificium" problem
	// set (probatio through quintus) but callers may override or extend it.
	ProblemSizes map[string]int `yaml:"problemSizes" json:"problemSizes"`

	// OrchestratorThreshold is the room count at or above which Solve
	// dispatches to the annealing solver instead of DFS backtracking.
	OrchestratorThreshold int `yaml:"orchestratorThreshold" json:"orchestratorThreshold"`

	// DFS tunes the exact backtracking solver.
	DFS DFSCfg `yaml:"dfs" json:"dfs"`

	// Annealing tunes the simulated-annealing solver.
	Annealing AnnealingCfg `yaml:"annealing" json:"annealing"`
}

// DFSCfg controls the exact backtracking solver.
type DFSCfg struct {
	// MaxMemoEntries caps the size of the visited-state digest table; once
	// it is full, new states are still explored but no longer cached.
	// 0 means unbounded.
	MaxMemoEntries int `yaml:"maxMemoEntries" json:"maxMemoEntries"`
}

// AnnealingCfg controls the simulated-annealing solver's cooling schedule
// and restart policy.
type AnnealingCfg struct {
	// K is the initial temperature coefficient (T(0) = K).
	K float64 `yaml:"k" json:"k"`

	// Tau is the cooling time constant: T(t) = max(0.1, K*exp(-t/Tau)).
	Tau float64 `yaml:"tau" json:"tau"`

	// StagnationThreshold is the number of consecutive non-improving steps
	// after which the solver restarts from a fresh random candidate.
	StagnationThreshold int `yaml:"stagnationThreshold" json:"stagnationThreshold"`

	// MaxIterations bounds the total number of mutation steps per attempt.
	MaxIterations int `yaml:"maxIterations" json:"maxIterations"`
}

// DefaultProblemSizes returns the room counts for the six named ICFPC 2025
// problem instances.
func DefaultProblemSizes() map[string]int {
	return map[string]int{
		"probatio": 3,
		"primus":   6,
		"secundus": 12,
		"tertius":  18,
		"quartus":  24,
		"quintus":  30,
	}
}

// Default returns a Config populated with the reference tuning values: the
// six named problem sizes, a DFS/annealing split at 14 rooms, and the
// cooling schedule derived from original_source's solver2.cpp.
func Default() *Config {
	return &Config{
		ProblemSizes:          DefaultProblemSizes(),
		OrchestratorThreshold: 14,
		DFS: DFSCfg{
			MaxMemoEntries: 0,
		},
		Annealing: AnnealingCfg{
			K:                   2.0,
			Tau:                 5000.0,
			StagnationThreshold: 2000,
			MaxIterations:       200000,
		},
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice. Useful
// for testing and programmatic config generation. Unset fields fall back
// to Default's values.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if len(c.ProblemSizes) == 0 {
		return errors.New("at least one problem size must be specified")
	}
	for name, n := range c.ProblemSizes {
		if n < 1 {
			return fmt.Errorf("problemSizes[%q]: room count must be >= 1, got %d", name, n)
		}
	}

	if c.OrchestratorThreshold < 1 {
		return fmt.Errorf("orchestratorThreshold must be >= 1, got %d", c.OrchestratorThreshold)
	}

	if err := c.DFS.Validate(); err != nil {
		return fmt.Errorf("dfs: %w", err)
	}
	if err := c.Annealing.Validate(); err != nil {
		return fmt.Errorf("annealing: %w", err)
	}

	return nil
}

// Validate checks DFSCfg constraints.
func (d *DFSCfg) Validate() error {
	if d.MaxMemoEntries < 0 {
		return fmt.Errorf("maxMemoEntries must be >= 0, got %d", d.MaxMemoEntries)
	}
	return nil
}

// Validate checks AnnealingCfg constraints.
func (a *AnnealingCfg) Validate() error {
	if a.K <= 0 {
		return fmt.Errorf("k must be > 0, got %f", a.K)
	}
	if a.Tau <= 0 {
		return fmt.Errorf("tau must be > 0, got %f", a.Tau)
	}
	if a.StagnationThreshold < 1 {
		return fmt.Errorf("stagnationThreshold must be >= 1, got %d", a.StagnationThreshold)
	}
	if a.MaxIterations < 1 {
		return fmt.Errorf("maxIterations must be >= 1, got %d", a.MaxIterations)
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the annealing tuning parameters.
// Used as the configHash input to rng.NewRNG so that changing K, Tau, or
// the stagnation threshold perturbs the derived RNG sequences.
func (c *Config) Hash() []byte {
	data, err := yaml.Marshal(c.Annealing)
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}

	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// generateSeed creates a seed from the current time.
func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}
