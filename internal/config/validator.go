package config

import (
	"fmt"

	"github.com/standardbeagle/jparse/internal/langver"
)

// Validator checks a Config for internally-consistent values and fills
// in any fields the loader left at their zero value, mirroring the
// teacher's separate load-then-validate-then-default pipeline.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator { return &Validator{} }

// ValidateAndSetDefaults rejects an unusable Config and otherwise fills
// in zero-valued fields with smart defaults.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if !cfg.Version.Valid() {
		return fmt.Errorf("config: version %d is not a recognized language version", cfg.Version)
	}
	if cfg.MaxInputBytes <= 0 {
		return fmt.Errorf("config: max-input-bytes must be positive, got %d", cfg.MaxInputBytes)
	}
	if cfg.ArenaCapacityFactor <= 0 {
		return fmt.Errorf("config: arena-capacity-factor must be positive, got %g", cfg.ArenaCapacityFactor)
	}
	if cfg.RecursionLimit <= 0 {
		return fmt.Errorf("config: recursion-limit must be positive, got %d", cfg.RecursionLimit)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("config: workers cannot be negative, got %d", cfg.Workers)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Version == langver.Unknown {
		cfg.Version = langver.Latest
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers()
	}
}

// ValidateConfig is a convenience wrapper matching the teacher's
// package-level ValidateConfig helper.
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
