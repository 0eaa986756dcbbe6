package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/plasma-twin/internal/config"
	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a scripted run.
type Fixture struct {
	Description     string            `json:"description"`
	Config          FixtureConfig     `json:"config"`
	Steps           []FixtureStep     `json:"steps"`
	ExpectedResults []FixtureExpected `json:"expected_results"`
}

// FixtureConfig overrides a subset of the engine configuration. Zero values
// mean "keep the default".
type FixtureConfig struct {
	InitialTemperature float64 `json:"initial_temperature,omitempty"`
	InitialDensity     float64 `json:"initial_density,omitempty"`
	HistoryLimit       int     `json:"history_limit,omitempty"`
	ActThreshold       float64 `json:"act_threshold,omitempty"`
	EnableDecision     *bool   `json:"enable_decision,omitempty"`
	EnableMemory       *bool   `json:"enable_memory,omitempty"`
}

// ToConfig applies the overrides on top of the defaults.
func (fc FixtureConfig) ToConfig() config.Config {
	cfg := config.Default()
	if fc.InitialTemperature != 0 {
		cfg.Plasma.InitialTemperature = fc.InitialTemperature
	}
	if fc.InitialDensity != 0 {
		cfg.Plasma.InitialDensity = fc.InitialDensity
	}
	if fc.HistoryLimit != 0 {
		cfg.Plasma.HistoryLimit = fc.HistoryLimit
	}
	if fc.ActThreshold != 0 {
		cfg.Selector.ActThreshold = fc.ActThreshold
	}
	if fc.EnableDecision != nil {
		cfg.EnableDecision = *fc.EnableDecision
	}
	if fc.EnableMemory != nil {
		cfg.EnableMemory = *fc.EnableMemory
	}
	return cfg
}

// FixtureControl mirrors plasma.ControlAdjustment with JSON tags.
type FixtureControl struct {
	FuelingDelta  float64 `json:"fueling_delta"`
	HeatingDelta  float64 `json:"heating_delta"`
	MagneticField float64 `json:"magnetic_field"`
}

// ToControl converts to the plasma control type.
func (fc FixtureControl) ToControl() plasma.ControlAdjustment {
	return plasma.ControlAdjustment{
		FuelingDelta:  fc.FuelingDelta,
		HeatingDelta:  fc.HeatingDelta,
		MagneticField: fc.MagneticField,
	}
}

// FixtureStep is one scripted tick: an optional control adjustment applied
// before stepping, then a fixed time step.
type FixtureStep struct {
	DeltaTime float64         `json:"delta_time"`
	Control   *FixtureControl `json:"control,omitempty"`
}

// FixtureExpected is the expected phase after a given tick.
type FixtureExpected struct {
	Tick  int    `json:"tick"`
	Phase string `json:"phase"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and parses a fixture JSON file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if len(f.Steps) == 0 {
		return Fixture{}, fmt.Errorf("fixture %s has no steps", path)
	}
	return f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, f Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}

// #endregion load
