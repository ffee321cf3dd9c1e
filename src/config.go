package mkaudio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SaturationPreset configures a Saturator from a DSP preset file.
type SaturationPreset struct {
	AlphaPos float64 `yaml:"alpha_pos"`
	AlphaNeg float64 `yaml:"alpha_neg"`
	BetaPos  float64 `yaml:"beta_pos"`
	BetaNeg  float64 `yaml:"beta_neg"`
	Delta    float64 `yaml:"delta"`
	Flip     bool    `yaml:"flip"`
}

// Build constructs a Saturator from the preset.
func (p *SaturationPreset) Build() *Saturator {
	return NewSaturator(p.AlphaPos, p.AlphaNeg, p.BetaPos, p.BetaNeg, p.Delta, p.Flip)
}

// CompressorPreset configures a Compressor from a DSP preset file.
type CompressorPreset struct {
	ThresholdDB float64 `yaml:"threshold_db"`
	Ratio       float64 `yaml:"ratio"`
	Knee        float64 `yaml:"knee"`
	AttackMs    float64 `yaml:"attack_ms"`
	ReleaseMs   float64 `yaml:"release_ms"`
	MakeupDB    float64 `yaml:"makeup_db"`
}

// Build constructs a Compressor from the preset at sampleRate.
func (p *CompressorPreset) Build(sampleRate float64) *Compressor {
	return &Compressor{
		SampleRate:  sampleRate,
		ThresholdDB: p.ThresholdDB,
		Ratio:       p.Ratio,
		Knee:        p.Knee,
		AttackMs:    p.AttackMs,
		ReleaseMs:   p.ReleaseMs,
		MakeupDB:    p.MakeupDB,
	}
}

// LimiterPreset configures a Limiter from a DSP preset file.
type LimiterPreset struct {
	ThresholdDB float64 `yaml:"threshold_db"`
	ReleaseMs   float64 `yaml:"release_ms"`
	Gain        float64 `yaml:"gain_db"`
}

// Build constructs a Limiter from the preset at sampleRate.
func (p *LimiterPreset) Build(sampleRate float64) *Limiter {
	l := NewLimiter(sampleRate, p.ThresholdDB, p.ReleaseMs)
	l.Gain = p.Gain
	return l
}

// DSPConfig groups the presets a single YAML file may define. Any
// section may be omitted.
type DSPConfig struct {
	Saturation *SaturationPreset `yaml:"saturation,omitempty"`
	Compressor *CompressorPreset `yaml:"compressor,omitempty"`
	Limiter    *LimiterPreset    `yaml:"limiter,omitempty"`
}

// LoadDSPConfig reads and parses a DSP preset file.
func LoadDSPConfig(path string) (*DSPConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config %s: %v", ErrIO, path, err)
	}
	var cfg DSPConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config %s: %v", ErrInvalidParameter, path, err)
	}
	Log.Debug("loaded dsp preset", "path", path)
	return &cfg, nil
}
