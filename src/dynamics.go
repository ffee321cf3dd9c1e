package mkaudio

import "math"

// dynamicsFloorDB is the floor applied to the input level after it is
// converted to decibels, so a silent or exactly-zero sample (for which
// RatioToDB returns -Inf) feeds a finite level into the gain-reduction curve.
const dynamicsFloorDB = -200.0

func flushDenormal(x float64) float64 {
	if x < denormalFlushThreshold && x > -denormalFlushThreshold {
		return 0
	}
	return x
}

func attackReleaseCoeff(ms, sampleRate float64) float64 {
	if ms <= 0 {
		return 0
	}
	return math.Exp(-1.0 / (ms / 1000.0 * sampleRate))
}

// Compressor is a feed-forward gain-reduction compressor with hard- or
// soft-knee curves, matching spec.md §4.8. Unlike a level-domain envelope
// follower, attack/release smoothing is applied to the computed gain
// reduction itself, not to the rectified input signal.
type Compressor struct {
	SampleRate  float64
	ThresholdDB float64
	Ratio       float64
	Knee        float64 // knee width in dB; 0 is a hard knee
	AttackMs    float64
	ReleaseMs   float64
	MakeupDB    float64

	env float64 // smoothed gain reduction, in dB, always <= 0
}

// NewCompressor creates a compressor with reasonable defaults at the
// given sample rate.
func NewCompressor(sampleRate float64) *Compressor {
	return &Compressor{
		SampleRate:  sampleRate,
		ThresholdDB: -12,
		Ratio:       4,
		AttackMs:    10,
		ReleaseMs:   100,
	}
}

// gainReduction computes the target gain reduction g (<=0 dB) for an
// input level of xDB decibels, per spec.md §4.8's hard/soft-knee
// formulas.
func (c *Compressor) gainReduction(xDB float64) float64 {
	t := c.ThresholdDB
	r := c.Ratio
	if c.Knee <= 0 {
		if xDB <= t {
			return 0
		}
		return (t + (xDB-t)/r) - xDB
	}
	w := c.Knee
	lower := t - w/2
	upper := t + w/2
	switch {
	case xDB <= lower:
		return 0
	case xDB >= upper:
		return (t + (xDB-t)/r) - xDB
	default:
		return (1/r - 1) * (xDB - lower) * (xDB - lower) / (2 * w)
	}
}

// Process compresses one sample and returns the result.
func (c *Compressor) Process(x float64) float64 {
	xDB := math.Max(RatioToDB(math.Abs(x)), dynamicsFloorDB)
	target := c.gainReduction(xDB)

	coeff := attackReleaseCoeff(c.ReleaseMs, c.SampleRate)
	if target < c.env {
		coeff = attackReleaseCoeff(c.AttackMs, c.SampleRate)
	}
	c.env = flushDenormal(target + coeff*(c.env-target))

	return flushDenormal(x * DBToRatio(c.env+c.MakeupDB))
}

// Reset clears the gain-reduction envelope.
func (c *Compressor) Reset() { c.env = 0 }

// Limiter is a brickwall peak limiter driven by an input gain stage: the
// signal is scaled by Gain before limiting, tracked with an instantaneous
// attack and exponential release on the limiting envelope itself, per
// spec.md §4.8.
type Limiter struct {
	SampleRate  float64
	ThresholdDB float64
	ReleaseMs   float64
	Gain        float64 // input gain in dB, applied before limiting

	env float64 // limiting envelope, starts at 1 (no reduction)
}

// NewLimiter creates a limiter at the given sample rate and ceiling.
func NewLimiter(sampleRate, thresholdDB, releaseMs float64) *Limiter {
	return &Limiter{SampleRate: sampleRate, ThresholdDB: thresholdDB, ReleaseMs: releaseMs, env: 1}
}

// Process limits one sample and returns the result.
func (l *Limiter) Process(x float64) float64 {
	a := x * DBToRatio(l.Gain)
	ceiling := DBToRatio(l.ThresholdDB)

	target := 1.0
	if mag := math.Abs(a); mag > ceiling {
		target = ceiling / mag
	}

	if target < l.env {
		l.env = target
	} else {
		coeff := attackReleaseCoeff(l.ReleaseMs, l.SampleRate)
		l.env = target + coeff*(l.env-target)
	}
	l.env = flushDenormal(l.env)

	return flushDenormal(a * l.env)
}

// Reset clears the limiting envelope back to unity.
func (l *Limiter) Reset() { l.env = 1 }
