package mkaudio

import "math"

// minShapeAlpha is the floor applied to the positive/negative shape
// parameters. Below it, log2(1+alpha*x) loses enough precision near x=0
// that the normalizer n=1/log2(1+alpha) blows up.
const minShapeAlpha = 1e-4

// Saturator is an asymmetric logarithmic waveshaper. The curve pivots at
// (Delta, 0) and is driven through independent log curves above and below
// that pivot, each with its own drive (alpha) and output ceiling (beta) —
// what gives tube-style saturation its characteristic even-harmonic bias.
type Saturator struct {
	AlphaPos float64
	AlphaNeg float64
	BetaPos  float64
	BetaNeg  float64
	Delta    float64
	Flip     bool

	nPos float64
	nNeg float64
}

// NewSaturator builds a saturator from its six curve parameters. AlphaPos
// and AlphaNeg are clamped to minShapeAlpha before the normalizers are
// derived, so the curve never degenerates.
func NewSaturator(alphaPos, alphaNeg, betaPos, betaNeg, delta float64, flip bool) *Saturator {
	s := &Saturator{
		AlphaPos: alphaPos,
		AlphaNeg: alphaNeg,
		BetaPos:  betaPos,
		BetaNeg:  betaNeg,
		Delta:    delta,
		Flip:     flip,
	}
	s.reconfigure()
	return s
}

// reconfigure clamps the shape parameters and recomputes the log
// normalizers. Call it after mutating AlphaPos or AlphaNeg directly.
func (s *Saturator) reconfigure() {
	if s.AlphaPos < minShapeAlpha {
		s.AlphaPos = minShapeAlpha
	}
	if s.AlphaNeg < minShapeAlpha {
		s.AlphaNeg = minShapeAlpha
	}
	s.nPos = 1 / math.Log2(1+s.AlphaPos)
	s.nNeg = 1 / math.Log2(1+s.AlphaNeg)
}

// SetShape updates all six curve parameters and recomputes the
// normalizers.
func (s *Saturator) SetShape(alphaPos, alphaNeg, betaPos, betaNeg, delta float64, flip bool) {
	s.AlphaPos = alphaPos
	s.AlphaNeg = alphaNeg
	s.BetaPos = betaPos
	s.BetaNeg = betaNeg
	s.Delta = delta
	s.Flip = flip
	s.reconfigure()
}

// Process runs one sample through the shaper. The curve passes through
// (Delta, 0); the normalization guarantees y(Delta+1) = BetaPos and
// y(Delta-1) = -BetaNeg.
func (s *Saturator) Process(x float64) float64 {
	var y float64
	if x >= s.Delta {
		y = s.BetaPos * math.Log2(1+s.AlphaPos*(x-s.Delta)) * s.nPos
	} else {
		y = -s.BetaNeg * math.Log2(1+s.AlphaNeg*(s.Delta-x)) * s.nNeg
	}
	if s.Flip {
		y = -y
	}
	return y
}

// ProcessBuffer shapes every sample in place.
func (s *Saturator) ProcessBuffer(buf []float64) {
	for i, x := range buf {
		buf[i] = s.Process(x)
	}
}
