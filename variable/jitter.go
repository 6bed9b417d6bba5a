package variable

import "math/rand"

// Jitter is an optional, deterministic-given-its-source perturbation
// attached to a Variable. It mirrors the stochastic-rounding helper of
// original_source/sequence_parser/stochastic.py: some sweep authors dither
// a swept value by a small Gaussian amount to avoid aliasing artifacts in
// downstream analysis. It is off by default and never applied unless a
// Variable explicitly opts in via WithJitter, so ordinary compiles stay
// bit-for-bit deterministic.
type Jitter struct {
	rng   *rand.Rand
	sigma float64
}

// WithJitter attaches a Gaussian perturbation of standard deviation sigma,
// drawn from rng, to v. Value() and ValueAt() are unaffected; only
// JitteredValue() applies the perturbation, so callers opt in explicitly
// per read.
func (v *Variable) WithJitter(rng *rand.Rand, sigma float64) *Variable {
	v.jitter = &Jitter{rng: rng, sigma: sigma}

	return v
}

// JitteredValue returns the current value plus one Gaussian draw scaled by
// the attached Jitter's sigma. If no Jitter is attached, it is identical
// to Value().
func (v *Variable) JitteredValue() float64 {
	if v.jitter == nil {
		return v.Value()
	}

	return v.Value() + v.jitter.rng.NormFloat64()*v.jitter.sigma
}
