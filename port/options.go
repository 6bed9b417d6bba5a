package port

// Option configures a Port at construction time.
type Option func(*Port)

// WithDACStep overrides the sample step (ns). The spec documents 1.0 ns
// and an older 0.2 ns variant; either is a caller choice.
func WithDACStep(ns float64) Option {
	return func(p *Port) { p.dacStep = ns }
}

// WithSidebandFreq overrides the port's IF/sideband frequency (GHz),
// consumed by Pulse.Execute as the default execIFFreq = SidebandFreq +
// Detuning when a Pulse carries no explicit override.
func WithSidebandFreq(ghz float64) Option {
	return func(p *Port) { p.sidebandFreq = ghz }
}

// WithSkew sets the port's output-path skew (ns), equalized against the
// slowest port's skew by the owning Sequence during compile.
func WithSkew(ns float64) Option {
	return func(p *Port) { p.skew = ns }
}
