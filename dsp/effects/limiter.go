package effects

// Limiter implements a peak limiter as a high-ratio compressor with a fast
// fixed attack (0.1 ms) and a hard knee.
type Limiter struct {
	comp *Compressor
}

// NewLimiter creates a limiter with a 0 dB ceiling.
func NewLimiter(sampleRate float64) (*Limiter, error) {
	c, err := NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}
	if err := c.SetRatio(100.0); err != nil {
		return nil, err
	}
	if err := c.SetAttack(0.1); err != nil {
		return nil, err
	}
	if err := c.SetKnee(0.0); err != nil {
		return nil, err
	}
	if err := c.SetThreshold(0.0); err != nil {
		return nil, err
	}

	return &Limiter{comp: c}, nil
}

// SetThreshold sets the limiting ceiling in dB.
func (l *Limiter) SetThreshold(dB float64) error {
	return l.comp.SetThreshold(dB)
}

// SetRelease sets the release time in milliseconds.
func (l *Limiter) SetRelease(ms float64) error {
	return l.comp.SetRelease(ms)
}

// SetSampleRate updates the sample rate.
func (l *Limiter) SetSampleRate(sr float64) error {
	return l.comp.SetSampleRate(sr)
}

// Threshold returns the limiting ceiling in dB.
func (l *Limiter) Threshold() float64 { return l.comp.Threshold() }

// Release returns the release time in milliseconds.
func (l *Limiter) Release() float64 { return l.comp.Release() }

// ProcessSample processes one sample through the limiter.
func (l *Limiter) ProcessSample(input float64) float64 {
	return l.comp.ProcessSample(input)
}

// ProcessInPlace applies limiting to buf in place.
func (l *Limiter) ProcessInPlace(buf []float64) {
	l.comp.ProcessInPlace(buf)
}

// SteadyStateGain returns the settled gain for a constant input magnitude.
func (l *Limiter) SteadyStateGain(inputMagnitude float64) float64 {
	return l.comp.SteadyStateGain(inputMagnitude)
}

// Reset clears the internal envelope state.
func (l *Limiter) Reset() {
	l.comp.Reset()
}
