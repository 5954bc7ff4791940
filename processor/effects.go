package processor

// Built-in effect adapters. Each constructor wires a mono kernel from
// dsp/... into the Processor contract with the documented parameter layout.
// Normalized values are clamped into each kernel's valid range before being
// applied, so the ignored setter errors cannot fire on the audio path.

import (
	"math"

	"github.com/cwbudde/algo-pedalboard/dsp/core"
	"github.com/cwbudde/algo-pedalboard/dsp/effects"
	"github.com/cwbudde/algo-pedalboard/dsp/filter/biquad"
	"github.com/cwbudde/algo-pedalboard/dsp/filter/design"
	"github.com/cwbudde/algo-pedalboard/dsp/filter/moog"
	"github.com/cwbudde/algo-pedalboard/dsp/param"
)

// Gain: 0 linear gain, direct. Values above 1 amplify; changes ramp over
// 50 ms inside the kernel.
func newGainProcessor() (Processor, error) {
	return newMonoAdapter("Gain", []float32{1},
		func(sampleRate float64, _ int) (channelKernel, error) {
			g, err := effects.NewGain(sampleRate)
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					_ = g.SetGain(core.Clamp(float64(v[0]), 0, 16))
				},
				process: g.ProcessInPlace,
				reset:   g.Reset,
			}, nil
		}), nil
}

// Delay: 0 time (linear 0-2 s), 1 feedback (direct), 2 mix (direct).
func newDelayProcessor() (Processor, error) {
	defaults := []float32{
		float32(param.NormalizeLinear(0.25, 0, 2)),
		0.35,
		0.25,
	}
	return newMonoAdapter("Delay", defaults,
		func(sampleRate float64, _ int) (channelKernel, error) {
			d, err := effects.NewDelay(sampleRate)
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					_ = d.SetTime(param.MapLinear(clamp01(v[0]), 0, 2))
					_ = d.SetFeedback(clamp01(v[1]))
					_ = d.SetMix(clamp01(v[2]))
				},
				process: d.ProcessInPlace,
				reset:   d.Reset,
			}, nil
		}), nil
}

// Chorus: 0 rate (linear 0.1-5 Hz), 1 depth, 2 center delay (linear
// 1-30 ms), 3 feedback (linear -0.9-0.9), 4 mix.
func newChorusProcessor() (Processor, error) {
	defaults := []float32{
		float32(param.NormalizeLinear(1.0, 0.1, 5)),
		0.25,
		float32(param.NormalizeLinear(7, 1, 30)),
		float32(param.NormalizeLinear(0, -0.9, 0.9)),
		0.5,
	}
	return newMonoAdapter("Chorus", defaults,
		func(sampleRate float64, _ int) (channelKernel, error) {
			c, err := effects.NewChorus(sampleRate)
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					_ = c.SetRateHz(param.MapLinear(clamp01(v[0]), 0.1, 5))
					_ = c.SetDepth(clamp01(v[1]))
					_ = c.SetCenterDelay(param.MapLinear(clamp01(v[2]), 1, 30) / 1000)
					_ = c.SetFeedback(param.MapLinear(clamp01(v[3]), -0.9, 0.9))
					_ = c.SetMix(clamp01(v[4]))
				},
				process: c.ProcessInPlace,
				reset:   c.Reset,
			}, nil
		}), nil
}

// Phaser: 0 rate (linear 0.1-10 Hz), 1 depth, 2 center frequency (log
// 100-5000 Hz), 3 feedback (linear -0.9-0.9), 4 mix.
func newPhaserProcessor() (Processor, error) {
	defaults := []float32{
		float32(param.NormalizeLinear(0.5, 0.1, 10)),
		0.5,
		float32(param.NormalizeLog(800, 100, 5000)),
		float32(param.NormalizeLinear(0.2, -0.9, 0.9)),
		0.5,
	}
	return newMonoAdapter("Phaser", defaults,
		func(sampleRate float64, _ int) (channelKernel, error) {
			p, err := effects.NewPhaser(sampleRate)
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					_ = p.SetRateHz(param.MapLinear(clamp01(v[0]), 0.1, 10))
					_ = p.SetDepth(clamp01(v[1]))
					_ = p.SetCenterFrequencyHz(param.MapLog(clamp01(v[2]), 100, 5000))
					_ = p.SetFeedback(param.MapLinear(clamp01(v[3]), -0.9, 0.9))
					_ = p.SetMix(clamp01(v[4]))
				},
				process: p.ProcessInPlace,
				reset:   p.Reset,
			}, nil
		}), nil
}

// Distortion: 0 drive (log 1-50), loudness-compensated by 1/sqrt(drive).
func newDistortionProcessor() (Processor, error) {
	return newMonoAdapter("Distortion", []float32{0},
		func(float64, int) (channelKernel, error) {
			d := effects.NewDistortion()
			return channelKernel{
				apply: func(v []float32) {
					_ = d.SetDrive(param.MapLog(clamp01(v[0]), 1, 50))
				},
				process: d.ProcessInPlace,
				reset:   d.Reset,
			}, nil
		}), nil
}

// Clipping: 0 threshold (linear 0.1-1.0), hard clamp to +-threshold.
func newClippingProcessor() (Processor, error) {
	return newMonoAdapter("Clipping", []float32{1},
		func(float64, int) (channelKernel, error) {
			c := effects.NewClipper()
			return channelKernel{
				apply: func(v []float32) {
					_ = c.SetThreshold(param.MapLinear(clamp01(v[0]), 0.1, 1))
				},
				process: c.ProcessInPlace,
				reset:   c.Reset,
			}, nil
		}), nil
}

// Compressor: 0 threshold (linear -60-0 dB), 1 ratio (linear 1-20),
// 2 attack (linear 1-200 ms), 3 release (linear 20-500 ms).
func newCompressorProcessor() (Processor, error) {
	defaults := []float32{
		float32(param.NormalizeLinear(-20, -60, 0)),
		float32(param.NormalizeLinear(4, 1, 20)),
		float32(param.NormalizeLinear(10, 1, 200)),
		float32(param.NormalizeLinear(100, 20, 500)),
	}
	return newMonoAdapter("Compressor", defaults,
		func(sampleRate float64, _ int) (channelKernel, error) {
			c, err := effects.NewCompressor(sampleRate)
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					_ = c.SetThreshold(param.MapLinear(clamp01(v[0]), -60, 0))
					_ = c.SetRatio(param.MapLinear(clamp01(v[1]), 1, 20))
					_ = c.SetAttack(param.MapLinear(clamp01(v[2]), 1, 200))
					_ = c.SetRelease(param.MapLinear(clamp01(v[3]), 20, 500))
				},
				process: c.ProcessInPlace,
				reset:   c.Reset,
			}, nil
		}), nil
}

// Limiter: 0 threshold (linear -20-0 dB), 1 release (linear 10-500 ms).
func newLimiterProcessor() (Processor, error) {
	defaults := []float32{
		1,
		float32(param.NormalizeLinear(100, 10, 500)),
	}
	return newMonoAdapter("Limiter", defaults,
		func(sampleRate float64, _ int) (channelKernel, error) {
			l, err := effects.NewLimiter(sampleRate)
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					_ = l.SetThreshold(param.MapLinear(clamp01(v[0]), -20, 0))
					_ = l.SetRelease(param.MapLinear(clamp01(v[1]), 10, 500))
				},
				process: l.ProcessInPlace,
				reset:   l.Reset,
			}, nil
		}), nil
}

func newLowPassProcessor() (Processor, error) {
	return newBiquadProcessor("LowPass", design.Lowpass)
}

func newHighPassProcessor() (Processor, error) {
	return newBiquadProcessor("HighPass", design.Highpass)
}

// LowPass/HighPass: 0 cutoff (log 20-20000 Hz), 1 Q (linear 0.1-10).
func newBiquadProcessor(name string,
	designFn func(cutoffHz, q, sampleRate float64) (biquad.Coefficients, error)) (Processor, error) {
	defaults := []float32{
		float32(param.NormalizeLog(1000, 20, 20000)),
		float32(param.NormalizeLinear(design.DefaultQ, 0.1, 10)),
	}
	return newMonoAdapter(name, defaults,
		func(sampleRate float64, _ int) (channelKernel, error) {
			section, err := biquad.New(biquad.Identity())
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					cutoff := param.MapLog(clamp01(v[0]), 20, 20000)
					q := param.MapLinear(clamp01(v[1]), 0.1, 10)
					coeffs, err := designFn(cutoff, q, sampleRate)
					if err == nil {
						_ = section.SetCoefficients(coeffs)
					}
				},
				process: section.ProcessBlock,
				reset:   section.Reset,
			}, nil
		}), nil
}

// LadderFilter: 0 cutoff (log 20-20000 Hz), 1 resonance (direct),
// 2 drive (linear 1-5).
func newLadderFilterProcessor() (Processor, error) {
	defaults := []float32{
		float32(param.NormalizeLog(1000, 20, 20000)),
		0,
		0,
	}
	return newMonoAdapter("LadderFilter", defaults,
		func(sampleRate float64, _ int) (channelKernel, error) {
			l, err := moog.New(sampleRate)
			if err != nil {
				return channelKernel{}, err
			}
			return channelKernel{
				apply: func(v []float32) {
					_ = l.SetCutoff(param.MapLog(clamp01(v[0]), 20, 20000))
					_ = l.SetResonance(clamp01(v[1]))
					_ = l.SetDrive(param.MapLinear(clamp01(v[2]), 1, 5))
				},
				process: l.ProcessInPlace,
				reset:   l.Reset,
			}, nil
		}), nil
}

// Bitcrush: 0 bit depth with an inverted mapping (0 keeps 32 bits, 1 crushes
// to 2 bits), 1 downsample factor (linear 1-50).
func newBitcrushProcessor() (Processor, error) {
	return newMonoAdapter("Bitcrush", []float32{0, 0},
		func(float64, int) (channelKernel, error) {
			bc := effects.NewBitCrusher()
			return channelKernel{
				apply: func(v []float32) {
					_ = bc.SetBitDepth(32 - 30*clamp01(v[0]))
					_ = bc.SetDownsample(int(math.Round(param.MapLinear(clamp01(v[1]), 1, 50))))
				},
				process: bc.ProcessInPlace,
				reset:   bc.Reset,
			}, nil
		}), nil
}
