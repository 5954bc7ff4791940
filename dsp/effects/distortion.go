package effects

import (
	"fmt"
	"math"
)

const (
	defaultDistortionDrive = 1.0
	minDistortionDrive     = 1.0
	maxDistortionDrive     = 50.0
)

// Distortion is a tanh waveshaper bracketed by an input drive gain and a
// compensating output gain of 1/sqrt(drive), keeping loudness roughly
// constant across drive settings.
type Distortion struct {
	drive        float64
	compensation float64
}

// NewDistortion creates a distortion kernel at unity drive.
func NewDistortion() *Distortion {
	d := &Distortion{}
	_ = d.SetDrive(defaultDistortionDrive)
	return d
}

// SetDrive sets input drive in [1, 50].
func (d *Distortion) SetDrive(drive float64) error {
	if drive < minDistortionDrive || drive > maxDistortionDrive ||
		math.IsNaN(drive) || math.IsInf(drive, 0) {
		return fmt.Errorf("distortion drive must be in [%g, %g]: %f",
			minDistortionDrive, maxDistortionDrive, drive)
	}
	d.drive = drive
	d.compensation = 1 / math.Sqrt(drive)
	return nil
}

// Drive returns input drive.
func (d *Distortion) Drive() float64 { return d.drive }

// Reset is a no-op; the waveshaper is stateless.
func (d *Distortion) Reset() {}

// ProcessSample processes one sample.
func (d *Distortion) ProcessSample(input float64) float64 {
	return math.Tanh(input*d.drive) * d.compensation
}

// ProcessInPlace applies distortion to buf in place.
func (d *Distortion) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}
