// Package effects contains mono float64 effect kernels: gain, delay,
// distortion, clipping, bit crushing, reverb, chorus, phaser, compression
// and limiting.
//
// Kernels are single-channel and not thread-safe. Multichannel processing
// instantiates one kernel per channel. Parameter setters validate their
// inputs and return errors; the per-sample processing path is infallible.
package effects
