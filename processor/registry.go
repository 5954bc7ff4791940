package processor

import (
	"errors"
	"fmt"
	"sort"
)

// Factory builds one fresh Processor instance.
type Factory func() (Processor, error)

// ErrUnknownEffect is returned when an effect name has no registered factory.
var ErrUnknownEffect = errors.New("unknown effect")

var errDuplicateEffect = errors.New("duplicate effect name")

// Registry maps case-sensitive effect names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("empty effect name")
	}
	if factory == nil {
		return errors.New("nil factory")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic("processor registry: " + err.Error())
	}
}

// New constructs a fresh processor for the given effect name.
func (r *Registry) New(name string) (Processor, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return factory()
}

// Names returns all registered effect names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = buildDefaultRegistry()

func buildDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("Gain", newGainProcessor)
	r.MustRegister("Delay", newDelayProcessor)
	r.MustRegister("Reverb", newReverbProcessor)
	r.MustRegister("Chorus", newChorusProcessor)
	r.MustRegister("Phaser", newPhaserProcessor)
	r.MustRegister("Distortion", newDistortionProcessor)
	r.MustRegister("Clipping", newClippingProcessor)
	r.MustRegister("Compressor", newCompressorProcessor)
	r.MustRegister("Limiter", newLimiterProcessor)
	r.MustRegister("LowPass", newLowPassProcessor)
	r.MustRegister("HighPass", newHighPassProcessor)
	r.MustRegister("LadderFilter", newLadderFilterProcessor)
	r.MustRegister("Bitcrush", newBitcrushProcessor)
	return r
}

// New constructs an effect from the default registry.
func New(name string) (Processor, error) {
	return defaultRegistry.New(name)
}

// Names lists the effects available in the default registry.
func Names() []string {
	return defaultRegistry.Names()
}
