package processor

import (
	"errors"
	"fmt"
)

// ErrPluginLoad marks failures while loading an external processor.
var ErrPluginLoad = errors.New("external processor load failed")

// PluginHost is the collaborator that scans and instantiates externally
// compiled effect modules. Implementations return handles satisfying the
// same Processor contract as built-in effects.
type PluginHost interface {
	Load(path string) (Processor, error)
}

// LoadExternal asks the host to load the processor at path. A missing host
// or failed load yields an error wrapping ErrPluginLoad, never a silently
// substituted default.
func LoadExternal(path string, host PluginHost) (Processor, error) {
	if host == nil {
		return nil, fmt.Errorf("%w: no plugin host configured", ErrPluginLoad)
	}
	p, err := host.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPluginLoad, path, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %q: host returned no processor", ErrPluginLoad, path)
	}
	return p, nil
}
