package decoder

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Constructor builds an Engine from a pass-through configuration.
type Constructor func(cfg Config) (Engine, error)

// registry maps engine names to constructors. Bindings register themselves
// from init functions; the first registration becomes the default.
var (
	registryMu  sync.RWMutex
	registry    = make(map[string]Constructor)
	defaultName string
)

// Register makes an engine constructor available under the given name.
// The first registered engine becomes the default used by Open("").
// Registering the same name twice panics, matching the behavior of
// database/sql-style driver registries.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if ctor == nil {
		panic("decoder: Register with nil constructor")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("decoder: Register called twice for engine %q", name))
	}
	registry[name] = ctor
	if defaultName == "" {
		defaultName = name
	}

	logrus.WithFields(logrus.Fields{
		"function": "Register",
		"engine":   name,
	}).Debug("Decoding engine registered")
}

// Open constructs the named engine, or the default engine when name is
// empty. It returns ErrNoEngine when nothing has been registered and
// ErrUnknownEngine for an unrecognized name.
func Open(name string, cfg Config) (Engine, error) {
	registryMu.RLock()
	if name == "" {
		name = defaultName
	}
	ctor, ok := registry[name]
	registryMu.RUnlock()

	if name == "" {
		return nil, ErrNoEngine
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}

	engine, err := ctor(cfg)
	if err != nil {
		return nil, fmt.Errorf("open engine %q: %w", name, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Open",
		"engine":     name,
		"check_hash": cfg.CheckHash,
		"max_tid":    cfg.MaxTemporalID,
	}).Info("Decoding engine opened")

	return engine, nil
}

// Engines returns the names of all registered engines. Intended for help
// output and diagnostics.
func Engines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
