package registry

import (
	"fmt"
	"sync"
)

// RegistryValidator is a function that validates a named value before registration
type RegistryValidator[V any] func(name string, value V, existing []V) error

// OrderedRegistry is a thread-safe registry of named values that remembers
// registration order. Lookups by name and in-order iteration are both supported.
type OrderedRegistry[V any] struct {
	mu           sync.RWMutex
	names        []string
	items        map[string]V
	validator    RegistryValidator[V]
	registryName string
}

// NewOrderedRegistry creates an empty registry
func NewOrderedRegistry[V any](registryName string) *OrderedRegistry[V] {
	return &OrderedRegistry[V]{
		items:        make(map[string]V),
		registryName: registryName,
	}
}

// SetValidator sets the validation function for this registry
func (r *OrderedRegistry[V]) SetValidator(validator RegistryValidator[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = validator
}

// Register appends a value; names must be unique
func (r *OrderedRegistry[V]) Register(name string, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return fmt.Errorf("%s registry: '%s' is already registered", r.registryName, name)
	}
	if r.validator != nil {
		if err := r.validator(name, value, r.valuesLocked()); err != nil {
			return fmt.Errorf("%s registry: %w", r.registryName, err)
		}
	}

	r.names = append(r.names, name)
	r.items[name] = value
	return nil
}

// Get retrieves a value by name
func (r *OrderedRegistry[V]) Get(name string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[name]
	return value, exists
}

// Has checks if a name is registered
func (r *OrderedRegistry[V]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

// Names returns all names in registration order
func (r *OrderedRegistry[V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Values returns all values in registration order
func (r *OrderedRegistry[V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.valuesLocked()
}

// Size returns the number of registered values
func (r *OrderedRegistry[V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.names)
}

func (r *OrderedRegistry[V]) valuesLocked() []V {
	values := make([]V, 0, len(r.names))
	for _, name := range r.names {
		values = append(values, r.items[name])
	}
	return values
}
