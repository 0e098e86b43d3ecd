// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"slices"
	"sync"
)

// Factory creates a new provider instance.
type Factory func() Provider

var (
	registryMu sync.RWMutex
	providers  = make(map[string]Factory)
	// Priority order for Default (first available wins).
	priority = []string{Desktop, WebGL, Recorder}
)

// Register registers a provider factory under name, replacing any previous
// registration. Typically called from init().
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[name] = factory
}

// Unregister removes a provider. Useful in tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(providers, name)
}

// Available returns the registered provider names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := providers[name]
	return ok
}

// Get returns a new provider by name, or nil if it is not registered.
func Get(name string) Provider {
	registryMu.RLock()
	factory, ok := providers[name]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available provider by priority, falling back to
// any registered provider. Returns nil when none is registered.
func Default() Provider {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := providers[name]; ok {
			if p := factory(); p != nil {
				return p
			}
		}
	}
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if p := providers[name](); p != nil {
			return p
		}
	}
	return nil
}

// Lookup returns the provider called name, or Default when name is empty.
func Lookup(name string) (Provider, error) {
	var p Provider
	if name == "" {
		p = Default()
	} else {
		p = Get(name)
	}
	if p == nil {
		if name == "" {
			name = "default"
		}
		return nil, &lookupError{name: name}
	}
	return p, nil
}

type lookupError struct{ name string }

func (e *lookupError) Error() string { return "backend: " + e.name + " not available" }

func (e *lookupError) Unwrap() error { return ErrNotAvailable }
