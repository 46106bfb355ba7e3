/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"github.com/suparena/invert/errors"
)

// Get returns a copy of the object stored under (T, name), resolving
// through the factory-fallback and parent-delegation machinery described
// on resolve.
func Get[T any](c *Container, name string) (T, error) {
	h, err := resolve[T](c, name, false)
	if err != nil {
		var zero T
		return zero, err
	}
	return *h.cell.(*T), nil
}

// GetPtr returns a pointer aliasing the stored object. The pointee is
// container-owned storage (or the caller's own object for borrowed binds);
// do not assume it outlives the slot.
func GetPtr[T any](c *Container, name string) (*T, error) {
	h, err := resolve[T](c, name, false)
	if err != nil {
		return nil, err
	}
	return h.cell.(*T), nil
}

// GetShared returns a new counted handle over the stored object. The slot
// and every handle observe the same object and the same count; the object
// outlives the slot for as long as any handle is held.
func GetShared[T any](c *Container, name string) (Shared[T], error) {
	h, err := resolve[T](c, name, true)
	if err != nil {
		return Shared[T]{}, err
	}
	return Shared[T]{h: h}, nil
}

// Contains reports whether an instance or a factory for T exists at this
// container only. Unlike Get it never invokes a factory and never consults
// the parent: it answers "can this container resolve the slot right here",
// not "can it eventually be resolved".
func Contains[T any](c *Container, name string) bool {
	key := KeyOf[T]()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lookupLocked(key, name); ok {
		return true
	}
	_, ok := c.factories[key]
	return ok
}

// resolve drives the lookup state machine for one (T, name) request:
//
//  1. search this container's instance registry;
//  2. on a miss, invoke a local factory for T if one is registered (the
//     product is stored as a side effect) and retry the lookup exactly
//     once — never more;
//  3. still absent, delegate the whole procedure to the parent, which
//     locks independently;
//  4. at a root with no instance and no factory, fail with NotFound.
//
// Factory errors, including argument-shape mismatches against the
// zero-argument fallback invocation, are reported verbatim.
func resolve[T any](c *Container, name string, retain bool) (*holder, error) {
	key := KeyOf[T]()

	c.mu.Lock()
	h, ok := c.lookupLocked(key, name)
	if !ok {
		if entry, exists := c.factories[key]; exists {
			if err := c.createLocked(entry, key, name, nil); err != nil {
				c.mu.Unlock()
				return nil, err
			}
			h, ok = c.lookupLocked(key, name)
		}
	}
	if ok {
		if h.key != key {
			c.mu.Unlock()
			return nil, errors.NewTypeMismatchError(key.String(), h.key.String())
		}
		if retain {
			h.retain()
		}
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	if c.parent != nil {
		return resolve[T](c.parent, name, retain)
	}
	return nil, errors.NewNotFoundError(key.String(), name)
}
