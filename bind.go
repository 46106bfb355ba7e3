/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"reflect"

	"github.com/suparena/invert/errors"
)

// BindValue copies v into a container-owned cell under (T, name). The copy
// lives until the slot is erased or rebound or the container is closed.
func BindValue[T any](c *Container, name string, v T) error {
	cell := new(T)
	*cell = v
	return c.bind(KeyOf[T](), name, newHolder(KeyOf[T](), cell, ownershipOwned))
}

// BindPtr stores p under (T, name) without taking ownership: the container
// never disposes the object, and the caller must keep it alive for as long
// as it can be retrieved.
func BindPtr[T any](c *Container, name string, p *T) error {
	if p == nil {
		return errors.NewValidationError("instance", "nil pointer")
	}
	return c.bind(KeyOf[T](), name, newHolder(KeyOf[T](), p, ownershipBorrowed))
}

// BindOwned transfers exclusive ownership of p to the container, converted
// to shared storage: the object is disposed when the last reference
// (container slot or handle obtained via GetShared) is released.
func BindOwned[T any](c *Container, name string, p *T) error {
	if p == nil {
		return errors.NewValidationError("instance", "nil pointer")
	}
	return c.bind(KeyOf[T](), name, newHolder(KeyOf[T](), p, ownershipOwned))
}

// BindShared stores the handle's object under (T, name), sharing ownership
// with the caller. The container takes its own reference; the object is
// disposed when the last holder anywhere releases.
func BindShared[T any](c *Container, name string, s Shared[T]) error {
	if s.h == nil {
		return errors.NewValidationError("instance", "zero shared handle")
	}
	s.h.retain()
	return c.bind(KeyOf[T](), name, s.h)
}

// BindAs stores v under interface type B's key while the object itself
// remains its concrete type. Lookups under B succeed; lookups under the
// concrete type at the same name do not (no dual registration). The
// container does not own the underlying object.
func BindAs[B any](c *Container, name string, v B) error {
	key := KeyOf[B]()
	if key.rtype.Kind() != reflect.Interface {
		return errors.NewValidationError("type", "BindAs requires an interface type; use BindValue or BindPtr")
	}
	if reflect.ValueOf(v).Kind() == reflect.Invalid {
		return errors.NewValidationError("instance", "nil value")
	}
	cell := new(B)
	*cell = v
	return c.bind(key, name, newHolder(key, cell, ownershipBorrowed))
}

// EraseInstance removes the (T, name) slot if present, releasing the
// container's reference; absent slots are a no-op. Factories are never
// erased.
func EraseInstance[T any](c *Container, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eraseLocked(KeyOf[T](), name)
}

func (c *Container) bind(key TypeKey, name string, h *holder) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storeLocked(key, name, h)
}
