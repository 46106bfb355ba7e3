/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"sync"

	"go.uber.org/multierr"
)

// Container is a scoped registry of named, typed instances and factories,
// optionally chained to a parent for delegated lookup.
//
// A Container may be shared by any number of goroutines. Every operation
// acquires the container's own lock for its duration; parent delegation
// crosses into the parent's independent lock, so no single lock ever spans
// a hierarchy.
//
// The parent back-reference is non-owning: the caller must guarantee the
// parent outlives its children.
type Container struct {
	mu        sync.Mutex
	parent    *Container
	instances map[TypeKey]map[string]*holder
	factories map[TypeKey]*factoryEntry
}

// New creates an empty root container. Every container pre-registers a
// factory that manufactures child containers parented to the container the
// creation was requested on, so nested scopes are obtained through the same
// generic API as any other type:
//
//	sub, err := invert.GetPtr[invert.Container](c, "subsystem")
func New() *Container {
	c := &Container{
		instances: make(map[TypeKey]map[string]*holder),
		factories: make(map[TypeKey]*factoryEntry),
	}
	c.registerChildFactory()
	return c
}

// Parent returns the container this one delegates to, or nil at a root.
func (c *Container) Parent() *Container {
	return c.parent
}

// Size returns the number of instances (never factories) directly owned by
// this container. With recursive, it additionally sums the sizes of every
// child container held in this container's Container-typed bucket.
//
// The recursive count is a best-effort snapshot: each container locks only
// itself while counting, so concurrent mutation elsewhere in the tree may
// transiently over- or under-count.
func (c *Container) Size(recursive bool) int {
	c.mu.Lock()
	n := 0
	for _, bucket := range c.instances {
		n += len(bucket)
	}
	var children []*Container
	if recursive {
		for _, h := range c.instances[KeyOf[Container]()] {
			children = append(children, h.cell.(*Container))
		}
	}
	c.mu.Unlock()

	for _, child := range children {
		n += child.Size(true)
	}
	return n
}

// Close releases every holder owned by the container and clears both
// registries. Owned objects are disposed as their last reference drops;
// child containers close recursively. Dispose errors are aggregated.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for key, bucket := range c.instances {
		for name, h := range bucket {
			err = multierr.Append(err, h.release())
			delete(bucket, name)
		}
		delete(c.instances, key)
	}
	c.factories = make(map[TypeKey]*factoryEntry)
	return err
}

// lookupLocked finds the holder for a slot in this container only.
func (c *Container) lookupLocked(key TypeKey, name string) (*holder, bool) {
	bucket, ok := c.instances[key]
	if !ok {
		return nil, false
	}
	h, ok := bucket[name]
	return h, ok
}

// storeLocked replaces the slot's holder. The prior holder, if any, is
// released as part of the replacement; if the container held its last
// reference the prior object is disposed here, synchronously.
func (c *Container) storeLocked(key TypeKey, name string, h *holder) error {
	bucket, ok := c.instances[key]
	if !ok {
		bucket = make(map[string]*holder)
		c.instances[key] = bucket
	}
	var err error
	if prev, exists := bucket[name]; exists {
		err = prev.release()
	}
	bucket[name] = h
	return err
}

// eraseLocked removes a slot if present and prunes the now-empty type
// bucket so no empty buckets persist.
func (c *Container) eraseLocked(key TypeKey, name string) error {
	bucket, ok := c.instances[key]
	if !ok {
		return nil
	}
	h, ok := bucket[name]
	if !ok {
		return nil
	}
	delete(bucket, name)
	if len(bucket) == 0 {
		delete(c.instances, key)
	}
	return h.release()
}
