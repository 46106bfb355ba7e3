/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"io"
	"reflect"
	"sync/atomic"
)

// ownership is the release discipline of a holder. Only the release behavior
// differs across variants: owned and shared cells dispose their object when
// the last reference is dropped, borrowed cells never do.
type ownership int

const (
	ownershipOwned ownership = iota
	ownershipBorrowed
	ownershipShared
)

func (o ownership) String() string {
	switch o {
	case ownershipOwned:
		return "owned"
	case ownershipBorrowed:
		return "borrowed"
	case ownershipShared:
		return "shared"
	default:
		return "unknown"
	}
}

// Disposable is implemented by values that must be notified when the last
// reference held over them is released. The container guarantees exactly one
// Dispose call per stored cell, synchronously at the point the count reaches
// zero. Values implementing io.Closer instead are closed the same way.
//
// Dispose runs while the releasing container's lock is held; it must not
// call back into that container.
type Disposable interface {
	Dispose()
}

// holder is the type-erased ownership cell for one stored object. The cell
// is always a *V where V is the type the recorded key was produced from;
// the key enables a defensive check at retrieval.
type holder struct {
	key  TypeKey
	cell any
	own  ownership
	refs int32
}

func newHolder(key TypeKey, cell any, own ownership) *holder {
	return &holder{key: key, cell: cell, own: own, refs: 1}
}

func (h *holder) retain() {
	atomic.AddInt32(&h.refs, 1)
}

// release drops one reference. When the count reaches zero the held object
// is disposed exactly once; borrowed cells are never disposed.
func (h *holder) release() error {
	if atomic.AddInt32(&h.refs, -1) != 0 {
		return nil
	}
	if h.own == ownershipBorrowed {
		return nil
	}
	return disposeValue(h.cell)
}

func (h *holder) refCount() int {
	return int(atomic.LoadInt32(&h.refs))
}

// disposeValue probes cell for a release hook. The cell itself is checked
// first; an interface-typed cell is then unwrapped once so the hook on the
// concrete object behind it is still found.
func disposeValue(cell any) error {
	switch v := cell.(type) {
	case Disposable:
		v.Dispose()
		return nil
	case io.Closer:
		return v.Close()
	}

	rv := reflect.ValueOf(cell)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().CanInterface() {
		switch v := rv.Elem().Interface().(type) {
		case Disposable:
			v.Dispose()
			return nil
		case io.Closer:
			return v.Close()
		}
	}
	return nil
}

// Shared is a counted handle over one stored object. Every handle obtained
// as a shared view of the same slot observes the same underlying object and
// the same reference count.
type Shared[T any] struct {
	h *holder
}

// NewShared wraps v in a fresh shared cell with a count of one. The caller
// owns that reference and releases it with Release.
func NewShared[T any](v *T) Shared[T] {
	return Shared[T]{h: newHolder(KeyOf[T](), v, ownershipShared)}
}

// Get returns the shared object. It returns nil for the zero handle.
func (s Shared[T]) Get() *T {
	if s.h == nil {
		return nil
	}
	return s.h.cell.(*T)
}

// Clone returns a new handle over the same object, incrementing the count.
func (s Shared[T]) Clone() Shared[T] {
	if s.h != nil {
		s.h.retain()
	}
	return s
}

// Release drops this handle's reference. The object is disposed when the
// last reference anywhere (container or external) is released.
func (s Shared[T]) Release() error {
	if s.h == nil {
		return nil
	}
	return s.h.release()
}

// Refs reports the current reference count. Like every concurrent counter
// it is a snapshot, not a guarantee.
func (s Shared[T]) Refs() int {
	if s.h == nil {
		return 0
	}
	return s.h.refCount()
}
