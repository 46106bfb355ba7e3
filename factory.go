/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"reflect"
	"strings"

	"github.com/suparena/invert/errors"
)

// factoryKind distinguishes factories by the ownership of their product:
// a unique factory manufactures an exclusively owned object per call, a
// shared factory returns a counted handle (for example when the factory
// keeps its own cache of products).
type factoryKind int

const (
	factoryUnique factoryKind = iota
	factoryShared
)

func (k factoryKind) String() string {
	if k == factoryShared {
		return "shared"
	}
	return "unique"
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// sharedHandle lets the engine reach the holder inside a Shared[T] returned
// through reflection, where the type parameter is not known statically.
type sharedHandle interface {
	sharedHolder() *holder
}

func (s Shared[T]) sharedHolder() *holder { return s.h }

// factoryEntry is one registered factory. The reflected parameter list is
// part of the factory's identity: invoking with a different argument shape
// is a signature mismatch, never a silent miscreation.
type factoryEntry struct {
	kind    factoryKind
	fn      reflect.Value
	args    []reflect.Type
	hasErr  bool
	product TypeKey
}

// RegisterFactory registers fn as the factory for type T, replacing any
// prior registration (registrations are not additive). fn must be a
// non-variadic func returning *T (unique product) or Shared[T] (shared
// product), optionally with a trailing error. Its parameters become the
// factory's argument shape, checked on every invocation.
//
// Factories run synchronously under the lock of the container the creation
// was requested on; a factory must not call back into that container.
// Parent or sibling containers are safe to use, each locks independently.
func RegisterFactory[T any](c *Container, fn any) error {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return errors.NewValidationError("factory", "must be a non-nil function")
	}
	ft := rv.Type()
	if ft.IsVariadic() {
		return errors.NewValidationError("factory", "variadic factories are not supported")
	}

	var kind factoryKind
	switch ft.NumOut() {
	case 1, 2:
		switch ft.Out(0) {
		case reflect.TypeOf((*T)(nil)):
			kind = factoryUnique
		case reflect.TypeOf(Shared[T]{}):
			kind = factoryShared
		default:
			return errors.NewValidationError("factory",
				"must return *"+typeFor[T]().String()+" or a shared handle to it")
		}
		if ft.NumOut() == 2 && ft.Out(1) != errType {
			return errors.NewValidationError("factory", "second return value must be error")
		}
	default:
		return errors.NewValidationError("factory", "must return the product and an optional error")
	}

	args := make([]reflect.Type, ft.NumIn())
	for i := range args {
		args[i] = ft.In(i)
	}

	key := KeyOf[T]()
	entry := &factoryEntry{
		kind:    kind,
		fn:      rv,
		args:    args,
		hasErr:  ft.NumOut() == 2,
		product: key,
	}

	c.mu.Lock()
	c.factories[key] = entry
	c.mu.Unlock()
	return nil
}

// RegisterDefaultFactory registers a zero-argument factory performing
// ordinary construction of T.
func RegisterDefaultFactory[T any](c *Container) error {
	return RegisterFactory[T](c, func() *T { return new(T) })
}

// RegisterDefaultFactoryAs registers a zero-argument factory for T whose
// products are ordinarily constructed C values upcast to T. T is usually an
// interface implemented by *C or C.
func RegisterDefaultFactoryAs[T any, C any](c *Container) error {
	tt := typeFor[T]()
	ct := typeFor[C]()

	var construct func() reflect.Value
	switch {
	case reflect.PointerTo(ct).AssignableTo(tt):
		construct = func() reflect.Value { return reflect.ValueOf(new(C)) }
	case ct.AssignableTo(tt):
		construct = func() reflect.Value { return reflect.New(ct).Elem() }
	default:
		return errors.NewTypeMismatchError(tt.String(), ct.String())
	}

	return RegisterFactory[T](c, func() *T {
		cell := new(T)
		reflect.ValueOf(cell).Elem().Set(construct())
		return cell
	})
}

// registerChildFactory installs the built-in factory manufacturing child
// containers parented to c. Runs during construction, before c is shared.
func (c *Container) registerChildFactory() {
	fn := func() *Container {
		child := New()
		child.parent = c
		return child
	}
	key := KeyOf[Container]()
	c.factories[key] = &factoryEntry{
		kind:    factoryUnique,
		fn:      reflect.ValueOf(fn),
		product: key,
	}
}

// Create invokes the factory registered for T with the given arguments and
// stores the product under name, unconditionally overwriting any prior
// entry in that slot. With no local factory the call delegates to the
// parent, and the product is stored in the container owning the factory.
// A failed invocation stores nothing.
func Create[T any](c *Container, name string, args ...any) error {
	key := KeyOf[T]()

	c.mu.Lock()
	entry, ok := c.factories[key]
	if !ok {
		c.mu.Unlock()
		if c.parent != nil {
			return Create[T](c.parent, name, args...)
		}
		return errors.NewNotFoundError(key.String(), name)
	}
	err := c.createLocked(entry, key, name, args)
	c.mu.Unlock()
	return err
}

// CreateWithoutStoring invokes the unique factory registered for T and
// returns the product without touching the instance registry, so one
// factory can manufacture any number of independent instances. Delegates
// to the parent when no local factory exists.
func CreateWithoutStoring[T any](c *Container, args ...any) (*T, error) {
	key := KeyOf[T]()

	c.mu.Lock()
	entry, ok := c.factories[key]
	if !ok {
		c.mu.Unlock()
		if c.parent != nil {
			return CreateWithoutStoring[T](c.parent, args...)
		}
		return nil, errors.NewNotFoundError(key.String(), "")
	}
	defer c.mu.Unlock()

	if entry.kind != factoryUnique {
		return nil, errors.NewSignatureMismatchError(key.String(), "unique factory", "shared factory")
	}
	h, err := entry.produce(args)
	if err != nil {
		return nil, err
	}
	return h.cell.(*T), nil
}

// CreateSharedWithoutStoring is the shared-factory counterpart of
// CreateWithoutStoring: the returned handle is the caller's reference.
func CreateSharedWithoutStoring[T any](c *Container, args ...any) (Shared[T], error) {
	key := KeyOf[T]()

	c.mu.Lock()
	entry, ok := c.factories[key]
	if !ok {
		c.mu.Unlock()
		if c.parent != nil {
			return CreateSharedWithoutStoring[T](c.parent, args...)
		}
		return Shared[T]{}, errors.NewNotFoundError(key.String(), "")
	}
	defer c.mu.Unlock()

	if entry.kind != factoryShared {
		return Shared[T]{}, errors.NewSignatureMismatchError(key.String(), "shared factory", "unique factory")
	}
	h, err := entry.produce(args)
	if err != nil {
		return Shared[T]{}, err
	}
	return Shared[T]{h: h}, nil
}

// createLocked invokes entry and stores its product. Caller holds c.mu;
// nothing here re-acquires it.
func (c *Container) createLocked(entry *factoryEntry, key TypeKey, name string, args []any) error {
	h, err := entry.produce(args)
	if err != nil {
		return err
	}
	return c.storeLocked(key, name, h)
}

// produce invokes the factory and wraps its product in a holder carrying
// one reference, which the caller takes over. For shared factories the
// returned handle's own reference is the one transferred; a factory that
// keeps a product must Clone before returning.
func (e *factoryEntry) produce(args []any) (*holder, error) {
	if len(args) != len(e.args) {
		return nil, e.signatureMismatch(args)
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		want := e.args[i]
		if a == nil {
			if !nilable(want.Kind()) {
				return nil, e.signatureMismatch(args)
			}
			in[i] = reflect.Zero(want)
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(want) {
			return nil, e.signatureMismatch(args)
		}
		in[i] = av
	}

	out := e.fn.Call(in)
	if e.hasErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	if e.kind == factoryShared {
		h := out[0].Interface().(sharedHandle).sharedHolder()
		if h == nil {
			return nil, errors.NewValidationError("factory", "returned a zero shared handle")
		}
		return h, nil
	}

	if out[0].IsNil() {
		return nil, errors.NewValidationError("factory", "returned a nil product")
	}
	return newHolder(e.product, out[0].Interface(), ownershipOwned), nil
}

func (e *factoryEntry) signatureMismatch(args []any) error {
	got := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			got[i] = "nil"
			continue
		}
		got[i] = reflect.TypeOf(a).String()
	}
	return errors.NewSignatureMismatchError(e.product.String(), argShape(e.args), strings.Join(got, ", "))
}

func argShape(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}
