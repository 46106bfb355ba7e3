/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"reflect"
)

// TypeKey is the runtime type identity used to partition container storage.
// Two expressions of the same Go type always yield equal keys. An interface
// type and a concrete type implementing it yield different keys; binding a
// value under an interface key is an explicit choice made at bind time.
type TypeKey struct {
	rtype reflect.Type
}

// KeyOf returns the TypeKey for type T. It is pure and referentially stable
// within one process: reflect.Type values are canonicalized by the runtime,
// so keys compare equal across separately compiled packages.
func KeyOf[T any]() TypeKey {
	return TypeKey{rtype: typeFor[T]()}
}

// String returns the package-qualified type name, for error messages and
// snapshots.
func (k TypeKey) String() string {
	if k.rtype == nil {
		return "<nil>"
	}
	return k.rtype.String()
}

// typeFor resolves the reflect.Type of T. The pointer-elem form is required
// so that interface types resolve to the interface itself rather than nil.
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
