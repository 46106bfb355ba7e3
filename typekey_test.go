/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"io"
	"testing"
)

func TestKeyOf(t *testing.T) {
	t.Run("Stability", func(t *testing.T) {
		if KeyOf[int]() != KeyOf[int]() {
			t.Fatal("Keys for the same type must be equal")
		}
		if KeyOf[widget]() != KeyOf[widget]() {
			t.Fatal("Keys for the same struct type must be equal")
		}
	})

	t.Run("DistinctTypes", func(t *testing.T) {
		if KeyOf[int]() == KeyOf[int32]() {
			t.Fatal("Distinct types must yield distinct keys")
		}
		if KeyOf[widget]() == KeyOf[*widget]() {
			t.Fatal("A type and its pointer type must yield distinct keys")
		}
	})

	t.Run("InterfaceTypes", func(t *testing.T) {
		k := KeyOf[io.Closer]()
		if k.rtype == nil {
			t.Fatal("Interface key must carry the interface type, not nil")
		}
		if k == KeyOf[*closable]() {
			t.Fatal("An interface and an implementation must yield distinct keys")
		}
	})

	t.Run("String", func(t *testing.T) {
		if got := KeyOf[int]().String(); got != "int" {
			t.Fatalf("Expected %q, got %q", "int", got)
		}
		if got := KeyOf[io.Closer]().String(); got != "io.Closer" {
			t.Fatalf("Expected %q, got %q", "io.Closer", got)
		}
		if got := (TypeKey{}).String(); got != "<nil>" {
			t.Fatalf("Expected %q, got %q", "<nil>", got)
		}
	})
}
