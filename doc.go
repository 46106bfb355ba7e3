/*
Package invert provides a runtime object registry (an inversion-of-control
container): a thread-safe heterogeneous store keyed by (type, name) with
lazily invoked factories and hierarchical delegation across nested scopes.

Key Features:
  - Type-safe binding and retrieval using Go generics
  - Several ownership disciplines per slot (owned copy, borrowed pointer,
    exclusive transfer, shared handle)
  - Factory registration with argument-shape checking and memoized products
  - Nested child containers with upward lookup delegation
  - Semantic error types for better error handling
  - Thread-safe concurrent access with per-container locking

Basic Usage:

	// Create a container and bind some values
	c := invert.New()
	invert.BindValue(c, "port", 9999)
	invert.BindPtr(c, "conn", &conn)

	// Register a factory; products are stored on first retrieval
	invert.RegisterFactory[Widget](c, func() *Widget { return &Widget{} })
	w, err := invert.GetPtr[Widget](c, "primary")

	// Nested scopes are containers manufactured by the built-in factory
	sub, err := invert.GetPtr[invert.Container](c, "subsystem")
	invert.BindValue(sub, "ip", "127.0.0.1")

A value bound in a parent is visible from its children; the reverse never
holds. Contains answers for one container only, without consulting the
parent or invoking factories.

For more information, see the documentation at https://github.com/suparena/invert
*/
package invert
