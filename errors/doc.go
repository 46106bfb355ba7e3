/*
Package errors provides semantic error types for the invert library.

The package defines the resolution failure taxonomy with specific types that
can be checked using the standard errors.Is() function or the provided helper
functions.

Common Errors:

	var (
	    ErrNotFound          = errors.New("instance not found")
	    ErrTypeMismatch      = errors.New("stored type does not match requested type")
	    ErrSignatureMismatch = errors.New("factory signature mismatch")
	    ErrInvalidInput      = errors.New("invalid input")
	)

Usage:

	// Check error type
	cfg, err := invert.Get[Config](c, "main")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Nothing bound and no factory anywhere on the delegation chain
	        return nil, fmt.Errorf("config %q is not registered", "main")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("invert.Container", "child")
	err := errors.NewSignatureMismatchError("main.Widget", "", "int, int")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
