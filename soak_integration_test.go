//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert_test

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/joho/godotenv"

	"github.com/suparena/invert"
	ierrors "github.com/suparena/invert/errors"
)

type soakSession struct {
	ID string
}

func soakConfig() (goroutines, ops int) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	goroutines = 16
	ops = 10000
	if v := os.Getenv("SOAK_GOROUTINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			goroutines = n
		}
	}
	if v := os.Getenv("SOAK_OPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ops = n
		}
	}
	return goroutines, ops
}

// TestContainerSoak hammers one container hierarchy from many goroutines,
// mixing binds, resolutions, factory creations and erasures. Run with
// -race; the test passes when nothing panics and the final state is
// consistent.
func TestContainerSoak(t *testing.T) {
	goroutines, ops := soakConfig()
	t.Logf("soak: %d goroutines x %d ops", goroutines, ops)

	root := invert.New()
	if err := invert.RegisterFactory[soakSession](root, func(id string) invert.Shared[soakSession] {
		return invert.NewShared(&soakSession{ID: id})
	}); err != nil {
		t.Fatalf("Failed to register factory: %v", err)
	}

	if err := invert.Create[invert.Container](root, "soak-child"); err != nil {
		t.Fatalf("Failed to create child: %v", err)
	}
	child, err := invert.GetPtr[invert.Container](root, "soak-child")
	if err != nil {
		t.Fatalf("Failed to resolve child: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			name := fmt.Sprintf("worker-%d", g)
			for i := 0; i < ops; i++ {
				switch i % 5 {
				case 0:
					invert.BindValue(child, name, i)
				case 1:
					if _, err := invert.Get[int](child, name); err != nil && !ierrors.IsNotFound(err) {
						t.Errorf("Unexpected resolution error: %v", err)
						return
					}
				case 2:
					s, err := invert.CreateSharedWithoutStoring[soakSession](child, name)
					if err != nil {
						t.Errorf("Failed to create session: %v", err)
						return
					}
					s.Release()
				case 3:
					// Stored at the root, the factory's owner; resolution
					// from the child exercises upward delegation.
					if err := invert.Create[soakSession](child, name, name); err != nil {
						t.Errorf("Failed to create session: %v", err)
						return
					}
					if s, err := invert.GetShared[soakSession](child, name); err == nil {
						s.Release()
					}
				case 4:
					invert.EraseInstance[int](child, name)
				}
			}
		}(g)
	}
	wg.Wait()

	snap := child.Snapshot()
	t.Logf("soak: final child state: %d instances, %d factories", snap.Instances, len(snap.Factories))

	if err := root.Close(); err != nil {
		t.Fatalf("Failed to close root: %v", err)
	}
	if root.Size(true) != 0 {
		t.Fatalf("Expected empty hierarchy after close, got %d", root.Size(true))
	}
}
