/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSnapshot(t *testing.T) {
	c := New()

	BindValue(c, "port", 9999)
	BindValue(c, "host", "127.0.0.1")
	w := &widget{}
	BindPtr(c, "", w)
	RegisterFactory[point](c, func(x, y int) *point { return &point{x: x, y: y} })

	snap := c.Snapshot()

	if snap.Instances != 3 {
		t.Fatalf("Expected 3 instances, got %d", snap.Instances)
	}

	byType := make(map[string]TypeSnapshot)
	for _, ts := range snap.Types {
		byType[ts.Type] = ts
	}
	ints, ok := byType["int"]
	if !ok || len(ints.Slots) != 1 || ints.Slots[0].Name != "port" {
		t.Fatalf("Unexpected int snapshot: %+v", ints)
	}
	if ints.Slots[0].Ownership != "owned" {
		t.Fatalf("Expected owned int slot, got %q", ints.Slots[0].Ownership)
	}
	widgets, ok := byType["invert.widget"]
	if !ok || widgets.Slots[0].Ownership != "borrowed" {
		t.Fatalf("Unexpected widget snapshot: %+v", widgets)
	}

	var pointFactory *FactorySnapshot
	for i := range snap.Factories {
		if snap.Factories[i].Type == "invert.point" {
			pointFactory = &snap.Factories[i]
		}
	}
	if pointFactory == nil {
		t.Fatal("Expected the point factory in the snapshot")
	}
	if pointFactory.Kind != "unique" || pointFactory.Args != "int, int" {
		t.Fatalf("Unexpected factory snapshot: %+v", pointFactory)
	}
}

func TestDumpYAML(t *testing.T) {
	c := New()
	BindValue(c, "port", 9999)

	var buf bytes.Buffer
	if err := c.DumpYAML(&buf); err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "instances: 1") {
		t.Fatalf("Expected instance count in output:\n%s", out)
	}
	if !strings.Contains(out, "name: port") {
		t.Fatalf("Expected slot name in output:\n%s", out)
	}

	// The dump round-trips as YAML
	var snap ContainerSnapshot
	if err := yaml.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("Failed to parse dump: %v", err)
	}
	if snap.Instances != 1 {
		t.Fatalf("Expected 1 instance after round trip, got %d", snap.Instances)
	}
}
