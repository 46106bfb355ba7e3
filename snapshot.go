/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invert

import (
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// ContainerSnapshot is a read-only description of a container's contents,
// for debugging and operational introspection. Stored values themselves are
// never serialized, only their slot metadata.
type ContainerSnapshot struct {
	Instances int                `yaml:"instances"`
	Types     []TypeSnapshot     `yaml:"types,omitempty"`
	Factories []FactorySnapshot  `yaml:"factories,omitempty"`
}

// TypeSnapshot lists the named slots stored under one type key.
type TypeSnapshot struct {
	Type  string         `yaml:"type"`
	Slots []SlotSnapshot `yaml:"slots"`
}

// SlotSnapshot describes one (type, name) slot.
type SlotSnapshot struct {
	Name      string `yaml:"name"`
	Ownership string `yaml:"ownership"`
	Refs      int    `yaml:"refs"`
}

// FactorySnapshot describes one registered factory.
type FactorySnapshot struct {
	Type string `yaml:"type"`
	Kind string `yaml:"kind"`
	Args string `yaml:"args,omitempty"`
}

// Snapshot captures the container's current instances and factories. The
// capture is consistent for this container (taken under its lock) but does
// not descend into children.
func (c *Container) Snapshot() ContainerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := ContainerSnapshot{}
	for key, bucket := range c.instances {
		ts := TypeSnapshot{Type: key.String()}
		for name, h := range bucket {
			ts.Slots = append(ts.Slots, SlotSnapshot{
				Name:      name,
				Ownership: h.own.String(),
				Refs:      h.refCount(),
			})
		}
		sort.Slice(ts.Slots, func(i, j int) bool { return ts.Slots[i].Name < ts.Slots[j].Name })
		snap.Instances += len(ts.Slots)
		snap.Types = append(snap.Types, ts)
	}
	sort.Slice(snap.Types, func(i, j int) bool { return snap.Types[i].Type < snap.Types[j].Type })

	for key, entry := range c.factories {
		snap.Factories = append(snap.Factories, FactorySnapshot{
			Type: key.String(),
			Kind: entry.kind.String(),
			Args: argShape(entry.args),
		})
	}
	sort.Slice(snap.Factories, func(i, j int) bool { return snap.Factories[i].Type < snap.Factories[j].Type })

	return snap
}

// DumpYAML writes the snapshot to w as YAML.
func (c *Container) DumpYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(c.Snapshot()); err != nil {
		return err
	}
	return enc.Close()
}
