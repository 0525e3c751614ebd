package types

// EntityID identifies a live entity within a registry. Ids are drawn from a
// monotonically increasing counter and are never reused.
type EntityID uint64

// ComponentID identifies a registered component type within a registry.
// Component, system and entity ids live in three independent id spaces.
type ComponentID uint32

// SystemID identifies a registered system type within a registry.
type SystemID uint32
