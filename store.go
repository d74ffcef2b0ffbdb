package handle

import (
	"pkg.world.dev/world-engine/handle/types"
)

// Reader is the read-only half of the store contract a handle consumes.
// Component-typed arguments are passed as values of the user's component
// struct; the store resolves the registered metadata from Component.Name.
//
// Reference implementation: gamestate.EntityStore.
type Reader interface {
	// Valid reports whether the identifier currently denotes a live entity.
	Valid(id types.EntityID) (bool, error)
	// Orphan reports whether the entity has zero components attached.
	Orphan(id types.EntityID) (bool, error)
	// HasComponent reports whether the entity has the given component type.
	HasComponent(comp types.Component, id types.EntityID) (bool, error)
	// GetComponentForEntity returns the stored component value for the entity.
	GetComponentForEntity(comp types.Component, id types.EntityID) (any, error)
	// GetComponentTypesForEntity returns the metadata of every component
	// attached to the entity, in the store's enumeration order.
	GetComponentTypesForEntity(id types.EntityID) ([]types.ComponentMetadata, error)
}

// Writer is the mutating half of the store contract.
type Writer interface {
	// EmplaceComponent attaches comp to the entity. The entity must not
	// already have a component of this type.
	EmplaceComponent(comp types.Component, id types.EntityID) error
	// EmplaceOrReplaceComponent attaches comp, overwriting any existing
	// component of this type.
	EmplaceOrReplaceComponent(comp types.Component, id types.EntityID) error
	// ReplaceComponent overwrites the entity's existing component of this
	// type. The entity must already have one.
	ReplaceComponent(comp types.Component, id types.EntityID) error
	// RemoveComponent detaches the component type from the entity. The
	// entity must have it.
	RemoveComponent(comp types.Component, id types.EntityID) error
	// RemoveComponentIfExists detaches the component type if present and
	// reports whether it did.
	RemoveComponentIfExists(comp types.Component, id types.EntityID) (bool, error)
	// RemoveAllComponents detaches every component from the entity, leaving
	// it an orphan.
	RemoveAllComponents(id types.EntityID) error
}

// Store is the full collaborator contract: component storage plus entity
// lifecycle authority. A handle never owns its Store and never manages its
// lifetime.
type Store interface {
	Reader
	Writer
}

// View is the capability common to both handle variants; read-only generic
// operations accept it so they work through either a Handle or a ReadOnly.
type View interface {
	// Entity returns the held entity identifier verbatim.
	Entity() types.EntityID
	// Reader returns the read half of the referenced store, or nil for an
	// unbound handle.
	Reader() Reader
}
