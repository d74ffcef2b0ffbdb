package handle

import (
	"pkg.world.dev/world-engine/handle/types"
)

var _ View = ReadOnly{}
var _ View = Handle{}

// ReadOnly is the read-only capability variant of a handle. The zero value
// is an unbound null handle.
type ReadOnly struct {
	store Reader
	id    types.EntityID
}

// Handle is the mutable capability variant. The zero value is an unbound
// null handle.
type Handle struct {
	store Store
	id    types.EntityID
}

// New binds a store and an entity identifier into a mutable handle. No
// validation is performed: the identifier does not need to denote a live
// entity.
func New(store Store, id types.EntityID) Handle {
	return Handle{store: store, id: id}
}

// NewReadOnly binds a store and an entity identifier into a read-only
// handle.
func NewReadOnly(store Reader, id types.EntityID) ReadOnly {
	return ReadOnly{store: store, id: id}
}

// AsReadOnly narrows the handle to its read-only variant over the same
// store and identifier. An unbound handle narrows to the zero ReadOnly.
// The converted handle compares equal to its source:
//
//	h.AsReadOnly() == handle.NewReadOnly(s, e)  // for h == handle.New(s, e)
//
// There is no widening conversion back; regaining write access takes an
// explicit re-binding through New.
func (h Handle) AsReadOnly() ReadOnly {
	if h.store == nil {
		return ReadOnly{}
	}
	return ReadOnly{store: h.store, id: h.id}
}

// Entity returns the held entity identifier verbatim, regardless of whether
// the handle is bound or the entity is live.
func (h ReadOnly) Entity() types.EntityID { return h.id }

// Entity returns the held entity identifier verbatim.
func (h Handle) Entity() types.EntityID { return h.id }

// Reader returns the referenced store's read half, or nil if unbound.
func (h ReadOnly) Reader() Reader { return h.store }

// Reader returns the referenced store's read half, or nil if unbound.
func (h Handle) Reader() Reader { return h.store }

// Store returns the referenced store, or nil if the handle is unbound.
func (h Handle) Store() Store { return h.store }

// IsBound reports whether the handle references a store and a non-null
// identifier. This is a structural check on the handle's own two fields; it
// never consults the store and therefore cannot detect a stale identifier.
func (h ReadOnly) IsBound() bool {
	return h.store != nil && h.id != types.NullEntity
}

// IsBound reports whether the handle references a store and a non-null
// identifier without consulting the store.
func (h Handle) IsBound() bool {
	return h.store != nil && h.id != types.NullEntity
}

// Valid reports whether the held identifier currently denotes a live entity
// in the referenced store. The handle must be bound to a store.
func (h ReadOnly) Valid() (bool, error) { return h.store.Valid(h.id) }

// Valid reports whether the held identifier currently denotes a live
// entity. The handle must be bound to a store.
func (h Handle) Valid() (bool, error) { return h.store.Valid(h.id) }

// Orphan reports whether the entity has zero components attached. The
// handle must be bound to a store.
func (h ReadOnly) Orphan() (bool, error) { return h.store.Orphan(h.id) }

// Orphan reports whether the entity has zero components attached. The
// handle must be bound to a store.
func (h Handle) Orphan() (bool, error) { return h.store.Orphan(h.id) }

// Visit invokes fn once per component type currently attached to the
// entity, in the store's enumeration order.
func (h ReadOnly) Visit(fn func(types.ComponentMetadata)) error {
	return visit(h.store, h.id, fn)
}

// Visit invokes fn once per component type currently attached to the
// entity, in the store's enumeration order.
func (h Handle) Visit(fn func(types.ComponentMetadata)) error {
	return visit(h.store, h.id, fn)
}

// RemoveAll detaches every component the entity currently has, leaving it
// an orphan.
func (h Handle) RemoveAll() error {
	return h.store.RemoveAllComponents(h.id)
}

func visit(store Reader, id types.EntityID, fn func(types.ComponentMetadata)) error {
	comps, err := store.GetComponentTypesForEntity(id)
	if err != nil {
		return err
	}
	for _, comp := range comps {
		fn(comp)
	}
	return nil
}
