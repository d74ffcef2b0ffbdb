/*
Package handle provides a non-owning reference to an entity: a tiny value
pairing an entity identifier with the store that manages it, so both can be
passed around as one argument.

A handle comes in two capability variants. Handle can read and write
components; ReadOnly can only read. A Handle narrows to a ReadOnly over the
same store and identifier via AsReadOnly; there is no conversion back.
Because the capability is the static type, passing a ReadOnly to a mutating
operation is a compile error rather than a runtime failure.

Handles are transient values: copy them, compare them, and drop them freely.
They never extend the lifetime of the store or the entity they name, and
they perform no validation of their own. A held identifier can go stale at
any time (the entity may be destroyed, and its identifier recycled, behind
the handle's back); only Valid, which asks the store, can tell. All
component operations forward to the store verbatim and return exactly what
the store returns.

Component operations that are generic over a component type are package
functions rather than methods, since Go methods cannot carry their own type
parameters:

	h := handle.New(store, id)
	pos, err := handle.Emplace(h, Position{X: 1, Y: 2})
	ok, err := handle.Has(h, Position{}, Velocity{})

Calling a store-delegating operation on an unbound handle (nil store) is a
contract violation and will panic; IsBound is the cheap structural check
that does not consult the store.
*/
package handle
