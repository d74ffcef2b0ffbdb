/*
Package gamestate provides the reference entity store: the component storage
and entity lifecycle authority that handles delegate to.

EntityStore keeps its authoritative state in a PrimitiveStorage (redis in
production, miniredis in tests) and mirrors it in memory. Writes go through
to the database immediately; reads are served from an in-memory cache that
is filled lazily from the database. A fresh EntityStore pointed at the same
database recovers the full entity index during RegisterComponents.

# PrimitiveStorage model

The keys that store data are defined in keys.go. All keys are prefixed with
"ES".

key:	"ES:NEXT-ENTITY-ID"
value:	An integer holding the next entity ID that can be assigned. IDs
smaller than this value have already been assigned. ID 0 is never assigned;
it is the null entity sentinel.

key:	fmt.Sprintf("ES:COMPONENT-VALUE:TYPE-ID-%d:ENTITY-ID-%d", componentTypeID, entityID)
value:	JSON serialized bytes that can be deserialized to the component with
the matching componentTypeID, as assigned to the entity matching entityID.

key:	fmt.Sprintf("ES:COMPONENT-TYPES:ENTITY-ID-%d", entityID)
value:	JSON serialized bytes that can be deserialized to the slice of
component type IDs currently attached to the entity. The presence of this
key is what makes an entity ID live; an empty list is a live orphan entity.

Multi-key deletes (entity removal, remove-all) are applied through a
pipeline transaction so the database never holds a half-removed entity.

# Concurrency

EntityStore performs no locking of its own. The documented discipline is a
single writer; any number of concurrent readers are safe only in the
absence of writes. Handles add no synchronization on top.
*/
package gamestate
