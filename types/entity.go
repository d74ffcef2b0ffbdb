package types

import "strconv"

// EntityID is a unique identifier for an entity. Identifiers are opaque to
// the handle layer; only the store gives them meaning.
type EntityID uint64

// NullEntity is the reserved identifier that denotes "no entity". It is the
// zero value of EntityID, so a default-constructed handle holds it for free.
const NullEntity EntityID = 0

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
