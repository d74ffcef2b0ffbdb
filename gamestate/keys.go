package gamestate

import (
	"fmt"

	"pkg.world.dev/world-engine/handle/types"
)

// storageComponentKey maps a component type ID and an entity ID to the
// serialized value of that component.
func storageComponentKey(typeID types.ComponentID, id types.EntityID) string {
	return fmt.Sprintf("ES:COMPONENT-VALUE:TYPE-ID-%d:ENTITY-ID-%d", typeID, id)
}

// storageComponentTypesKey maps an entity ID to the list of component type
// IDs attached to it. The key existing is what makes the entity live.
func storageComponentTypesKey(id types.EntityID) string {
	return fmt.Sprintf("%s%d", storageComponentTypesPrefix, id)
}

// storageComponentTypesPrefix is the shared prefix of all component-types
// keys; the entity index is recovered by scanning it.
const storageComponentTypesPrefix = "ES:COMPONENT-TYPES:ENTITY-ID-"

// storageNextEntityIDKey holds the next entity ID that can be assigned to a
// newly created entity.
func storageNextEntityIDKey() string {
	return "ES:NEXT-ENTITY-ID"
}

// storageSchemaKey maps a component name to the JSON schema the component
// had when the saved state was written.
func storageSchemaKey(name string) string {
	return fmt.Sprintf("ES:SCHEMA:COMPONENT-NAME-%s", name)
}
