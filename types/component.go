package types

import (
	"github.com/rotisserie/eris"
)

// ComponentID is the runtime identifier assigned to a registered component
// type. IDs are assigned by the store at registration time.
type ComponentID int

// Component is the interface a user-defined component struct needs to
// implement to be attachable to an entity.
type Component interface {
	// Name returns the name of the component.
	Name() string
}

// ComponentMetadata wraps a user-defined Component struct with the
// functionality the storage layer needs: a stable ID, a codec, and a
// reflection-derived JSON schema.
type ComponentMetadata interface { //revive:disable-line:exported
	// SetID sets the ID of this component. It must only be set once.
	SetID(ComponentID) error
	// ID returns the ID of the component.
	ID() ComponentID
	// New returns the marshaled bytes of the default value for the component struct.
	New() ([]byte, error)

	Encode(any) ([]byte, error)
	Decode([]byte) (Component, error)
	GetSchema() []byte
	ValidateAgainstSchema(targetSchema []byte) error

	Component
}

var ErrComponentSchemaMismatch = eris.New("component schema does not match target schema")
