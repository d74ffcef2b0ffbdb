package gamestate

import "github.com/rotisserie/eris"

var (
	ErrEntityDoesNotExist       = eris.New("entity does not exist")
	ErrComponentAlreadyOnEntity = eris.New("component already on entity")
	ErrComponentNotOnEntity     = eris.New("component not on entity")
	ErrComponentNotRegistered   = eris.New("must register component")

	// ErrComponentMismatchWithSavedState is returned when a component ID
	// found in the saved state is not present in the registered component
	// set.
	ErrComponentMismatchWithSavedState = eris.New("registered components do not match with the saved state")
)
