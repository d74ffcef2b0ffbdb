package handle

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/handle/types"
)

// Get returns the entity's component of type C. The entity must have the
// component; the store's error is forwarded untouched when it does not.
func Get[C types.Component](v View) (*C, error) {
	var t C
	value, err := v.Reader().GetComponentForEntity(t, v.Entity())
	if err != nil {
		return nil, err
	}
	return assertComponent[C](value)
}

// TryGet returns a pointer to the entity's component of type C, or nil when
// the entity does not have one.
func TryGet[C types.Component](v View) (*C, error) {
	var t C
	has, err := v.Reader().HasComponent(t, v.Entity())
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	return Get[C](v)
}

// Has reports whether the entity has every one of the given component
// types. Components are passed as values purely to name their types; the
// values themselves are ignored.
func Has(v View, comps ...types.Component) (bool, error) {
	for _, comp := range comps {
		has, err := v.Reader().HasComponent(comp, v.Entity())
		if err != nil {
			return false, err
		}
		if !has {
			return false, nil
		}
	}
	return true, nil
}

// Any reports whether the entity has at least one of the given component
// types.
func Any(v View, comps ...types.Component) (bool, error) {
	for _, comp := range comps {
		has, err := v.Reader().HasComponent(comp, v.Entity())
		if err != nil {
			return false, err
		}
		if has {
			return true, nil
		}
	}
	return false, nil
}

// Emplace attaches comp to the entity and returns a pointer to it. The
// entity must not already have a component of type C.
func Emplace[C types.Component](h Handle, comp C) (*C, error) {
	if err := h.store.EmplaceComponent(comp, h.id); err != nil {
		return nil, err
	}
	return &comp, nil
}

// EmplaceOrReplace attaches comp to the entity, overwriting any existing
// component of type C, and returns a pointer to it.
func EmplaceOrReplace[C types.Component](h Handle, comp C) (*C, error) {
	if err := h.store.EmplaceOrReplaceComponent(comp, h.id); err != nil {
		return nil, err
	}
	return &comp, nil
}

// Replace overwrites the entity's existing component of type C with comp
// and returns a pointer to it. The entity must already have the component.
func Replace[C types.Component](h Handle, comp C) (*C, error) {
	if err := h.store.ReplaceComponent(comp, h.id); err != nil {
		return nil, err
	}
	return &comp, nil
}

// Patch applies each mutator to the entity's existing component of type C,
// stores the result, and returns it. The entity must have the component.
func Patch[C types.Component](h Handle, fns ...func(*C)) (*C, error) {
	c, err := Get[C](h)
	if err != nil {
		return nil, err
	}
	for _, fn := range fns {
		fn(c)
	}
	if err := h.store.ReplaceComponent(*c, h.id); err != nil {
		return nil, err
	}
	return c, nil
}

// GetOrEmplace returns the entity's existing component of type C, or
// attaches comp and returns that when the entity has none.
func GetOrEmplace[C types.Component](h Handle, comp C) (*C, error) {
	var t C
	has, err := h.store.HasComponent(t, h.id)
	if err != nil {
		return nil, err
	}
	if has {
		return Get[C](h)
	}
	return Emplace(h, comp)
}

// Remove detaches each of the given component types from the entity. The
// entity must have every one of them.
func Remove(h Handle, comps ...types.Component) error {
	for _, comp := range comps {
		if err := h.store.RemoveComponent(comp, h.id); err != nil {
			return err
		}
	}
	return nil
}

// RemoveIfExists detaches each of the given component types that the entity
// actually has and returns how many were removed.
func RemoveIfExists(h Handle, comps ...types.Component) (int, error) {
	removed := 0
	for _, comp := range comps {
		ok, err := h.store.RemoveComponentIfExists(comp, h.id)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// assertComponent narrows the store's untyped component value back to C.
// Stores may hand back either a value or a pointer.
func assertComponent[C types.Component](value any) (*C, error) {
	c, ok := value.(C)
	if !ok {
		pc, ok := value.(*C)
		if !ok {
			var t C
			return nil, eris.Errorf("store returned %T for component %q", value, t.Name())
		}
		return pc, nil
	}
	return &c, nil
}
