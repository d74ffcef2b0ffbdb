package handle_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pkg.world.dev/world-engine/handle"
	"pkg.world.dev/world-engine/handle/assert"
	"pkg.world.dev/world-engine/handle/component"
	"pkg.world.dev/world-engine/handle/gamestate"
	"pkg.world.dev/world-engine/handle/types"
)

type Position struct {
	X, Y float64
}

func (Position) Name() string {
	return "position"
}

type Velocity struct {
	DX, DY float64
}

func (Velocity) Name() string {
	return "velocity"
}

func newStoreForTest(t *testing.T) *gamestate.EntityStore {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})

	store, err := gamestate.NewEntityStore(gamestate.NewRedisPrimitiveStorage(client))
	assert.NilError(t, err)

	posComp, err := component.NewComponentMetadata[Position]()
	assert.NilError(t, err)
	velComp, err := component.NewComponentMetadata[Velocity]()
	assert.NilError(t, err)
	assert.NilError(t, store.RegisterComponents([]types.ComponentMetadata{posComp, velComp}))

	return store
}

func newBoundHandleForTest(t *testing.T) (handle.Handle, *gamestate.EntityStore) {
	store := newStoreForTest(t)
	id, err := store.CreateEntity()
	assert.NilError(t, err)
	return handle.New(store, id), store
}

func TestNullHandle(t *testing.T) {
	var h handle.Handle
	assert.False(t, h.IsBound())
	assert.Nil(t, h.Store())
	assert.Nil(t, h.Reader())
	assert.Equal(t, types.NullEntity, h.Entity())

	var r handle.ReadOnly
	assert.False(t, r.IsBound())
	assert.Nil(t, r.Reader())
	assert.Equal(t, types.NullEntity, r.Entity())

	// Narrowing an unbound handle gives the unbound read-only handle.
	assert.Equal(t, r, h.AsReadOnly())
}

func TestBindingDoesNotValidate(t *testing.T) {
	store := newStoreForTest(t)

	// Binding to an identifier that was never allocated is fine; only Valid
	// can tell the difference.
	h := handle.New(store, types.EntityID(9000))
	assert.True(t, h.IsBound())
	assert.Equal(t, types.EntityID(9000), h.Entity())

	valid, err := h.Valid()
	assert.NilError(t, err)
	assert.False(t, valid)
}

func TestBoundHandleWithNullIdentifierIsNotBound(t *testing.T) {
	store := newStoreForTest(t)
	h := handle.New(store, types.NullEntity)
	assert.False(t, h.IsBound())
	assert.NotNil(t, h.Store())
}

func TestHandleEquality(t *testing.T) {
	store := newStoreForTest(t)
	otherStore := newStoreForTest(t)
	id, err := store.CreateEntity()
	assert.NilError(t, err)

	h1 := handle.New(store, id)
	h2 := handle.New(store, id)
	assert.Check(t, h1 == h2)

	assert.Check(t, h1 != handle.New(store, id+1))
	assert.Check(t, h1 != handle.New(otherStore, id))

	// Equality holds across the capability variants.
	r := handle.NewReadOnly(store, id)
	assert.Check(t, h1.AsReadOnly() == r)
	assert.Check(t, h2.AsReadOnly() == h1.AsReadOnly())
	assert.Check(t, h1.AsReadOnly() != handle.NewReadOnly(otherStore, id))
}

func TestAsReadOnlyPreservesIdentity(t *testing.T) {
	h, store := newBoundHandleForTest(t)

	r := h.AsReadOnly()
	assert.Equal(t, h.Entity(), r.Entity())
	assert.Check(t, r.Reader() == handle.Reader(store))
	assert.Equal(t, handle.NewReadOnly(store, h.Entity()), r)
}

func TestValidTracksStore(t *testing.T) {
	h, store := newBoundHandleForTest(t)

	valid, err := h.Valid()
	assert.NilError(t, err)
	assert.True(t, valid)

	assert.NilError(t, store.RemoveEntity(h.Entity()))

	valid, err = h.Valid()
	assert.NilError(t, err)
	assert.False(t, valid)

	// Structurally the handle is still bound; staleness is invisible to it.
	assert.True(t, h.IsBound())
}

func TestFreshEntityHasNothing(t *testing.T) {
	h, _ := newBoundHandleForTest(t)

	has, err := handle.Has(h, Position{})
	assert.NilError(t, err)
	assert.False(t, has)

	orphan, err := h.Orphan()
	assert.NilError(t, err)
	assert.True(t, orphan)
}

func TestVisitEnumeratesComponentTypes(t *testing.T) {
	h, _ := newBoundHandleForTest(t)

	_, err := handle.Emplace(h, Velocity{DX: 1})
	assert.NilError(t, err)
	_, err = handle.Emplace(h, Position{X: 1})
	assert.NilError(t, err)

	var names []string
	assert.NilError(t, h.Visit(func(c types.ComponentMetadata) {
		names = append(names, c.Name())
	}))
	// The reference store enumerates in component ID order.
	assert.DeepEqual(t, []string{"position", "velocity"}, names)

	// Visit is available on the read-only variant too.
	names = names[:0]
	assert.NilError(t, h.AsReadOnly().Visit(func(c types.ComponentMetadata) {
		names = append(names, c.Name())
	}))
	assert.Len(t, names, 2)
}

func TestReadOnlyHandleReads(t *testing.T) {
	h, store := newBoundHandleForTest(t)

	_, err := handle.Emplace(h, Position{X: 3, Y: 4})
	assert.NilError(t, err)

	r := handle.NewReadOnly(store, h.Entity())

	valid, err := r.Valid()
	assert.NilError(t, err)
	assert.True(t, valid)

	has, err := handle.Has(r, Position{})
	assert.NilError(t, err)
	assert.True(t, has)

	pos, err := handle.Get[Position](r)
	assert.NilError(t, err)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)
}
