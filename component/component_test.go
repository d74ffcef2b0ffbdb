package component_test

import (
	"testing"

	"pkg.world.dev/world-engine/handle/assert"
	"pkg.world.dev/world-engine/handle/component"
	"pkg.world.dev/world-engine/handle/types"
)

type Health struct {
	Current int
	Max     int
}

func (Health) Name() string {
	return "health"
}

type Mana struct {
	Amount int
}

func (Mana) Name() string {
	return "mana"
}

func TestNewComponentMetadata(t *testing.T) {
	c, err := component.NewComponentMetadata[Health]()
	assert.NilError(t, err)
	assert.Equal(t, "health", c.Name())
	assert.Check(t, len(c.GetSchema()) > 0)
}

func TestSetIDIsOneShot(t *testing.T) {
	c, err := component.NewComponentMetadata[Health]()
	assert.NilError(t, err)

	assert.NilError(t, c.SetID(5))
	assert.Equal(t, types.ComponentID(5), c.ID())

	// Re-registering with the same ID is a no-op.
	assert.NilError(t, c.SetID(5))

	err = c.SetID(6)
	assert.IsError(t, err)
	assert.Equal(t, types.ComponentID(5), c.ID())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c, err := component.NewComponentMetadata[Health]()
	assert.NilError(t, err)

	bz, err := c.Encode(Health{Current: 40, Max: 100})
	assert.NilError(t, err)

	got, err := c.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Health{Current: 40, Max: 100}, got)
}

func TestNewUsesDefaultValue(t *testing.T) {
	c, err := component.NewComponentMetadata[Health](
		component.WithDefault(Health{Current: 100, Max: 100}),
	)
	assert.NilError(t, err)

	bz, err := c.New()
	assert.NilError(t, err)

	got, err := c.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Health{Current: 100, Max: 100}, got)
}

func TestNewWithoutDefaultIsZeroValue(t *testing.T) {
	c, err := component.NewComponentMetadata[Health]()
	assert.NilError(t, err)

	bz, err := c.New()
	assert.NilError(t, err)

	got, err := c.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Health{}, got)
}

func TestValidateAgainstSchema(t *testing.T) {
	health, err := component.NewComponentMetadata[Health]()
	assert.NilError(t, err)
	mana, err := component.NewComponentMetadata[Mana]()
	assert.NilError(t, err)

	assert.NilError(t, health.ValidateAgainstSchema(health.GetSchema()))

	err = health.ValidateAgainstSchema(mana.GetSchema())
	assert.ErrorIs(t, err, types.ErrComponentSchemaMismatch)
}
