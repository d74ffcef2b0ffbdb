package log_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/handle/assert"
	"pkg.world.dev/world-engine/handle/component"
	"pkg.world.dev/world-engine/handle/log"
	"pkg.world.dev/world-engine/handle/types"
)

type EnergyComp struct {
	Value int
}

func (EnergyComp) Name() string {
	return "energy"
}

type registry struct {
	comps []types.ComponentMetadata
}

func (r *registry) GetRegisteredComponents() []types.ComponentMetadata {
	return r.comps
}

func newMetadataForTest(t *testing.T, id types.ComponentID) types.ComponentMetadata {
	c, err := component.NewComponentMetadata[EnergyComp]()
	assert.NilError(t, err)
	assert.NilError(t, c.SetID(id))
	return c
}

func TestComponents(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	log.Components(&logger, &registry{comps: []types.ComponentMetadata{
		newMetadataForTest(t, 1),
	}}, zerolog.InfoLevel)

	want := `{
		"level":"info",
		"total_components":1,
		"components":[{"component_id":1,"component_name":"energy"}]
	}`
	assert.JSONEq(t, want, buf.String())
}

func TestEntity(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	log.Entity(&logger, zerolog.DebugLevel, types.EntityID(42),
		[]types.ComponentMetadata{newMetadataForTest(t, 2)})

	want := `{
		"level":"debug",
		"components":[{"component_id":2,"component_name":"energy"}],
		"entity_id":42
	}`
	assert.JSONEq(t, want, buf.String())
}

func TestCreateTraceLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	traced := log.CreateTraceLogger(&logger, "trace-abc")
	traced.Info().Msg("hello")

	want := `{"level":"info","trace_id":"trace-abc","message":"hello"}`
	assert.JSONEq(t, want, buf.String())
}
