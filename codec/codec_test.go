package codec_test

import (
	"testing"

	"pkg.world.dev/world-engine/handle/assert"
	"pkg.world.dev/world-engine/handle/codec"
)

type payload struct {
	Name  string
	Count int
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := payload{Name: "alpha", Count: 3}

	bz, err := codec.Encode(want)
	assert.NilError(t, err)

	got, err := codec.Decode[payload](bz)
	assert.NilError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	_, err := codec.Decode[payload]([]byte("{not json"))
	assert.IsError(t, err)
}
