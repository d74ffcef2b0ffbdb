package gamestate_test

import (
	"testing"

	"pkg.world.dev/world-engine/handle/assert"
	"pkg.world.dev/world-engine/handle/gamestate"
)

func TestStorageConfig_EmptyAddressRejected(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "")

	_, err := gamestate.LoadStorageConfig()
	// An explicitly empty address fails validation; the default only kicks
	// in when the variable is absent entirely.
	assert.ErrorContains(t, err, "redis address cannot be empty")
}

func TestStorageConfig_LoadFromEnv(t *testing.T) {
	wantCfg := gamestate.StorageConfig{
		RedisAddress:  "localhost:16379",
		RedisPassword: "bar",
		RedisDB:       3,
	}
	t.Setenv("REDIS_ADDRESS", wantCfg.RedisAddress)
	t.Setenv("REDIS_PASSWORD", wantCfg.RedisPassword)
	t.Setenv("REDIS_DB", "3")

	gotCfg, err := gamestate.LoadStorageConfig()
	assert.NilError(t, err)
	assert.Equal(t, wantCfg, gotCfg)
}

func TestStorageConfig_RejectsNegativeDB(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("REDIS_DB", "-1")

	_, err := gamestate.LoadStorageConfig()
	assert.ErrorContains(t, err, "redis db cannot be negative")
}
