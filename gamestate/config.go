package gamestate

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const redisDialTimeout = 15 * time.Second

// StorageConfig holds the connection settings for the primitive storage
// layer. Values are read from environment variables with the given
// defaults.
type StorageConfig struct {
	// Address of the redis server backing the store.
	RedisAddress string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`

	// Password of the redis server. Leave empty for no auth.
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Redis logical database to use.
	RedisDB int `env:"REDIS_DB" envDefault:"0"`
}

// LoadStorageConfig loads the storage configuration from environment
// variables.
func LoadStorageConfig() (StorageConfig, error) {
	cfg := StorageConfig{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse storage config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate storage config")
	}

	return cfg, nil
}

func (cfg *StorageConfig) validate() error {
	if cfg.RedisAddress == "" {
		return eris.New("redis address cannot be empty")
	}
	if cfg.RedisDB < 0 {
		return eris.New("redis db cannot be negative")
	}
	return nil
}

// NewEntityStoreFromEnv connects to the redis server described by the
// environment and builds an entity store on top of it.
func NewEntityStoreFromEnv() (*EntityStore, error) {
	cfg, err := LoadStorageConfig()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddress,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: redisDialTimeout,
	})

	return NewEntityStore(NewRedisPrimitiveStorage(client))
}
