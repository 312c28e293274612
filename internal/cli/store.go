package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/keyring"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/storage/postgres"
	"github.com/julianstephens/lifetrack/internal/storage/redis"
	"github.com/julianstephens/lifetrack/internal/storage/sqlite"
)

// OpenStore picks a provider from the shape of location:
//
//	:memory:                     in-process store
//	*.json                       JSON file
//	postgres://, postgresql://   PostgreSQL, password not allowed in the URL
//	postgres                     PostgreSQL via LIFETRACK_DB_CONNECTION or the keyring
//	redis://, rediss://          Redis
//	anything else                SQLite file
//
// The returned provider is neither initialized nor loaded.
func OpenStore(location string) (storage.Provider, error) {
	switch {
	case location == constants.MemoryStoreLocation:
		return storage.NewMemoryStore(), nil

	case location == constants.PostgresKeyringLocation:
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no PostgreSQL connection string found: set %s or run 'lifetrack keyring set'", constants.EnvDBConnection)
			}
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection string", "source", source, "conn", keyring.MaskPassword(connStr))
		return postgres.New(connStr), nil

	case postgres.IsConnString(location):
		if valid, err := postgres.ValidateConnString(location); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store the full connection string with 'lifetrack keyring set' or %s and use --store postgres", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(location), nil

	case redis.IsURL(location):
		return redis.New(location)

	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return storage.NewJSONStore(location), nil

	default:
		return sqlite.NewStore(location), nil
	}
}
