package cache

import (
	"context"
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone}

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Dir           string // file
	RedisAddr     string // redis
	MongoURI      string // mongo
	MongoDatabase string // mongo
	Collection    string // mongo, optional
}

// Open creates the configured backend wrapped in [Instrumented]. An empty
// backend name selects the file cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	c, err := open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewInstrumented(c), nil
}

func open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache requires a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache %s", opts.Dir)
		}
		return c, nil
	case BackendMemory:
		return NewMemoryCache(), nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache requires an address")
		}
		c, err := NewRedisCache(ctx, opts.RedisAddr)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return c, nil
	case BackendMongo:
		if opts.MongoURI == "" || opts.MongoDatabase == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo cache requires a uri and a database")
		}
		c, err := NewMongoCache(ctx, opts.MongoURI, opts.MongoDatabase, opts.Collection)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open mongo cache")
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (valid: %v)", opts.Backend, Backends)
	}
}

// String describes the backend for log output.
func (o Options) String() string {
	switch o.Backend {
	case BackendFile, "":
		return fmt.Sprintf("file(%s)", o.Dir)
	case BackendRedis:
		return fmt.Sprintf("redis(%s)", o.RedisAddr)
	case BackendMongo:
		return fmt.Sprintf("mongo(%s)", o.MongoDatabase)
	default:
		return o.Backend
	}
}
