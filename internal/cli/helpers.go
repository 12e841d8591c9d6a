package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/foundation"
	"github.com/polynav/polynav/pkg/store"
)

// openStore constructs the store backend selected by the configuration.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file", "":
		return store.NewFileStore(cfg.Store.Path)
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: cfg.Store.RedisAddr})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.Store.MongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// loadGraph reads the bulk dataset from the store and builds the concept
// graph. Returns (nil, nil) when no dataset has been stored yet.
func loadGraph(ctx context.Context, st store.Store) (*foundation.Graph, error) {
	data, ok, err := st.GetGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("read dataset from store: %w", err)
	}
	if !ok {
		return nil, nil
	}
	ds, err := foundation.ReadDataset(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return foundation.New(ds), nil
}

// requireGraph is loadGraph for commands that cannot run without a dataset.
func requireGraph(ctx context.Context, st store.Store) (*foundation.Graph, error) {
	g, err := loadGraph(ctx, st)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("no dataset found; run %q first", appName+" crawl")
	}
	return g, nil
}
