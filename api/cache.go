package api

import (
	"sync"
	"time"

	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type cacheData[T any] struct {
	Entries map[string]T `json:"entries"`
}

// cacher is a keyed view over a single gache file.
type cacher[T any] struct {
	internal *gache.Cache[*cacheData[T]]
	mu       sync.RWMutex
}

func newCacher[T any](path string, lifetime time.Duration) *cacher[T] {
	return &cacher[T]{
		internal: gache.New[*cacheData[T]](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (c *cacher[T]) Get(key string) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[key]; ok {
		return mo.Some(value)
	}

	return mo.None[T]()
}

func (c *cacher[T]) Set(key string, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil {
		data = &cacheData[T]{Entries: make(map[string]T)}
	}

	data.Entries[key] = value
	return c.internal.Set(data)
}

var videoCache = newCacher[*Video](where.Videos(), 10*time.Minute)
