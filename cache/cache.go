package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lexistack/config"
)

// The object cache holds large, immutable objects that are expensive to
// build and should be shared for the lifetime of the process, such as
// letter pools.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type LoadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is the process-wide object cache.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) load(cfg *config.Config, key string, loadFunc LoadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(cfg, key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	if err := c.load(cfg, key, loadFunc); err != nil {
		return nil, err
	}
	return c.objects[key], nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

// Load returns the object stored under name, calling loadFunc to build it
// if it is not cached yet.
func Load(cfg *config.Config, name string, loadFunc LoadFunc) (any, error) {
	createOnce.Do(func() {
		if GlobalObjectCache == nil {
			CreateGlobalObjectCache()
		}
	})
	return GlobalObjectCache.get(cfg, name, loadFunc)
}
