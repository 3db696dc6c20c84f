package cache

import (
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// ChartCache keeps rendered chart images in process memory.
type ChartCache struct {
	cache         *freecache.Cache
	expireSeconds int
}

func NewChartCache(size int, ttl time.Duration) *ChartCache {
	if size <= 0 {
		size = DefaultChartCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultChartTTL
	}
	return &ChartCache{
		cache:         freecache.NewCache(size),
		expireSeconds: int(ttl.Seconds()),
	}
}

func (c *ChartCache) Get(key string) ([]byte, bool) {
	png, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("get chart %s from cache: %s", key, err)
		}
		return nil, false
	}
	return png, true
}

func (c *ChartCache) Set(key string, png []byte) {
	if err := c.cache.Set([]byte(key), png, c.expireSeconds); err != nil {
		log.Warnf("cache chart %s (%d bytes): %s", key, len(png), err)
	}
}

func (c *ChartCache) Len() int64 {
	return c.cache.EntryCount()
}
