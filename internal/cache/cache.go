package cache

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/OneOfOne/xxhash"

	"github.com/ppiankov/newstrust/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// URLListKey generates a cache key from an ordered URL list.
// Each URL is length-prefixed so that ["ab","c"] and ["a","bc"] differ;
// order and duplicates are significant.
func URLListKey(prefix string, urls []string) string {
	h := xxhash.NewS64(0)
	var lenBuf [8]byte
	for _, u := range urls {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(u)))
		h.Write(lenBuf[:])
		h.Write([]byte(u))
	}
	return prefix + strconv.FormatUint(h.Sum64(), 16)
}

// New builds the cache backend selected in the configuration
func New(cfg model.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryCache(cfg.TTL, 10*time.Minute), nil
	case "disk":
		return NewDiskCache(cfg.Dir, cfg.TTL), nil
	case "layered":
		return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL), nil
	case "redis":
		return NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
