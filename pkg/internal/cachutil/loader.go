// Package cachutil provides helpers for ttlcache based caches.
package cachutil

import (
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// SuppressedLoader wraps another Loader and suppresses duplicate
// calls to its Load method.
type SuppressedLoader[V any] struct {
	ttlcache.Loader[string, V]

	group *singleflight.Group
}

// NewSuppressedLoader returns a SuppressedLoader calling load for missing keys.
func NewSuppressedLoader[V any](load func(c *ttlcache.Cache[string, V], key string) *ttlcache.Item[string, V]) *SuppressedLoader[V] {
	return &SuppressedLoader[V]{
		Loader: ttlcache.LoaderFunc[string, V](load),
		group:  new(singleflight.Group),
	}
}

// Load executes a custom item retrieval logic and returns the item that
// is associated with the key.
// It returns nil if the item is not found/valid.
// It also ensures that only one execution of the wrapped Loader's Load
// method is in-flight for a given key at a time.
func (l *SuppressedLoader[V]) Load(c *ttlcache.Cache[string, V], key string) *ttlcache.Item[string, V] {
	// the group never fails on its own, the func below returns no error
	res, _, _ := l.group.Do(key, func() (any, error) {
		item := l.Loader.Load(c, key)
		if item == nil {
			return nil, nil
		}
		return item, nil
	})
	if res == nil {
		return nil
	}
	return res.(*ttlcache.Item[string, V])
}

// Group suppresses duplicate loads of a key across per-call loaders,
// for loaders that need more than the key to build an item.
type Group[V any] struct {
	group singleflight.Group
}

// Loader returns a loader calling load that is suppressed together
// with all other loaders of g.
func (g *Group[V]) Loader(load func(c *ttlcache.Cache[string, V], key string) *ttlcache.Item[string, V]) *SuppressedLoader[V] {
	return &SuppressedLoader[V]{
		Loader: ttlcache.LoaderFunc[string, V](load),
		group:  &g.group,
	}
}

// Options returns the ttlcache options for a cache without expiry
// holding at most capacity items. A capacity of 0 means unbounded.
func Options[V any](capacity uint64, loader ttlcache.Loader[string, V]) []ttlcache.Option[string, V] {
	opts := []ttlcache.Option[string, V]{
		ttlcache.WithTTL[string, V](ttlcache.NoTTL),
		ttlcache.WithDisableTouchOnHit[string, V](),
	}
	if capacity != 0 {
		opts = append(opts, ttlcache.WithCapacity[string, V](capacity))
	}
	if loader != nil {
		opts = append(opts, ttlcache.WithLoader[string, V](loader))
	}
	return opts
}
