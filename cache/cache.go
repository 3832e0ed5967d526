/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/srx/apis"
)

// Option configures a cache built by New.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger used for debug-level hit/miss records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// New constructs an apis.Cache with the given retention policy.
// Unknown policies fall back to apis.CacheForever.
func New(policy apis.CachePolicy, opts ...Option) apis.Cache {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if policy == apis.CacheNone {
		return &passthrough{log: o.log}
	}
	return &forever{
		m:   make(map[apis.CacheKey][]reflect.Type),
		log: o.log,
	}
}

// forever keeps the first result for every key until the cache is dropped.
type forever struct {
	mu  sync.RWMutex
	m   map[apis.CacheKey][]reflect.Type
	sf  singleflight.Group
	log *slog.Logger
}

// Ensure forever implements apis.Cache.
var _ apis.Cache = (*forever)(nil)

func (c *forever) Load(key apis.CacheKey) ([]reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// LoadOrCompute collapses concurrent misses of the same key into a single
// call of fn. Callers that waited on another caller's computation see
// hit == false.
func (c *forever) LoadOrCompute(key apis.CacheKey, fn func() ([]reflect.Type, error)) ([]reflect.Type, bool, error) {
	if v, ok := c.Load(key); ok {
		c.log.Debug("srx: discovery cache hit", "base", key.Base, "order", key.Order)
		return v, true, nil
	}

	v, err, _ := c.sf.Do(flightKey(key), func() (any, error) {
		if v, ok := c.Load(key); ok {
			return v, nil
		}
		types, err := fn()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.m[key]; ok {
			return existing, nil
		}
		c.m[key] = types
		c.log.Debug("srx: discovery cached", "base", key.Base, "order", key.Order, "types", len(types))
		return types, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]reflect.Type), false, nil
}

func (c *forever) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *forever) Policy() apis.CachePolicy { return apis.CacheForever }

// passthrough never retains anything.
type passthrough struct {
	log *slog.Logger
}

// Ensure passthrough implements apis.Cache.
var _ apis.Cache = (*passthrough)(nil)

func (*passthrough) Load(apis.CacheKey) ([]reflect.Type, bool) { return nil, false }

func (c *passthrough) LoadOrCompute(key apis.CacheKey, fn func() ([]reflect.Type, error)) ([]reflect.Type, bool, error) {
	c.log.Debug("srx: discovery uncached", "base", key.Base, "order", key.Order)
	types, err := fn()
	return types, false, err
}

func (*passthrough) Len() int { return 0 }

func (*passthrough) Policy() apis.CachePolicy { return apis.CacheNone }

// flightKey keys singleflight by the address of the type descriptor, which
// is unique per type even when two types share a name.
func flightKey(key apis.CacheKey) string {
	return fmt.Sprintf("%p/%d/%d", key.Base, int(key.Order), key.EmbedDepth)
}

// Warm discovers and caches the compatible types of every base concurrently.
// It stops at the first error or when ctx is done.
func Warm(ctx context.Context, c apis.Cache, res apis.Resolver, bases ...reflect.Type) error {
	cfg := res.Config()
	grp, ctx := errgroup.WithContext(ctx)
	for _, base := range bases {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := res.Base(base)
			if err != nil {
				return err
			}
			_, _, err = c.LoadOrCompute(apis.KeyFor(b, cfg), func() ([]reflect.Type, error) {
				return res.Subtypes(b)
			})
			return err
		})
	}
	return grp.Wait()
}
