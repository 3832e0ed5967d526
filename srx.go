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

package srx

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/builder"
	"dirpx.dev/srx/cache"
	"dirpx.dev/srx/config"
	"dirpx.dev/srx/typereg"
)

// init initializes the global state.
func init() {
	// Initialize state with default cfg, reg, cache and res.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.cache = b.BuildCache(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, s.reg)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("srx: builder returned nil registry")
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("srx: builder returned nil cache")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("srx: builder returned nil resolver")
)

// Register adds t to the global registry. Empty fields of meta are filled
// from the type's own naming.
// This is a convenience wrapper around the global registry.
//
// Register is serialized with SetConfig, SetBuilder and SetAll, so a
// registration is never dropped by a concurrent rebuild.
func Register(t reflect.Type, meta apis.Meta) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	return st.Load().reg.Register(t, meta)
}

// RegisterFor is Register for the type T.
func RegisterFor[T any](meta apis.Meta) error {
	return Register(reflect.TypeFor[T](), meta)
}

// MustRegister is like Register but panics on error.
// It is meant for package init functions.
func MustRegister(t reflect.Type, meta apis.Meta) {
	if err := Register(t, meta); err != nil {
		panic(err)
	}
}

// New creates a TypeRegistry for base using the global resolver and cache.
func New(base reflect.Type, opts ...typereg.Option) (*typereg.TypeRegistry, error) {
	s := st.Load()
	return typereg.New(s.res, s.cache, base, opts...)
}

// NewFor is New for the base type T.
func NewFor[T any](opts ...typereg.Option) (*typereg.TypeRegistry, error) {
	return New(reflect.TypeFor[T](), opts...)
}

// NewFromTypes creates a TypeRegistry over exactly the given types.
func NewFromTypes(types []reflect.Type, opts ...typereg.Option) (*typereg.TypeRegistry, error) {
	return typereg.NewFromTypes(st.Load().res, types, opts...)
}

// TypeByName resolves an identifier of the form "<unit> <name>" against the
// global registry.
func TypeByName(id string) (reflect.Type, error) {
	return typereg.TypeByName(st.Load().res, id)
}

// Warm fills the global discovery cache for bases concurrently.
func Warm(ctx context.Context, bases ...reflect.Type) error {
	s := st.Load()
	return cache.Warm(ctx, s.cache, s.res, bases...)
}

// SetAll explicitly sets global state components.
//
// Nil arguments are rebuilt by the (possibly new) builder from the previous
// state; a nil cfg keeps the current configuration.
//
// This is mainly used by tests to get a clean deterministic state.
func SetAll(cfg *apis.Config, reg apis.Registry, c apis.Cache, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}
	nreg := reg
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg)
	}
	ncache := c
	if ncache == nil {
		ncache = nbld.BuildCache(ncfg, old.cache)
	}

	publish(ncfg, nreg, ncache, nbld)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the registry,
// cache and resolver with it. Registered types carry over; the cache carries
// over unless the policy changed.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	b := old.bld
	publish(cfg, b.BuildRegistry(cfg, old.reg), b.BuildCache(cfg, old.cache), b)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// Cache returns the global discovery cache.
func Cache() apis.Cache {
	return st.Load().cache
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds every layer with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(old.cfg, b.BuildRegistry(old.cfg, old.reg), b.BuildCache(old.cfg, old.cache), b)
}

// publish builds the resolver for reg and stores the new state.
// Callers must hold buildMu.
func publish(cfg apis.Config, reg apis.Registry, c apis.Cache, b apis.Builder) {
	// Ensure non-nil layers.
	if reg == nil {
		panic(ErrNilRegistry)
	}
	if c == nil {
		panic(ErrNilCache)
	}
	res := b.BuildResolver(cfg, reg)
	if res == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   cfg,
			reg:   reg,
			cache: c,
			res:   res,
			bld:   b,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global registry.
	reg apis.Registry
	// cache is the global discovery cache.
	cache apis.Cache
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
}
