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

// Package typereg implements TypeRegistry: the set of concrete types
// compatible with one base type, with per-type descriptors and lookups.
//
// A TypeRegistry is built against a resolver, which answers discovery
// questions over the registered types, and a discovery cache shared by every
// registry composed from the same place. Discovery for a base type runs once
// per cache; later registries targeting the same base reuse the cached
// sequence even if more types were registered in between.
//
// Constructors never leave the caller without a registry. On failure they
// return an empty, usable *TypeRegistry together with the error, and log the
// failure once.
package typereg

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/identifier"
)

// TypeRegistry holds the descriptors of the types compatible with its base.
// It is safe for concurrent use. The zero value is an empty registry with
// no-op hooks.
type TypeRegistry struct {
	res   apis.Resolver
	cache apis.Cache
	hooks apis.Hooks
	log   *slog.Logger

	mu    sync.RWMutex
	base  reflect.Type
	descs []apis.Descriptor
}

// Option configures a TypeRegistry.
type Option func(*TypeRegistry)

// WithHooks sets the instance hooks. Nil keeps the no-op default.
func WithHooks(h apis.Hooks) Option {
	return func(r *TypeRegistry) {
		if h != nil {
			r.hooks = h
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(r *TypeRegistry) {
		if l != nil {
			r.log = l
		}
	}
}

func newEmpty(res apis.Resolver, c apis.Cache, opts []Option) *TypeRegistry {
	r := &TypeRegistry{
		res:   res,
		cache: c,
		hooks: apis.NopHooks{},
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New discovers every registered type compatible with base.
//
// For an interface base that is every concrete type implementing it; for a
// struct base every struct embedding it at any depth. The base itself is
// never included. A nil cache disables caching.
func New(res apis.Resolver, c apis.Cache, base reflect.Type, opts ...Option) (*TypeRegistry, error) {
	r := newEmpty(res, c, opts)
	if err := r.retarget(base); err != nil {
		r.logger().Error("srx: type registry discovery failed", "base", fmt.Sprint(base), "error", err)
		return r, err
	}
	return r, nil
}

// For is New for the base type T.
func For[T any](res apis.Resolver, c apis.Cache, opts ...Option) (*TypeRegistry, error) {
	return New(res, c, reflect.TypeFor[T](), opts...)
}

// NewFromTypes builds a registry over exactly the given types, in the given
// order, without discovery. The registry has no base.
func NewFromTypes(res apis.Resolver, types []reflect.Type, opts ...Option) (*TypeRegistry, error) {
	r := newEmpty(res, nil, opts)
	if err := r.setTypes(types); err != nil {
		r.logger().Error("srx: type registry construction failed", "types", len(types), "error", err)
		return r, err
	}
	return r, nil
}

func (r *TypeRegistry) setTypes(types []reflect.Type) error {
	if r.res == nil {
		return apis.NewInvalidArgumentError("resolver", "nil")
	}
	if len(types) == 0 {
		return apis.NewInvalidArgumentError("types", "empty type list")
	}
	descs := make([]apis.Descriptor, 0, len(types))
	for i, t := range types {
		if t == nil {
			return apis.NewInvalidArgumentError("types", fmt.Sprintf("nil type at index %d", i))
		}
		descs = append(descs, r.res.Describe(t))
	}
	r.mu.Lock()
	r.base, r.descs = nil, descs
	r.mu.Unlock()
	return nil
}

// retarget runs discovery for base and replaces the descriptor set. On error
// the current set is left unchanged.
func (r *TypeRegistry) retarget(base reflect.Type) error {
	if r.res == nil {
		return apis.NewInvalidArgumentError("resolver", "nil")
	}
	b, err := r.res.Base(base)
	if err != nil {
		return err
	}
	types, err := r.discover(b)
	if err != nil {
		return err
	}
	descs := make([]apis.Descriptor, 0, len(types))
	for _, t := range types {
		descs = append(descs, r.res.Describe(t))
	}
	r.mu.Lock()
	r.base, r.descs = b, descs
	r.mu.Unlock()
	return nil
}

func (r *TypeRegistry) discover(base reflect.Type) ([]reflect.Type, error) {
	compute := func() ([]reflect.Type, error) { return r.res.Subtypes(base) }
	if r.cache == nil {
		return compute()
	}
	key := apis.KeyFor(base, r.res.Config())
	types, _, err := r.cache.LoadOrCompute(key, compute)
	return types, err
}

// RetargetByName resolves identifier ("<unit> <name>") to a registered type
// and replaces the descriptor set with that type's compatible types.
// On failure the current descriptor set is kept.
func (r *TypeRegistry) RetargetByName(id string) error {
	t, err := TypeByName(r.res, id)
	if err == nil {
		err = r.retarget(t)
	}
	if err != nil {
		r.logger().Error("srx: type registry retarget failed", "identifier", id, "error", err)
		return err
	}
	return nil
}

// TypeByName parses identifier and returns the type registered under it.
func TypeByName(res apis.Resolver, id string) (reflect.Type, error) {
	if res == nil {
		return nil, apis.NewInvalidArgumentError("resolver", "nil")
	}
	parsed, err := identifier.Parse(id)
	if err != nil {
		return nil, err
	}
	return res.Resolve(parsed.Unit, parsed.Name)
}

// Base returns the base type of the last successful discovery, or nil.
func (r *TypeRegistry) Base() reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base
}

// Descriptors returns a copy of the current descriptor set.
func (r *TypeRegistry) Descriptors() []apis.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Descriptor, len(r.descs))
	copy(out, r.descs)
	return out
}

// Len returns the number of descriptors.
func (r *TypeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descs)
}

// DescriptorByPath returns the descriptor whose path equals path exactly.
func (r *TypeRegistry) DescriptorByPath(path string) (apis.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.descs {
		if d.Path == path {
			return d, true
		}
	}
	return apis.Descriptor{}, false
}

// Instantiate returns a pointer to a new zero value of the type at path and
// reports it to OnCreate.
func (r *TypeRegistry) Instantiate(path string) (any, error) {
	d, ok := r.DescriptorByPath(path)
	if !ok {
		return nil, apis.NewTypeNotFoundError("", path)
	}
	v := reflect.New(d.Type).Interface()
	r.OnCreate(v)
	return v, nil
}

// Change reports an in-place mutation of instance to OnChange.
func (r *TypeRegistry) Change(instance any) {
	r.OnChange(instance)
}

// OnCreate forwards to the configured hooks.
func (r *TypeRegistry) OnCreate(instance any) {
	if r.hooks != nil {
		r.hooks.OnCreate(instance)
	}
}

// OnChange forwards to the configured hooks.
func (r *TypeRegistry) OnChange(instance any) {
	if r.hooks != nil {
		r.hooks.OnChange(instance)
	}
}

func (r *TypeRegistry) logger() *slog.Logger {
	if r.log == nil {
		return slog.Default()
	}
	return r.log
}
