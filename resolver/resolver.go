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

package resolver

import (
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/strategy"
	uref "dirpx.dev/srx/utils/reflect"
)

// New constructs an apis.Resolver over reg that decides compatibility with
// the given strategies, tried in order. Nil strategies are ignored. The
// returned resolver is safe for concurrent use provided reg and the
// strategies are.
func New(cfg apis.Config, reg apis.Registry, strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{cfg: cfg, reg: reg, strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	cfg    apis.Config
	reg    apis.Registry
	strats []apis.Strategy
}

// Ensure chain implements apis.Resolver.
var _ apis.Resolver = chain{}

// Base unwraps pointers and rejects nil or unnamed base types.
func (r chain) Base(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, apis.NewInvalidArgumentError("base type", "nil")
	}
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, apis.NewInvalidArgumentError("base type", fmt.Sprintf("%v: %v", t, err))
	}
	return b, nil
}

// Subtypes runs the first strategy that applies to base over every
// registered entry and keeps the compatible ones.
func (r chain) Subtypes(base reflect.Type) ([]reflect.Type, error) {
	b, err := r.Base(base)
	if err != nil {
		return nil, err
	}

	var s apis.Strategy
	for _, cand := range r.strats {
		if cand.Applies(b) {
			s = cand
			break
		}
	}
	if s == nil {
		return nil, apis.NewInvalidArgumentError("base type", fmt.Sprintf("%v: no strategy handles %s types", b, b.Kind()))
	}

	var out []reflect.Type
	var paths []string
	for _, e := range r.reg.Entries() {
		if s.Compatible(e.Type, b) {
			out = append(out, e.Type)
			paths = append(paths, e.Name)
		}
	}

	if r.cfg.Order == apis.OrderPath {
		sort.Stable(byPath{types: out, paths: paths})
	}
	return out, nil
}

// Resolve returns the type registered under (unit, name).
func (r chain) Resolve(unit, name string) (reflect.Type, error) {
	if unit == "" || name == "" {
		return nil, apis.NewInvalidArgumentError("type name", fmt.Sprintf("unit %q, name %q", unit, name))
	}
	e, ok := r.reg.Lookup(unit, name)
	if !ok {
		return nil, apis.NewTypeNotFoundError(unit, name)
	}
	return e.Type, nil
}

// Describe returns the registered metadata of t, or its default naming when
// t was never registered.
func (r chain) Describe(t reflect.Type) apis.Descriptor {
	if e, ok := r.reg.LookupType(t); ok {
		return apis.Descriptor{Type: e.Type, Path: e.Name, DisplayName: e.DisplayName}
	}
	return apis.Descriptor{Type: t, Path: strategy.Path(t), DisplayName: strategy.DisplayName(t)}
}

// Config returns the configuration the resolver was built with.
func (r chain) Config() apis.Config {
	return r.cfg
}

// byPath sorts types by their paths in lockstep.
type byPath struct {
	types []reflect.Type
	paths []string
}

func (s byPath) Len() int           { return len(s.types) }
func (s byPath) Less(i, j int) bool { return s.paths[i] < s.paths[j] }
func (s byPath) Swap(i, j int) {
	s.types[i], s.types[j] = s.types[j], s.types[i]
	s.paths[i], s.paths[j] = s.paths[j], s.paths[i]
}
