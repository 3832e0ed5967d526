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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/config"
	"dirpx.dev/srx/strategy"
	uref "dirpx.dev/srx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = apis.NewInvalidArgumentError("type", "nil reflect.Type provided")
	// ErrNotNamed is returned when the type (after unwrapping pointers) is
	// unnamed.
	ErrNotNamed = apis.NewInvalidArgumentError("type", "not a named type")
	// ErrInvalidName is returned when the unit or name is empty or contains
	// whitespace and therefore cannot round-trip through an identifier.
	ErrInvalidName = apis.NewInvalidArgumentError("name", "unit and name must be non-empty and space-free")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with different metadata, or to reuse a (unit, name) pair.
	ErrConflictingRegistration = errors.New("srx(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{
		cfg:    cfg,
		byType: make(map[reflect.Type]int),
		byID:   make(map[idKey]int),
	}
}

// idKey is the (unit, name) pair an entry is reachable by.
type idKey struct {
	unit string
	name string
}

// registry is an append-only, ordered Registry implementation.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards everything below.
	mu sync.RWMutex
	// byType maps a normalized type to its index in entries.
	byType map[reflect.Type]int
	// byID maps (unit, name) to its index in entries.
	byID map[idKey]int
	// entries holds registrations in order.
	entries []apis.Entry
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register adds the nearest named type of t. Interfaces may be registered so
// that they can be named as base types; discovery never returns them.
// It is idempotent for the same (type, metadata) pair.
func (r *registry) Register(t reflect.Type, meta apis.Meta) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return fmt.Errorf("%w: %v: %v", ErrNotNamed, t, err)
	}

	e := apis.Entry{
		Type:        b,
		Unit:        meta.Unit,
		Name:        meta.Name,
		DisplayName: meta.DisplayName,
	}
	if e.Unit == "" {
		e.Unit = strategy.Unit(b)
	}
	if e.Name == "" {
		e.Name = strategy.Path(b)
	}
	if e.DisplayName == "" {
		e.DisplayName = strategy.DisplayName(b)
	}
	if !validToken(e.Unit) || !validToken(e.Name) {
		return fmt.Errorf("%w: unit %q, name %q", ErrInvalidName, e.Unit, e.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.byType[b]; ok {
		if r.entries[i] == e {
			return nil // idempotent re-registration
		}
		return fmt.Errorf("%w: %v already registered as %q", ErrConflictingRegistration, b, r.entries[i].Identifier())
	}
	key := idKey{unit: e.Unit, name: e.Name}
	if i, ok := r.byID[key]; ok {
		return fmt.Errorf("%w: %q already taken by %v", ErrConflictingRegistration, e.Identifier(), r.entries[i].Type)
	}

	r.entries = append(r.entries, e)
	r.byType[b] = len(r.entries) - 1
	r.byID[key] = len(r.entries) - 1
	return nil
}

// Lookup returns the entry registered under (unit, name).
// Matching is exact and case-sensitive.
func (r *registry) Lookup(unit, name string) (apis.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.byID[idKey{unit: unit, name: name}]; ok {
		return r.entries[i], true
	}
	return apis.Entry{}, false
}

// LookupType returns the entry for the nearest named type of t.
func (r *registry) LookupType(t reflect.Type) (apis.Entry, bool) {
	if t == nil {
		return apis.Entry{}, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return apis.Entry{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.byType[nt]; ok {
		return r.entries[i], true
	}
	return apis.Entry{}, false
}

// Entries returns a snapshot in registration order.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// validToken reports whether s can be one token of an identifier.
func validToken(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}
