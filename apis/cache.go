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

package apis

import (
	"fmt"
	"reflect"
	"strings"
)

// CacheKey identifies one discovery result. It carries every knob that
// changes the resulting sequence, so a reordered result never aliases
// another.
type CacheKey struct {
	// Base is the requested base type.
	Base reflect.Type
	// Order is the ordering the sequence was produced with.
	Order Order
	// EmbedDepth is the embedding depth struct discovery was bounded by.
	EmbedDepth int
}

// KeyFor returns the cache key of base under cfg.
func KeyFor(base reflect.Type, cfg Config) CacheKey {
	return CacheKey{Base: base, Order: cfg.Order, EmbedDepth: cfg.EmbedDepth}
}

// Cache memoizes discovery results per base type.
//
// # Contract
//
//   - Once a key has been stored, every later lookup of that key returns the
//     same sequence for the lifetime of the cache. Entries are never
//     invalidated, even if compatible types are registered afterwards.
//   - Implementations MUST be safe for concurrent use.
//   - Returned slices are shared; callers MUST NOT mutate them.
type Cache interface {
	// Load returns the cached sequence for key, if present.
	Load(key CacheKey) ([]reflect.Type, bool)

	// LoadOrCompute returns the cached sequence for key, computing and storing
	// it with fn on a miss. hit reports whether the value came from the cache.
	// Errors from fn are returned as-is and nothing is stored.
	LoadOrCompute(key CacheKey, fn func() ([]reflect.Type, error)) (types []reflect.Type, hit bool, err error)

	// Len returns the number of cached keys.
	Len() int

	// Policy returns the retention policy of the cache.
	Policy() CachePolicy
}

// CachePolicy controls how a Cache retains discovery results.
//
// # Values
//
//   - CacheForever — resolve once, never invalidate.
//   - CacheNone    — caching disabled (pass-through behavior).
//
// Adding new values is allowed; existing values MUST NOT change their
// semantics.
type CachePolicy int

const (
	// CacheForever stores the first result for a key and reuses it for the
	// lifetime of the cache.
	//
	// The set of registered types is assumed to be effectively static after
	// startup, so discovery is paid once per base type.
	CacheForever CachePolicy = iota

	// CacheNone disables caching. Every lookup is a miss and nothing is
	// retained. Primarily useful for tests and diagnostics.
	CacheNone
)

// String returns a human-readable representation of the CachePolicy value.
//
// Unknown values are rendered as "CachePolicy(<n>)".
func (p CachePolicy) String() string {
	switch p {
	case CacheForever:
		return "forever"
	case CacheNone:
		return "none"
	default:
		return fmt.Sprintf("CachePolicy(%d)", int(p))
	}
}

// ParseCachePolicy parses the textual form produced by CachePolicy.String.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseCachePolicy(s string) (CachePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forever":
		return CacheForever, nil
	case "none":
		return CacheNone, nil
	default:
		return 0, &InvalidArgumentError{Arg: "cache policy", Message: fmt.Sprintf("unknown cache policy %q", s)}
	}
}
