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

// Package srx discovers and resolves the concrete types compatible with a
// base type.
//
// Given an interface, srx finds every registered concrete type that
// implements it. Given a struct, it finds every registered struct that
// embeds it, directly or through other embedded structs. The result is a
// TypeRegistry: an ordered set of descriptors, each carrying a stable path
// used for serialization and an optional display name for tooling.
//
// # Registration
//
// Go cannot enumerate the types of a running program, so concrete types
// register themselves, usually from init:
//
//	func init() {
//		srx.MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})
//	}
//
// Empty Meta fields are filled from the type itself. The path defaults to
// "<package path>.<type name>" and the code unit to the package path. A type
// may override either by implementing apis.TypeNamer or apis.UnitNamer, and
// declare a display name through apis.DisplayNamer.
//
// # Identifiers
//
// A type reference is serialized as "<unit> <name>", one space, no escaping:
//
//	t, err := srx.TypeByName("Spells Spells.Fireball")
//
// An empty identifier is an invalid argument, anything that is not exactly
// two tokens is malformed, and a well-formed pair with no registered type is
// not found. All three match their apis sentinel through errors.Is.
//
// # Discovery cache
//
// Discovery results are kept in an apis.Cache keyed by base type and
// ordering. Under apis.CacheForever, the default, a base type is discovered
// once and the result is reused for the lifetime of the cache, even if more
// types are registered later. apis.CacheNone disables retention.
//
// # Design
//
// The package keeps a read-mostly global snapshot of Config, Registry,
// Cache, Resolver and Builder. Readers load the snapshot atomically and never
// take locks. Writers (SetConfig, SetBuilder, SetAll) take a short build
// mutex, assemble a new snapshot through the Builder and swap it in.
// Rebuilds carry registered types over, and keep the discovery cache unless
// its policy changed.
//
// Callers that want explicit ownership instead of process-wide state can
// compose the same pieces themselves with the builder, cache and typereg
// packages.
package srx
