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

// TypeNamer lets a concrete type choose its own fully qualified name.
//
// # Overview
//
// TypeNamer is a type-level contract: TypeName describes the *kind* of
// value, not a particular instance. It is called on the zero value of the
// type (or on a pointer to a zero value for pointer receivers) exactly once,
// at registration time. Explicit registration metadata (Meta.Name) always
// wins over TypeNamer.
//
// # Contract
//
//   - The returned name MUST be non-empty and MUST NOT contain spaces, since
//     it becomes the second token of a serialized identifier.
//   - The returned name MUST be deterministic for a given concrete type and
//     MUST NOT depend on instance state.
//   - The implementation MUST tolerate being called on a zero value.
//   - A TypeName promoted unchanged from an embedded field is ignored, so a
//     struct embedding a named type gets its own default name.
//
// # Usage
//
//	type Fireball struct{ Spell }
//
//	func (Fireball) TypeName() string { return "Spells.Fireball" }
type TypeNamer interface {
	// TypeName returns the fully qualified, space-free name of the type.
	TypeName() string
}

// UnitNamer lets a concrete type choose the code unit it is registered in.
// The same rules as TypeNamer apply, except that a TypeUnit promoted from an
// embedded field is inherited. Explicit Meta.Unit wins.
type UnitNamer interface {
	// TypeUnit returns the space-free code unit name of the type.
	TypeUnit() string
}

// DisplayNamer supplies an optional human-readable name for a type, used by
// tooling when presenting a choice of concrete types.
//
// Display names are free-form and MAY contain spaces; they never take part
// in identifiers. An empty return value means "no override", as does a
// DisplayName promoted unchanged from an embedded field. Explicit
// Meta.DisplayName wins.
type DisplayNamer interface {
	// DisplayName returns the human-readable name of the type.
	DisplayName() string
}
