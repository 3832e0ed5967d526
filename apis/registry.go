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

import "reflect"

// IdentifierSeparator separates the unit and the type name in a serialized
// identifier. Names containing it cannot round-trip and are rejected at
// registration.
const IdentifierSeparator = " "

// Registry is the table of loaded types: every concrete type that may be
// discovered must be registered here first, typically from an init function.
type Registry interface {
	// Register adds the (nearest named) concrete type t. Zero fields of meta
	// are filled with defaults derived from the type.
	// Re-registering the same type with the same metadata is a no-op;
	// conflicting re-registrations return an error.
	Register(t reflect.Type, meta Meta) error
	// Lookup returns the entry registered under (unit, name).
	Lookup(unit, name string) (Entry, bool)
	// LookupType returns the entry for t, if registered.
	LookupType(t reflect.Type) (Entry, bool)
	// Entries returns a snapshot of all entries in registration order.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
}

// Meta holds optional registration overrides.
type Meta struct {
	// Unit is the code unit the type belongs to. Defaults to the package path.
	Unit string
	// Name is the fully qualified type name (the descriptor path).
	// Defaults to "<package path>.<type name>".
	Name string
	// DisplayName is an optional human-readable name.
	DisplayName string
}

// Entry is a single registered type.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Unit is the code unit name.
	Unit string
	// Name is the fully qualified type name.
	Name string
	// DisplayName is the optional override name; empty when absent.
	DisplayName string
}

// Identifier returns the serialized "<unit> <name>" identifier of e.
func (e Entry) Identifier() string {
	return e.Unit + IdentifierSeparator + e.Name
}
