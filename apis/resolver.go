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
	"reflect"
)

// Resolver answers discovery and lookup questions over a Registry.
// Implementations are expected to be concurrency-safe for reads.
type Resolver interface {
	// Base normalizes and validates a base type. The result is the identity
	// discovery results are keyed by.
	Base(t reflect.Type) (reflect.Type, error)

	// Subtypes returns every registered concrete type compatible with base,
	// base itself excluded. The result is not cached.
	Subtypes(base reflect.Type) ([]reflect.Type, error)

	// Resolve returns the type registered under (unit, name).
	Resolve(unit, name string) (reflect.Type, error)

	// Describe builds the descriptor for t.
	Describe(t reflect.Type) Descriptor

	// Config returns the configuration the resolver was built with.
	Config() Config
}
