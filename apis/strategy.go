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

// Strategy decides type compatibility for one family of base types.
// A Resolver chains multiple strategies in order (e.g., Interface -> Embed);
// the first one that applies to a base type decides for it.
type Strategy interface {
	// Applies reports whether this strategy handles the base type.
	Applies(base reflect.Type) bool

	// Compatible reports whether the concrete type t is a strict subtype of
	// base. base itself is never compatible.
	Compatible(t, base reflect.Type) bool
}
