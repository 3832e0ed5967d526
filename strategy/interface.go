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

package strategy

import (
	"reflect"

	"dirpx.dev/srx/apis"
)

// NewInterfaceStrategy creates an apis.Strategy for interface base types.
func NewInterfaceStrategy() apis.Strategy {
	return &interfaceStrategy{}
}

// interfaceStrategy matches every concrete type whose value or pointer
// implements the base interface.
type interfaceStrategy struct{}

// Ensure interfaceStrategy implements apis.Strategy.
var _ apis.Strategy = (*interfaceStrategy)(nil)

// Applies reports whether base is an interface type.
func (*interfaceStrategy) Applies(base reflect.Type) bool {
	return base != nil && base.Kind() == reflect.Interface
}

// Compatible reports whether t (or *t) implements base.
// The interface itself and other interfaces are never compatible.
func (*interfaceStrategy) Compatible(t, base reflect.Type) bool {
	if t == nil || base == nil || t == base || t.Kind() == reflect.Interface {
		return false
	}
	return t.Implements(base) || reflect.PointerTo(t).Implements(base)
}
