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

// Descriptor is the exposed metadata for one concrete type.
type Descriptor struct {
	// Type is the concrete type.
	Type reflect.Type
	// Path is the stable fully qualified name used for serialization.
	Path string
	// DisplayName is the optional human-readable name; empty when absent.
	DisplayName string
}

// HasDisplayName reports whether the type declared a display name.
func (d Descriptor) HasDisplayName() bool {
	return d.DisplayName != ""
}

// Label returns DisplayName if present, otherwise Path.
func (d Descriptor) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Path
}
