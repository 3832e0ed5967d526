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

// Package identifier implements the serialized form of a type reference:
// a code unit and a fully qualified type name separated by one space,
//
//	"<unit> <name>"
//
// Neither token may contain spaces; there is no escaping.
package identifier

import (
	"strings"

	"dirpx.dev/srx/apis"
)

// Identifier is a parsed type reference.
type Identifier struct {
	Unit string
	Name string
}

// String returns the serialized "<unit> <name>" form.
func (id Identifier) String() string {
	return Format(id.Unit, id.Name)
}

// Format serializes a unit and a type name.
func Format(unit, name string) string {
	return unit + apis.IdentifierSeparator + name
}

// Of returns the identifier of a registered entry.
func Of(e apis.Entry) Identifier {
	return Identifier{Unit: e.Unit, Name: e.Name}
}

// Parse splits s into its unit and name tokens.
//
// An empty or blank s is an invalid argument. Anything other than exactly
// two tokens separated by a single space is malformed.
func Parse(s string) (Identifier, error) {
	if strings.TrimSpace(s) == "" {
		return Identifier{}, apis.NewInvalidArgumentError("identifier", "empty")
	}
	parts := strings.Split(s, apis.IdentifierSeparator)
	switch {
	case len(parts) < 2:
		return Identifier{}, apis.NewMalformedIdentifierError(s, "want \"<unit> <name>\", got one token")
	case len(parts) > 2:
		return Identifier{}, apis.NewMalformedIdentifierError(s, "want exactly two space-separated tokens")
	case parts[0] == "" || parts[1] == "":
		return Identifier{}, apis.NewMalformedIdentifierError(s, "empty token")
	}
	return Identifier{Unit: parts[0], Name: parts[1]}, nil
}
