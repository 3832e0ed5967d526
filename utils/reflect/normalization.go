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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/srx/apis"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func, []T, any).
	ErrReflectTypeNotNamed = errors.New("reflect: type is not named")
)

// Normalize unwraps pointers (at most cfg.MaxUnwrap levels) and returns the
// nearest named type, or an error if none is found.
//
// Unwrapping policy:
//   - ptr     -> Elem()
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// Containers other than pointers are never unwrapped: a []T is not a T.
// A MaxUnwrap of zero disables unwrapping.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}

	for i := 0; t.Kind() == reflect.Pointer && t.Name() == "" && i < cfg.MaxUnwrap; i++ {
		t = t.Elem()
	}

	if t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// IsConcrete reports whether t is a named, non-interface type.
func IsConcrete(t reflect.Type) bool {
	return t != nil && t.Name() != "" && t.Kind() != reflect.Interface
}

// QualifiedName returns "<package path>.<type name>" for a named type and
// the bare name for predeclared types.
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if p := t.PkgPath(); p != "" {
		return p + "." + t.Name()
	}
	return t.Name()
}

// Zero returns a value of type t suitable for calling type-level methods:
// a pointer to a zero T when *T has methods T lacks, otherwise a zero T.
func Zero(t reflect.Type) any {
	if t == nil {
		return nil
	}
	if t.Kind() != reflect.Interface && reflect.PointerTo(t).NumMethod() > t.NumMethod() {
		return reflect.New(t).Interface()
	}
	return reflect.Zero(t).Interface()
}
