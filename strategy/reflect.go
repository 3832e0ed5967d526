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
	"sync"

	"dirpx.dev/srx/apis"
	uref "dirpx.dev/srx/utils/reflect"
)

// names holds the default naming of one type.
type names struct {
	path    string
	unit    string
	display string
}

// typeNameCache caches default names by type.
var typeNameCache sync.Map // key: reflect.Type, val: names

// Path returns the default fully qualified name of t: TypeName() if the type
// declares apis.TypeNamer, otherwise "<package path>.<type name>". A
// TypeName promoted unchanged from an embedded field does not count.
func Path(t reflect.Type) string {
	return byType(t).path
}

// Unit returns the default code unit of t: TypeUnit() if the type implements
// apis.UnitNamer, otherwise its package path. Unlike the other names, a unit
// promoted from an embedded field is inherited.
func Unit(t reflect.Type) string {
	return byType(t).unit
}

// DisplayName returns DisplayName() if the type declares apis.DisplayNamer,
// otherwise "". A DisplayName promoted unchanged from an embedded field does
// not count.
func DisplayName(t reflect.Type) string {
	return byType(t).display
}

// byType resolves the default names for t with memoization.
func byType(t reflect.Type) names {
	if t == nil {
		return names{}
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(names)
	}

	n := names{
		path: uref.QualifiedName(t),
		unit: t.PkgPath(),
	}
	if uref.IsConcrete(t) {
		if s, ok := own(t, typeName); ok {
			n.path = s
		}
		if s, ok := namer(t, typeUnit); ok {
			n.unit = s
		}
		if s, ok := own(t, displayName); ok {
			n.display = s
		}
	}

	typeNameCache.Store(t, n)
	return n
}

func typeName(v any) (string, bool) {
	n, ok := v.(apis.TypeNamer)
	if !ok {
		return "", false
	}
	return n.TypeName(), true
}

func typeUnit(v any) (string, bool) {
	n, ok := v.(apis.UnitNamer)
	if !ok {
		return "", false
	}
	return n.TypeUnit(), true
}

func displayName(v any) (string, bool) {
	n, ok := v.(apis.DisplayNamer)
	if !ok {
		return "", false
	}
	return n.DisplayName(), true
}

// namer calls get on the zero value of t. A method promoted through a nil
// embedded pointer may panic; that counts as no value.
func namer(t reflect.Type, get func(any) (string, bool)) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	return get(uref.Zero(t))
}

// own is namer restricted to values t declares itself. A value equal to the
// one an embedded field reports is promoted, not declared.
func own(t reflect.Type, get func(any) (string, bool)) (string, bool) {
	s, ok := namer(t, get)
	if !ok || t.Kind() != reflect.Struct {
		return s, ok
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ps, pok := namer(ft, get); pok && ps == s {
			return "", false
		}
	}
	return s, true
}
