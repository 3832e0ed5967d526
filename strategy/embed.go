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
	"dirpx.dev/srx/config"
)

// NewEmbedStrategy creates an apis.Strategy for struct base types.
// maxDepth bounds the embedding chain that is followed; a non-positive value
// uses config.DefaultEmbedDepth.
func NewEmbedStrategy(maxDepth int) apis.Strategy {
	if maxDepth <= 0 {
		maxDepth = config.DefaultEmbedDepth
	}
	return &embedStrategy{maxDepth: maxDepth}
}

// embedStrategy treats a struct that embeds the base struct, directly or
// through other embedded structs, as its descendant.
type embedStrategy struct {
	maxDepth int
}

// Ensure embedStrategy implements apis.Strategy.
var _ apis.Strategy = (*embedStrategy)(nil)

// Applies reports whether base is a struct type.
func (*embedStrategy) Applies(base reflect.Type) bool {
	return base != nil && base.Kind() == reflect.Struct
}

// Compatible reports whether t is a struct that embeds base at any depth
// up to maxDepth. base itself is excluded.
func (s *embedStrategy) Compatible(t, base reflect.Type) bool {
	if t == nil || base == nil || t == base || t.Kind() != reflect.Struct {
		return false
	}
	return s.embeds(t, base, 1, map[reflect.Type]struct{}{t: {}})
}

// embeds checks the direct embeddings of t before descending into them.
// seen guards against cycles through embedded pointers.
func (s *embedStrategy) embeds(t, base reflect.Type, depth int, seen map[reflect.Type]struct{}) bool {
	if depth > s.maxDepth {
		return false
	}
	var next []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == base {
			return true
		}
		if ft.Kind() != reflect.Struct {
			continue
		}
		if _, ok := seen[ft]; ok {
			continue
		}
		seen[ft] = struct{}{}
		next = append(next, ft)
	}
	for _, nt := range next {
		if s.embeds(nt, base, depth+1, seen) {
			return true
		}
	}
	return false
}
