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
	"fmt"
	"strings"
)

// Config carries read-only discovery knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits pointer unwrapping depth when normalizing a type
	// (e.g. **T -> T). Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// Order selects how discovered types are ordered.
	Order Order

	// CachePolicy selects how discovery results are retained.
	CachePolicy CachePolicy

	// EmbedDepth limits how many levels of struct embedding are followed
	// when searching for a struct base type.
	EmbedDepth int
}

// Order controls the order of discovered types and therefore of descriptors.
type Order int

const (
	// OrderPath sorts discovered types by their path. Stable across runs.
	OrderPath Order = iota
	// OrderRegistration keeps the order in which types were registered.
	OrderRegistration
)

// String returns the textual form of o.
func (o Order) String() string {
	switch o {
	case OrderPath:
		return "path"
	case OrderRegistration:
		return "registration"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder parses the textual form produced by Order.String.
// Matching is case-insensitive.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "path":
		return OrderPath, nil
	case "registration":
		return OrderRegistration, nil
	default:
		return 0, &InvalidArgumentError{Arg: "order", Message: fmt.Sprintf("unknown order %q", s)}
	}
}
