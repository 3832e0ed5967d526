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
	"errors"
	"fmt"
)

// Error kinds. Every error produced by srx that belongs to one of these kinds
// matches the corresponding sentinel via errors.Is.
var (
	// ErrInvalidArgument is returned for an absent or empty base type, an
	// empty explicit type list or an empty identifier.
	ErrInvalidArgument = errors.New("srx: invalid argument")

	// ErrTypeNotFound is returned when a well-formed identifier or name does
	// not resolve to any registered type.
	ErrTypeNotFound = errors.New("srx: type not found")

	// ErrMalformedIdentifier is returned when an identifier string lacks the
	// required "<unit> <name>" structure.
	ErrMalformedIdentifier = errors.New("srx: malformed identifier")
)

// InvalidArgumentError reports a rejected argument.
type InvalidArgumentError struct {
	Arg     string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	if e.Arg != "" {
		return fmt.Sprintf("srx: invalid %s: %s", e.Arg, e.Message)
	}
	return fmt.Sprintf("srx: invalid argument: %s", e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// TypeNotFoundError reports a (unit, name) pair with no registered type.
type TypeNotFoundError struct {
	Unit string
	Name string
}

func (e *TypeNotFoundError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("srx: type %q not found", e.Name)
	}
	return fmt.Sprintf("srx: type %q not found in unit %q", e.Name, e.Unit)
}

func (e *TypeNotFoundError) Is(target error) bool {
	return target == ErrTypeNotFound
}

// MalformedIdentifierError reports an identifier that cannot be split into
// a unit and a type name.
type MalformedIdentifierError struct {
	Identifier string
	Reason     string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("srx: malformed identifier %q: %s", e.Identifier, e.Reason)
}

func (e *MalformedIdentifierError) Is(target error) bool {
	return target == ErrMalformedIdentifier
}

// NewInvalidArgumentError creates a new InvalidArgumentError.
func NewInvalidArgumentError(arg, message string) error {
	return &InvalidArgumentError{Arg: arg, Message: message}
}

// NewTypeNotFoundError creates a new TypeNotFoundError.
func NewTypeNotFoundError(unit, name string) error {
	return &TypeNotFoundError{Unit: unit, Name: name}
}

// NewMalformedIdentifierError creates a new MalformedIdentifierError.
func NewMalformedIdentifierError(identifier, reason string) error {
	return &MalformedIdentifierError{Identifier: identifier, Reason: reason}
}

// IsInvalidArgument checks if err is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsTypeNotFound checks if err is a type not found error.
func IsTypeNotFound(err error) bool {
	return errors.Is(err, ErrTypeNotFound)
}

// IsMalformedIdentifier checks if err is a malformed identifier error.
func IsMalformedIdentifier(err error) bool {
	return errors.Is(err, ErrMalformedIdentifier)
}
