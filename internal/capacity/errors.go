// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package capacity

import "fmt"

// UnresolvedCapacityError reports a section no registered capacity applies
// to. Type or Method may be empty when the corresponding key was absent or
// not a compile-time literal.
type UnresolvedCapacityError struct {
	Type   string
	Method string
}

func (e *UnresolvedCapacityError) Error() string {
	return fmt.Sprintf("no capacity applies to resource type %q with method %q", e.Type, e.Method)
}

// MissingEndpointError reports a capacity build that found no resolved
// remote-endpoint reference in its section.
type MissingEndpointError struct {
	Capacity string
}

func (e *MissingEndpointError) Error() string {
	return fmt.Sprintf("capacity %q: required endpoint reference is missing", e.Capacity)
}

// MissingFieldError reports an absent capacity-specific required field,
// such as an identifier or payload expression.
type MissingFieldError struct {
	Capacity string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("capacity %q: required field %q is missing", e.Capacity, e.Field)
}
