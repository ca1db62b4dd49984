// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xparrow

import "fmt"

// Nullable pairs a value with a validity indicator, in the shape of the
// database/sql Null* types. The zero Nullable is null.
type Nullable[T any] struct {
	Val   T
	Valid bool
}

// Some returns a valid Nullable holding v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Val: v, Valid: true} }

// Null returns a null Nullable of type T.
func Null[T any]() Nullable[T] { return Nullable[T]{} }

// HasValue reports whether the value is present.
func (n Nullable[T]) HasValue() bool { return n.Valid }

// Value returns the held value. It panics with ErrBadAccess when the value
// is null.
func (n Nullable[T]) Value() T {
	if !n.Valid {
		panic(fmt.Errorf("%w: Value() on null", ErrBadAccess))
	}
	return n.Val
}

// Get returns the held value and its validity, comma-ok style.
func (n Nullable[T]) Get() (T, bool) { return n.Val, n.Valid }

// Interface returns the held value as an any, which is nil when null.
func (n Nullable[T]) Interface() any {
	if !n.Valid {
		return nil
	}
	return n.Val
}

func (n Nullable[T]) String() string {
	if !n.Valid {
		return "(null)"
	}
	return fmt.Sprintf("%v", n.Val)
}

// NullableValue is the type-erased view of a Nullable, used by the builder
// to detect null-carrying inputs of any element type.
type NullableValue interface {
	HasValue() bool
	Interface() any
}

var _ NullableValue = Nullable[int]{}
