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

// Array is the type-erased handle over a concrete layout. It exposes the
// operations shared by every layout; element access is recovered through the
// concrete type, which only the owning layout needs.
type Array interface {
	// Format returns the format tag describing the layout.
	Format() string

	// Len returns the number of elements in the array.
	Len() int

	// NullN returns the number of null elements in the array.
	NullN() int

	// IsNull reports whether element i is null.
	IsNull(i int) bool

	// IsValid reports whether element i is not null.
	IsValid(i int) bool

	// Clone returns a deep copy of the array. The copy owns freshly
	// allocated descriptors and buffers and never aliases the receiver's.
	Clone() Array

	// Release releases the descriptor subtree owned by the array, exactly
	// once. Releasing a borrowed (view-backed) array is a no-op.
	Release()
}
