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

import "errors"

// Sentinel errors for the failure modes of this module. Callers test for
// them with errors.Is; concrete failures wrap these with context.
var (
	// ErrInvalidFormat reports a malformed format tag or suffix.
	ErrInvalidFormat = errors.New("xparrow: invalid format")
	// ErrUnsupportedFormat reports a well-formed format tag with no layout
	// implemented for it.
	ErrUnsupportedFormat = errors.New("xparrow: unsupported format")
	// ErrShapeMismatch reports buffers, offsets, sizes, validity or children
	// whose lengths disagree with the declared shape.
	ErrShapeMismatch = errors.New("xparrow: shape mismatch")
	// ErrBadAccess reports reading the value of a null element or indexing
	// past the end of an array. It is raised by panicking: such accesses are
	// programmer error.
	ErrBadAccess = errors.New("xparrow: bad access")
	// ErrDoubleRelease reports a release of an already-released descriptor.
	ErrDoubleRelease = errors.New("xparrow: double release")
)
