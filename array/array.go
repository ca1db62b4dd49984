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

// Package array provides the concrete layouts over a descriptor proxy, the
// format-string factory and the generic builder.
package array

import (
	"fmt"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/cdata"
)

// array is the base embedded in every layout. It interprets buffer 0 as the
// validity bitmap, honoring the proxy's logical offset.
type array struct {
	data            *cdata.Proxy
	nullBitmapBytes []byte
}

func (a *array) setData(data *cdata.Proxy) {
	a.data = data
	a.nullBitmapBytes = nil
	if data.NumBuffers() > 0 {
		a.nullBitmapBytes = data.Buffer(0)
	}
}

// Data returns the proxy backing the layout.
func (a *array) Data() *cdata.Proxy { return a.data }

// Format returns the format tag of the layout.
func (a *array) Format() string { return a.data.Format() }

// Len returns the number of elements in the array.
func (a *array) Len() int { return a.data.Len() }

// Offset returns the logical offset into the physical buffers.
func (a *array) Offset() int { return a.data.Offset() }

// NullN returns the number of null elements.
func (a *array) NullN() int { return a.data.NullN() }

// IsNull reports whether element i is null.
func (a *array) IsNull(i int) bool {
	a.boundsCheck(i)
	return len(a.nullBitmapBytes) != 0 && bitutil.BitIsNotSet(a.nullBitmapBytes, a.data.Offset()+i)
}

// IsValid reports whether element i is not null.
func (a *array) IsValid(i int) bool { return !a.IsNull(i) }

// SetValid sets the validity of element i in place, keeping the cached null
// count in step. The validity bitmap must be present to record a null.
func (a *array) SetValid(i int, valid bool) {
	a.boundsCheck(i)
	if len(a.nullBitmapBytes) == 0 {
		if valid {
			return
		}
		panic(fmt.Errorf("%w: no validity bitmap to record a null", xparrow.ErrBadAccess))
	}
	j := a.data.Offset() + i
	was := bitutil.BitIsSet(a.nullBitmapBytes, j)
	if was == valid {
		return
	}
	bitutil.SetBitTo(a.nullBitmapBytes, j, valid)
	if valid {
		a.data.SetNullN(a.data.NullN() - 1)
	} else {
		a.data.SetNullN(a.data.NullN() + 1)
	}
}

// Clone deep-copies the proxy subtree and rebuilds a layout over the copy.
// Raw offset and value slices are re-derived from the fresh buffers, never
// aliased from the receiver.
func (a *array) Clone() xparrow.Array {
	out, err := MakeFromProxy(a.data.Clone())
	if err != nil {
		panic(err) // the receiver was already validated
	}
	return out
}

// Release releases the owned descriptor subtree. Releasing a view-backed
// layout is a no-op; a second release of an owning layout panics with
// ErrDoubleRelease.
func (a *array) Release() {
	if err := a.data.Release(); err != nil {
		panic(err)
	}
	a.nullBitmapBytes = nil
}

func (a *array) boundsCheck(i int) {
	if i < 0 || i >= a.data.Len() {
		panic(fmt.Errorf("%w: index %d out of range [0, %d)", xparrow.ErrBadAccess, i, a.data.Len()))
	}
}
