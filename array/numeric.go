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

package array

import (
	"fmt"
	"strings"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/cdata"
	"github.com/xtensor-stack/xparrow/memory"
)

// Number is the layout of the fixed-width scalar formats: the value buffer
// is a flat contiguous array of T and access is O(1).
type Number[T xparrow.FixedWidth] struct {
	array
	values []T
}

// NewNumberFromSlice builds an owning primitive array from values. A nil
// validity means all elements are valid.
func NewNumberFromSlice[T xparrow.FixedWidth](mem memory.Allocator, values []T, validity *bitutil.Bitmap) (*Number[T], error) {
	format := xparrow.FormatFor[T]()
	if format == "" {
		return nil, fmt.Errorf("%w: no primitive format for %T", xparrow.ErrUnsupportedFormat, values)
	}
	vb, err := bitutil.EnsureValidity(len(values), validity)
	if err != nil {
		return nil, err
	}
	buffers := []*memory.Buffer{bitmapBuffer(mem, vb), sliceBuffer(mem, values)}
	p, err := makeProxy(mem, format, len(values), vb.NullN(), buffers, nil)
	if err != nil {
		return nil, err
	}
	return NewNumberData[T](p)
}

// NewNumberData wraps a proxy whose format matches T.
func NewNumberData[T xparrow.FixedWidth](data *cdata.Proxy) (*Number[T], error) {
	if err := expectFormat(data, xparrow.FormatFor[T]()); err != nil {
		return nil, err
	}
	width, err := xparrow.PrimitiveWidth(data.Format())
	if err != nil {
		return nil, err
	}
	if len(data.Buffer(1)) < (data.Len()+data.Offset())*width {
		return nil, fmt.Errorf("%w: value buffer holds %d bytes, need %d", xparrow.ErrShapeMismatch, len(data.Buffer(1)), (data.Len()+data.Offset())*width)
	}
	a := &Number[T]{}
	a.setData(data)
	return a, nil
}

func (a *Number[T]) setData(data *cdata.Proxy) {
	a.array.setData(data)
	a.values = xparrow.CastFromBytes[T](data.Buffer(1))
}

// Value returns the element at index i. It panics with ErrBadAccess when
// out of range; a null element reads as the zero value.
func (a *Number[T]) Value(i int) T {
	a.boundsCheck(i)
	return a.values[a.data.Offset()+i]
}

// Values returns the logical value slice, offset applied.
func (a *Number[T]) Values() []T {
	off := a.data.Offset()
	return a.values[off : off+a.data.Len()]
}

// rawValue returns the native bytes of element i. Two instantiations with
// the same format hold identical representations (int aliases int64, uint
// aliases uint64), so the bytes compare directly without naming T.
func (a *Number[T]) rawValue(i int) []byte {
	a.boundsCheck(i)
	off := a.data.Offset() + i
	return xparrow.CastToBytes(a.values[off : off+1])
}

// rawValuer is satisfied by every Number instantiation.
type rawValuer interface {
	xparrow.Array
	rawValue(i int) []byte
}

// Get returns the element at index i with its validity.
func (a *Number[T]) Get(i int) xparrow.Nullable[T] {
	if a.IsNull(i) {
		return xparrow.Null[T]()
	}
	return xparrow.Some(a.Value(i))
}

// Set overwrites the value at index i in place. The element's validity is
// untouched.
func (a *Number[T]) Set(i int, v T) {
	a.boundsCheck(i)
	a.values[a.data.Offset()+i] = v
}

func (a *Number[T]) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		if a.IsNull(i) {
			o.WriteString("(null)")
			continue
		}
		fmt.Fprintf(o, "%v", a.Value(i))
	}
	o.WriteString("]")
	return o.String()
}

var _ xparrow.Array = (*Number[int32])(nil)
