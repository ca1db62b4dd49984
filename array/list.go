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

	"github.com/JohnCGriffin/overflow"
	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/cdata"
	"github.com/xtensor-stack/xparrow/memory"
)

// ListValue is a non-owning reference to the half-open index range
// [Begin, End) of a list element within the flat child. Its lifetime is
// bounded by the owning list layout.
type ListValue struct {
	values xparrow.Array
	begin  int64
	end    int64
}

// Len returns the number of elements in the list value.
func (v ListValue) Len() int { return int(v.end - v.begin) }

// Begin returns the inclusive start of the range in the flat child.
func (v ListValue) Begin() int64 { return v.begin }

// End returns the exclusive end of the range in the flat child.
func (v ListValue) End() int64 { return v.end }

// Values returns the flat child the range points into.
func (v ListValue) Values() xparrow.Array { return v.values }

// IsNull reports whether the i-th element of the list value is null.
func (v ListValue) IsNull(i int) bool {
	if i < 0 || i >= v.Len() {
		panic(fmt.Errorf("%w: index %d out of range [0, %d)", xparrow.ErrBadAccess, i, v.Len()))
	}
	return v.values.IsNull(int(v.begin) + i)
}

func (v ListValue) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		fmt.Fprintf(o, "%v", elemString(v.values, int(v.begin)+i))
	}
	o.WriteString("]")
	return o.String()
}

// listLayout is the small trait the shared list logic is written against:
// a layout that maps element i to a range of the flat child.
type listLayout interface {
	proxied
	ListValues() xparrow.Array
	offsetRange(i int) (int64, int64)
}

// listBase is embedded by every list layout. It owns the flat child layout,
// built through the factory from the child descriptor.
type listBase struct {
	array
	values xparrow.Array
}

func (a *listBase) setData(data *cdata.Proxy) error {
	a.array.setData(data)
	values, err := MakeFromProxy(data.Child(0))
	if err != nil {
		return err
	}
	a.values = values
	return nil
}

// ListValues returns the flat child holding the concatenated list elements.
func (a *listBase) ListValues() xparrow.Array { return a.values }

func listValueAt(a listLayout, i int) ListValue {
	beg, end := a.offsetRange(i)
	return ListValue{values: a.ListValues(), begin: beg, end: end}
}

func listString(a listLayout) string {
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
		fmt.Fprintf(o, "%v", listValueAt(a, i))
	}
	o.WriteString("]")
	return o.String()
}

// List is the layout of format "+l": one offsets buffer of 32-bit
// boundaries over a flat child.
type List struct {
	listBase
	offsets []int32
}

// LargeList is the layout of format "+L", with 64-bit offsets.
type LargeList struct {
	listBase
	offsets []int64
}

// OffsetsFromSizes32 derives a 32-bit offsets buffer from per-element
// sizes by prefix sum: offsets[0]=0, offsets[k+1]=offsets[k]+sizes[k].
func OffsetsFromSizes32(sizes []int) ([]int32, error) {
	offsets := make([]int32, len(sizes)+1)
	for k, sz := range sizes {
		if sz < 0 {
			return nil, fmt.Errorf("%w: negative list size %d", xparrow.ErrShapeMismatch, sz)
		}
		next, ok := overflow.Add32(offsets[k], int32(sz))
		if !ok || int(int32(sz)) != sz {
			return nil, fmt.Errorf("%w: offsets overflow 32 bits at element %d", xparrow.ErrShapeMismatch, k)
		}
		offsets[k+1] = next
	}
	return offsets, nil
}

// OffsetsFromSizes64 derives a 64-bit offsets buffer from per-element
// sizes.
func OffsetsFromSizes64(sizes []int) ([]int64, error) {
	offsets := make([]int64, len(sizes)+1)
	for k, sz := range sizes {
		if sz < 0 {
			return nil, fmt.Errorf("%w: negative list size %d", xparrow.ErrShapeMismatch, sz)
		}
		next, ok := overflow.Add64(offsets[k], int64(sz))
		if !ok {
			return nil, fmt.Errorf("%w: offsets overflow 64 bits at element %d", xparrow.ErrShapeMismatch, k)
		}
		offsets[k+1] = next
	}
	return offsets, nil
}

func newListProxy[O int32 | int64](mem memory.Allocator, format string, values xparrow.Array, offsets []O, validity *bitutil.Bitmap) (*cdata.Proxy, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: offsets buffer must hold at least the initial 0", xparrow.ErrShapeMismatch)
	}
	size := len(offsets) - 1
	if int64(offsets[size]) > int64(values.Len()) {
		return nil, fmt.Errorf("%w: final offset %d exceeds flat child length %d", xparrow.ErrShapeMismatch, offsets[size], values.Len())
	}
	vb, err := bitutil.EnsureValidity(size, validity)
	if err != nil {
		return nil, err
	}
	buffers := []*memory.Buffer{bitmapBuffer(mem, vb), sliceBuffer(mem, offsets)}
	return makeProxy(mem, format, size, vb.NullN(), buffers, []childField{{array: values}})
}

// NewListFromParts builds an owning list array from a flat child, an
// offsets buffer of len(list)+1 boundaries, and an optional validity
// bitmap. Ownership of the flat child moves into the list.
func NewListFromParts(mem memory.Allocator, values xparrow.Array, offsets []int32, validity *bitutil.Bitmap) (*List, error) {
	p, err := newListProxy(mem, xparrow.FormatList, values, offsets, validity)
	if err != nil {
		return nil, err
	}
	return NewListData(p)
}

// NewLargeListFromParts is NewListFromParts with 64-bit offsets.
func NewLargeListFromParts(mem memory.Allocator, values xparrow.Array, offsets []int64, validity *bitutil.Bitmap) (*LargeList, error) {
	p, err := newListProxy(mem, xparrow.FormatLargeList, values, offsets, validity)
	if err != nil {
		return nil, err
	}
	return NewLargeListData(p)
}

// NewListData wraps a proxy with format "+l".
func NewListData(data *cdata.Proxy) (*List, error) {
	if err := expectFormat(data, xparrow.FormatList); err != nil {
		return nil, err
	}
	a := &List{}
	if err := a.setData(data); err != nil {
		return nil, err
	}
	return a, nil
}

// NewLargeListData wraps a proxy with format "+L".
func NewLargeListData(data *cdata.Proxy) (*LargeList, error) {
	if err := expectFormat(data, xparrow.FormatLargeList); err != nil {
		return nil, err
	}
	a := &LargeList{}
	if err := a.setData(data); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *List) setData(data *cdata.Proxy) error {
	if err := a.listBase.setData(data); err != nil {
		return err
	}
	a.offsets = xparrow.CastFromBytes[int32](data.Buffer(1))
	return checkOffsetsLen(len(a.offsets), data)
}

func (a *LargeList) setData(data *cdata.Proxy) error {
	if err := a.listBase.setData(data); err != nil {
		return err
	}
	a.offsets = xparrow.CastFromBytes[int64](data.Buffer(1))
	return checkOffsetsLen(len(a.offsets), data)
}

// checkOffsetsLen verifies an offsets buffer covers size()+1 boundaries
// past the logical offset.
func checkOffsetsLen(n int, data *cdata.Proxy) error {
	// size()+1 boundaries, even for an empty array: Offsets() always
	// slices one past the last element.
	if n < data.Len()+data.Offset()+1 {
		return fmt.Errorf("%w: offsets buffer holds %d boundaries, need %d", xparrow.ErrShapeMismatch, n, data.Len()+data.Offset()+1)
	}
	return nil
}

func (a *List) offsetRange(i int) (int64, int64) {
	j := a.data.Offset() + i
	return int64(a.offsets[j]), int64(a.offsets[j+1])
}

func (a *LargeList) offsetRange(i int) (int64, int64) {
	j := a.data.Offset() + i
	return a.offsets[j], a.offsets[j+1]
}

// Offsets returns the logical offsets slice, size()+1 boundaries.
func (a *List) Offsets() []int32 {
	off := a.data.Offset()
	return a.offsets[off : off+a.data.Len()+1]
}

// Offsets returns the logical offsets slice, size()+1 boundaries.
func (a *LargeList) Offsets() []int64 {
	off := a.data.Offset()
	return a.offsets[off : off+a.data.Len()+1]
}

// Value returns the list element at index i as a range over the flat
// child.
func (a *List) Value(i int) ListValue {
	a.boundsCheck(i)
	return listValueAt(a, i)
}

// Value returns the list element at index i as a range over the flat
// child.
func (a *LargeList) Value(i int) ListValue {
	a.boundsCheck(i)
	return listValueAt(a, i)
}

func (a *List) String() string { return listString(a) }
func (a *LargeList) String() string { return listString(a) }

var (
	_ xparrow.Array = (*List)(nil)
	_ xparrow.Array = (*LargeList)(nil)
	_ listLayout    = (*List)(nil)
	_ listLayout    = (*LargeList)(nil)
)
