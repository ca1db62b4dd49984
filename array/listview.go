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

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/cdata"
	"github.com/xtensor-stack/xparrow/memory"
)

// ListView is the layout of format "+vl": separate 32-bit offsets and sizes
// buffers over a flat child. Ranges may overlap or appear out of order; no
// prefix-sum invariant holds.
type ListView struct {
	listBase
	offsets []int32
	sizes   []int32
}

// LargeListView is the layout of format "+vL", with 64-bit offsets and
// sizes.
type LargeListView struct {
	listBase
	offsets []int64
	sizes   []int64
}

func newListViewProxy[O int32 | int64](mem memory.Allocator, format string, values xparrow.Array, offsets, sizes []O, validity *bitutil.Bitmap) (*cdata.Proxy, error) {
	if len(offsets) != len(sizes) {
		return nil, fmt.Errorf("%w: %d offsets and %d sizes", xparrow.ErrShapeMismatch, len(offsets), len(sizes))
	}
	size := len(sizes)
	for i := range offsets {
		if offsets[i] < 0 || sizes[i] < 0 || int64(offsets[i])+int64(sizes[i]) > int64(values.Len()) {
			return nil, fmt.Errorf("%w: range [%d, %d+%d) outside flat child of length %d", xparrow.ErrShapeMismatch, offsets[i], offsets[i], sizes[i], values.Len())
		}
	}
	vb, err := bitutil.EnsureValidity(size, validity)
	if err != nil {
		return nil, err
	}
	buffers := []*memory.Buffer{bitmapBuffer(mem, vb), sliceBuffer(mem, offsets), sliceBuffer(mem, sizes)}
	return makeProxy(mem, format, size, vb.NullN(), buffers, []childField{{array: values}})
}

// NewListViewFromParts builds an owning list-view array from a flat child
// and parallel offsets/sizes buffers. Ownership of the flat child moves
// into the view.
func NewListViewFromParts(mem memory.Allocator, values xparrow.Array, offsets, sizes []int32, validity *bitutil.Bitmap) (*ListView, error) {
	p, err := newListViewProxy(mem, xparrow.FormatListView, values, offsets, sizes, validity)
	if err != nil {
		return nil, err
	}
	return NewListViewData(p)
}

// NewLargeListViewFromParts is NewListViewFromParts with 64-bit buffers.
func NewLargeListViewFromParts(mem memory.Allocator, values xparrow.Array, offsets, sizes []int64, validity *bitutil.Bitmap) (*LargeListView, error) {
	p, err := newListViewProxy(mem, xparrow.FormatLargeListView, values, offsets, sizes, validity)
	if err != nil {
		return nil, err
	}
	return NewLargeListViewData(p)
}

// NewListViewData wraps a proxy with format "+vl".
func NewListViewData(data *cdata.Proxy) (*ListView, error) {
	if err := expectFormat(data, xparrow.FormatListView); err != nil {
		return nil, err
	}
	a := &ListView{}
	if err := a.setData(data); err != nil {
		return nil, err
	}
	return a, nil
}

// NewLargeListViewData wraps a proxy with format "+vL".
func NewLargeListViewData(data *cdata.Proxy) (*LargeListView, error) {
	if err := expectFormat(data, xparrow.FormatLargeListView); err != nil {
		return nil, err
	}
	a := &LargeListView{}
	if err := a.setData(data); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *ListView) setData(data *cdata.Proxy) error {
	if err := a.listBase.setData(data); err != nil {
		return err
	}
	a.offsets = xparrow.CastFromBytes[int32](data.Buffer(1))
	a.sizes = xparrow.CastFromBytes[int32](data.Buffer(2))
	return checkViewBuffersLen(len(a.offsets), len(a.sizes), data)
}

func (a *LargeListView) setData(data *cdata.Proxy) error {
	if err := a.listBase.setData(data); err != nil {
		return err
	}
	a.offsets = xparrow.CastFromBytes[int64](data.Buffer(1))
	a.sizes = xparrow.CastFromBytes[int64](data.Buffer(2))
	return checkViewBuffersLen(len(a.offsets), len(a.sizes), data)
}

func checkViewBuffersLen(noffsets, nsizes int, data *cdata.Proxy) error {
	need := data.Len() + data.Offset()
	if noffsets < need || nsizes < need {
		return fmt.Errorf("%w: offsets/sizes buffers hold %d/%d entries, need %d", xparrow.ErrShapeMismatch, noffsets, nsizes, need)
	}
	return nil
}

func (a *ListView) offsetRange(i int) (int64, int64) {
	j := a.data.Offset() + i
	return int64(a.offsets[j]), int64(a.offsets[j]) + int64(a.sizes[j])
}

func (a *LargeListView) offsetRange(i int) (int64, int64) {
	j := a.data.Offset() + i
	return a.offsets[j], a.offsets[j] + a.sizes[j]
}

// Value returns the list element at index i as a range over the flat
// child.
func (a *ListView) Value(i int) ListValue {
	a.boundsCheck(i)
	return listValueAt(a, i)
}

// Value returns the list element at index i as a range over the flat
// child.
func (a *LargeListView) Value(i int) ListValue {
	a.boundsCheck(i)
	return listValueAt(a, i)
}

func (a *ListView) String() string { return listString(a) }
func (a *LargeListView) String() string { return listString(a) }

var (
	_ xparrow.Array = (*ListView)(nil)
	_ xparrow.Array = (*LargeListView)(nil)
	_ listLayout    = (*ListView)(nil)
	_ listLayout    = (*LargeListView)(nil)
)
