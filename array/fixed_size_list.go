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

// FixedSizeList is the layout of format "+w:<N>": no offsets buffer, every
// element is the range [i*N, i*N+N) of the flat child.
type FixedSizeList struct {
	listBase
	n int
}

// NewFixedSizeListFromParts builds an owning fixed-size-list array of arity
// n over a flat child whose length must be a multiple of n. Ownership of
// the flat child moves into the list.
func NewFixedSizeListFromParts(mem memory.Allocator, n int, values xparrow.Array, validity *bitutil.Bitmap) (*FixedSizeList, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: fixed size list arity %d", xparrow.ErrInvalidFormat, n)
	}
	if values.Len()%n != 0 {
		return nil, fmt.Errorf("%w: flat child length %d not a multiple of %d", xparrow.ErrShapeMismatch, values.Len(), n)
	}
	size := values.Len() / n
	vb, err := bitutil.EnsureValidity(size, validity)
	if err != nil {
		return nil, err
	}
	format := fmt.Sprintf("%s%d", xparrow.FormatFixedSizeListPrefix, n)
	buffers := []*memory.Buffer{bitmapBuffer(mem, vb)}
	p, err := makeProxy(mem, format, size, vb.NullN(), buffers, []childField{{array: values}})
	if err != nil {
		return nil, err
	}
	return NewFixedSizeListData(p)
}

// NewFixedSizeListData wraps a proxy with format "+w:<N>". The arity is
// parsed out of the format suffix; a malformed suffix is ErrInvalidFormat.
func NewFixedSizeListData(data *cdata.Proxy) (*FixedSizeList, error) {
	n, err := xparrow.FixedSizeListArity(data.Format())
	if err != nil {
		return nil, err
	}
	a := &FixedSizeList{n: n}
	if err := a.listBase.setData(data); err != nil {
		return nil, err
	}
	if n > 0 && a.values.Len() < (data.Len()+data.Offset())*n {
		return nil, fmt.Errorf("%w: flat child holds %d elements, need %d", xparrow.ErrShapeMismatch, a.values.Len(), (data.Len()+data.Offset())*n)
	}
	return a, nil
}

// N returns the arity of the list elements.
func (a *FixedSizeList) N() int { return a.n }

func (a *FixedSizeList) offsetRange(i int) (int64, int64) {
	j := int64(a.data.Offset()+i) * int64(a.n)
	return j, j + int64(a.n)
}

// Value returns the list element at index i as a range over the flat
// child.
func (a *FixedSizeList) Value(i int) ListValue {
	a.boundsCheck(i)
	return listValueAt(a, i)
}

func (a *FixedSizeList) String() string { return listString(a) }

var (
	_ xparrow.Array = (*FixedSizeList)(nil)
	_ listLayout    = (*FixedSizeList)(nil)
)
