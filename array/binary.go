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

// varBinary is the variable-size binary layout shared by String ("u") and
// Binary ("z"): a 32-bit offsets buffer delimiting byte ranges of a raw
// data buffer.
type varBinary struct {
	array
	offsets []int32
	bytes   []byte
}

func (a *varBinary) setData(data *cdata.Proxy) error {
	a.array.setData(data)
	a.offsets = xparrow.CastFromBytes[int32](data.Buffer(1))
	a.bytes = data.Buffer(2)
	if err := checkOffsetsLen(len(a.offsets), data); err != nil {
		return err
	}
	if data.Len() > 0 {
		last := a.offsets[data.Offset()+data.Len()]
		if int(last) > len(a.bytes) {
			return fmt.Errorf("%w: final offset %d exceeds data buffer length %d", xparrow.ErrShapeMismatch, last, len(a.bytes))
		}
	}
	return nil
}

func (a *varBinary) valueBytes(i int) []byte {
	a.boundsCheck(i)
	j := a.data.Offset() + i
	return a.bytes[a.offsets[j]:a.offsets[j+1]]
}

// ValueLen returns the byte length of element i.
func (a *varBinary) ValueLen(i int) int {
	a.boundsCheck(i)
	j := a.data.Offset() + i
	return int(a.offsets[j+1] - a.offsets[j])
}

// ValueOffsets returns the [begin, end) byte range of element i.
func (a *varBinary) ValueOffsets(i int) (int64, int64) {
	a.boundsCheck(i)
	j := a.data.Offset() + i
	return int64(a.offsets[j]), int64(a.offsets[j+1])
}

func newVarBinaryProxy(mem memory.Allocator, format string, values [][]byte, validity *bitutil.Bitmap) (*cdata.Proxy, error) {
	vb, err := bitutil.EnsureValidity(len(values), validity)
	if err != nil {
		return nil, err
	}
	sizes := make([]int, len(values))
	for i, v := range values {
		sizes[i] = len(v)
	}
	offsets, err := OffsetsFromSizes32(sizes)
	if err != nil {
		return nil, err
	}
	data := memory.NewResizableBuffer(mem)
	data.Resize(int(offsets[len(offsets)-1]))
	pos := 0
	for _, v := range values {
		pos += copy(data.Bytes()[pos:], v)
	}
	buffers := []*memory.Buffer{bitmapBuffer(mem, vb), sliceBuffer(mem, offsets), data}
	return makeProxy(mem, format, len(values), vb.NullN(), buffers, nil)
}

// String is the layout of format "u": UTF-8 byte ranges delimited by a
// 32-bit offsets buffer.
type String struct {
	varBinary
}

// Binary is the layout of format "z": raw byte ranges delimited by a
// 32-bit offsets buffer.
type Binary struct {
	varBinary
}

// NewStringFromSlice builds an owning string array. A null element
// contributes a zero-length byte range.
func NewStringFromSlice(mem memory.Allocator, values []string, validity *bitutil.Bitmap) (*String, error) {
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = []byte(v)
	}
	p, err := newVarBinaryProxy(mem, xparrow.FormatString, raw, validity)
	if err != nil {
		return nil, err
	}
	return NewStringData(p)
}

// NewBinaryFromSlice builds an owning binary array.
func NewBinaryFromSlice(mem memory.Allocator, values [][]byte, validity *bitutil.Bitmap) (*Binary, error) {
	p, err := newVarBinaryProxy(mem, xparrow.FormatBinary, values, validity)
	if err != nil {
		return nil, err
	}
	return NewBinaryData(p)
}

// NewStringData wraps a proxy with format "u".
func NewStringData(data *cdata.Proxy) (*String, error) {
	if err := expectFormat(data, xparrow.FormatString); err != nil {
		return nil, err
	}
	a := &String{}
	if err := a.setData(data); err != nil {
		return nil, err
	}
	return a, nil
}

// NewBinaryData wraps a proxy with format "z".
func NewBinaryData(data *cdata.Proxy) (*Binary, error) {
	if err := expectFormat(data, xparrow.FormatBinary); err != nil {
		return nil, err
	}
	a := &Binary{}
	if err := a.setData(data); err != nil {
		return nil, err
	}
	return a, nil
}

// Value returns the string at index i.
func (a *String) Value(i int) string { return string(a.valueBytes(i)) }

// Get returns the element at index i with its validity.
func (a *String) Get(i int) xparrow.Nullable[string] {
	if a.IsNull(i) {
		return xparrow.Null[string]()
	}
	return xparrow.Some(a.Value(i))
}

// Value returns the bytes of the element at index i. The slice points into
// the array's data buffer and must not be mutated.
func (a *Binary) Value(i int) []byte { return a.valueBytes(i) }

// Get returns the element at index i with its validity.
func (a *Binary) Get(i int) xparrow.Nullable[[]byte] {
	if a.IsNull(i) {
		return xparrow.Null[[]byte]()
	}
	return xparrow.Some(a.Value(i))
}

func (a *String) String() string {
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
		fmt.Fprintf(o, "%q", a.Value(i))
	}
	o.WriteString("]")
	return o.String()
}

func (a *Binary) String() string {
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
		fmt.Fprintf(o, "%x", a.Value(i))
	}
	o.WriteString("]")
	return o.String()
}

var (
	_ xparrow.Array = (*String)(nil)
	_ xparrow.Array = (*Binary)(nil)
)
