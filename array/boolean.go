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

// Boolean is the layout of format "b": values bit-packed in buffer 1.
type Boolean struct {
	array
	values []byte
}

// NewBooleanFromSlice builds an owning boolean array. A nil validity means
// all elements are valid.
func NewBooleanFromSlice(mem memory.Allocator, values []bool, validity *bitutil.Bitmap) (*Boolean, error) {
	vb, err := bitutil.EnsureValidity(len(values), validity)
	if err != nil {
		return nil, err
	}
	packed := bitutil.NewBitmap(len(values), false)
	for i, v := range values {
		if v {
			packed.Set(i, true)
		}
	}
	buffers := []*memory.Buffer{bitmapBuffer(mem, vb), bitmapBuffer(mem, packed)}
	p, err := makeProxy(mem, xparrow.FormatBoolean, len(values), vb.NullN(), buffers, nil)
	if err != nil {
		return nil, err
	}
	return NewBooleanData(p)
}

// NewBooleanData wraps a proxy with format "b".
func NewBooleanData(data *cdata.Proxy) (*Boolean, error) {
	if err := expectFormat(data, xparrow.FormatBoolean); err != nil {
		return nil, err
	}
	if int64(len(data.Buffer(1)))*8 < int64(data.Len()+data.Offset()) {
		return nil, fmt.Errorf("%w: boolean value buffer holds %d bits, need %d", xparrow.ErrShapeMismatch, len(data.Buffer(1))*8, data.Len()+data.Offset())
	}
	a := &Boolean{}
	a.setData(data)
	return a, nil
}

func (a *Boolean) setData(data *cdata.Proxy) {
	a.array.setData(data)
	a.values = data.Buffer(1)
}

// Value returns the bool at index i. It panics with ErrBadAccess when out
// of range; a null element reads as false.
func (a *Boolean) Value(i int) bool {
	a.boundsCheck(i)
	return bitutil.BitIsSet(a.values, a.data.Offset()+i)
}

// Get returns the element at index i with its validity.
func (a *Boolean) Get(i int) xparrow.Nullable[bool] {
	if a.IsNull(i) {
		return xparrow.Null[bool]()
	}
	return xparrow.Some(a.Value(i))
}

func (a *Boolean) String() string {
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

var _ xparrow.Array = (*Boolean)(nil)
