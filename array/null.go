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
	"strings"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/cdata"
	"github.com/xtensor-stack/xparrow/memory"
)

// Null is the layout of format "n": no buffers, every element null.
type Null struct {
	array
}

// NewNull builds an owning null array of n elements.
func NewNull(mem memory.Allocator, n int) *Null {
	p, err := makeProxy(mem, xparrow.FormatNull, n, n, nil, nil)
	if err != nil {
		panic(err) // no failing input exists
	}
	a, _ := NewNullData(p)
	return a
}

// NewNullData wraps a proxy with format "n".
func NewNullData(data *cdata.Proxy) (*Null, error) {
	if err := expectFormat(data, xparrow.FormatNull); err != nil {
		return nil, err
	}
	a := &Null{}
	a.setData(data)
	return a, nil
}

func (a *Null) setData(data *cdata.Proxy) {
	a.array.setData(data)
	a.nullBitmapBytes = nil
	data.SetNullN(data.Len())
}

// IsNull always reports true for a null array.
func (a *Null) IsNull(i int) bool {
	a.boundsCheck(i)
	return true
}

func (a *Null) IsValid(i int) bool { return !a.IsNull(i) }

func (a *Null) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		o.WriteString("(null)")
	}
	o.WriteString("]")
	return o.String()
}

var _ xparrow.Array = (*Null)(nil)
