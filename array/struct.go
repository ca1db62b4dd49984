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

// Struct is the layout of format "+s": one child array per field, all of
// the struct's logical length. A null struct element leaves its field
// values in place but masked.
type Struct struct {
	array
	fields []xparrow.Array
	names  []string
}

// Field is a named child array handed to NewStructFromParts. The struct
// takes ownership of Array on success.
type Field struct {
	Name  string
	Array xparrow.Array
}

// NewStructFromParts builds an owning struct array from named field
// arrays. Each field must have length n. Ownership of all fields
// transfers on success; on error the caller keeps it.
func NewStructFromParts(mem memory.Allocator, n int, fields []Field, validity *bitutil.Bitmap) (*Struct, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: struct array needs at least one field", xparrow.ErrShapeMismatch)
	}
	children := make([]childField, len(fields))
	for i, f := range fields {
		if f.Array.Len() != n {
			return nil, fmt.Errorf("%w: field %q has length %d, want %d", xparrow.ErrShapeMismatch, f.Name, f.Array.Len(), n)
		}
		children[i] = childField{name: f.Name, array: f.Array}
	}
	vb, err := bitutil.EnsureValidity(n, validity)
	if err != nil {
		return nil, err
	}
	buffers := []*memory.Buffer{bitmapBuffer(mem, vb)}
	p, err := makeProxy(mem, xparrow.FormatStruct, n, vb.NullN(), buffers, children)
	if err != nil {
		return nil, err
	}
	return NewStructData(p)
}

// NewStructData wraps a proxy with format "+s".
func NewStructData(data *cdata.Proxy) (*Struct, error) {
	if err := expectFormat(data, xparrow.FormatStruct); err != nil {
		return nil, err
	}
	a := &Struct{}
	if err := a.setData(data); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Struct) setData(data *cdata.Proxy) error {
	a.array.setData(data)
	a.fields = make([]xparrow.Array, data.NumChildren())
	a.names = make([]string, data.NumChildren())
	for i := range a.fields {
		child := data.Child(i)
		f, err := MakeFromProxy(child)
		if err != nil {
			return err
		}
		if f.Len() < data.Offset()+data.Len() {
			return fmt.Errorf("%w: field %d has length %d, want at least %d", xparrow.ErrShapeMismatch, i, f.Len(), data.Offset()+data.Len())
		}
		a.fields[i] = f
		a.names[i] = child.Name()
	}
	return nil
}

// fieldIndex maps struct element i to the matching index in the field
// arrays. The struct's offset shifts its elements relative to its fields.
func (a *Struct) fieldIndex(i int) int {
	a.boundsCheck(i)
	return a.data.Offset() + i
}

// NumFields returns the number of fields.
func (a *Struct) NumFields() int { return len(a.fields) }

// Field returns the child array of field i.
func (a *Struct) Field(i int) xparrow.Array {
	if i < 0 || i >= len(a.fields) {
		panic(fmt.Errorf("%w: field index %d out of range [0, %d)", xparrow.ErrBadAccess, i, len(a.fields)))
	}
	return a.fields[i]
}

// FieldName returns the name of field i.
func (a *Struct) FieldName(i int) string {
	if i < 0 || i >= len(a.names) {
		panic(fmt.Errorf("%w: field index %d out of range [0, %d)", xparrow.ErrBadAccess, i, len(a.names)))
	}
	return a.names[i]
}

// FieldByName returns the child array with the given name, or nil if no
// field has that name.
func (a *Struct) FieldByName(name string) xparrow.Array {
	for i, n := range a.names {
		if n == name {
			return a.fields[i]
		}
	}
	return nil
}

func (a *Struct) String() string {
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
		o.WriteString(structElemString(a, i))
	}
	o.WriteString("]")
	return o.String()
}

var _ xparrow.Array = (*Struct)(nil)
