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
	"bytes"
	"fmt"

	"github.com/xtensor-stack/xparrow"
)

// Equal reports whether two arrays have the same format, length and
// element values. Null elements compare equal to null elements; the
// physical layout of the validity bitmap and the child storage does not
// matter, only the logical values.
func Equal(l, r xparrow.Array) bool {
	if l == r {
		return true
	}
	if l == nil || r == nil {
		return false
	}
	if l.Format() != r.Format() || l.Len() != r.Len() {
		return false
	}
	for i := 0; i < l.Len(); i++ {
		if l.IsNull(i) != r.IsNull(i) {
			return false
		}
		if l.IsNull(i) {
			continue
		}
		if !elemsEqual(l, i, r, i) {
			return false
		}
	}
	return true
}

// elemsEqual compares the valid element l[i] with the valid element r[j].
// Both arrays have the same format.
func elemsEqual(l xparrow.Array, i int, r xparrow.Array, j int) bool {
	switch la := l.(type) {
	case *Null:
		return true
	case *Boolean:
		return la.Value(i) == r.(*Boolean).Value(j)
	case *Number[float32]:
		return la.Value(i) == r.(*Number[float32]).Value(j)
	case *Number[float64]:
		return la.Value(i) == r.(*Number[float64]).Value(j)
	case rawValuer:
		// The remaining Number instantiations. The formats already matched,
		// so the representations agree even across aliased instantiations
		// (a Number[int] compares against the Number[int64] its Clone
		// reconstructs).
		return bytes.Equal(la.rawValue(i), r.(rawValuer).rawValue(j))
	case *String:
		return la.Value(i) == r.(*String).Value(j)
	case *Binary:
		return bytes.Equal(la.Value(i), r.(*Binary).Value(j))
	case *List:
		return listValueEqual(la.Value(i), r.(*List).Value(j))
	case *LargeList:
		return listValueEqual(la.Value(i), r.(*LargeList).Value(j))
	case *ListView:
		return listValueEqual(la.Value(i), r.(*ListView).Value(j))
	case *LargeListView:
		return listValueEqual(la.Value(i), r.(*LargeListView).Value(j))
	case *FixedSizeList:
		return listValueEqual(la.Value(i), r.(*FixedSizeList).Value(j))
	case *Struct:
		rs := r.(*Struct)
		if la.NumFields() != rs.NumFields() {
			return false
		}
		li, rj := la.fieldIndex(i), rs.fieldIndex(j)
		for k := 0; k < la.NumFields(); k++ {
			lf, rf := la.Field(k), rs.Field(k)
			if lf.Format() != rf.Format() {
				return false
			}
			if lf.IsNull(li) != rf.IsNull(rj) {
				return false
			}
			if lf.IsNull(li) {
				continue
			}
			if !elemsEqual(lf, li, rf, rj) {
				return false
			}
		}
		return true
	}
	panic(fmt.Errorf("%w: cannot compare format %q", xparrow.ErrUnsupportedFormat, l.Format()))
}

func listValueEqual(l, r ListValue) bool {
	if l.Len() != r.Len() {
		return false
	}
	lv, rv := l.Values(), r.Values()
	if lv.Format() != rv.Format() {
		return false
	}
	for k := 0; k < l.Len(); k++ {
		li, rj := int(l.Begin())+k, int(r.Begin())+k
		if l.IsNull(k) != r.IsNull(k) {
			return false
		}
		if l.IsNull(k) {
			continue
		}
		if !elemsEqual(lv, li, rv, rj) {
			return false
		}
	}
	return true
}

// elemString renders the valid element values[i] for the %v formatting of
// nested arrays.
func elemString(values xparrow.Array, i int) string {
	switch a := values.(type) {
	case *String:
		return fmt.Sprintf("%q", a.Value(i))
	case *Binary:
		return fmt.Sprintf("%x", a.Value(i))
	case *Boolean:
		return fmt.Sprintf("%v", a.Value(i))
	case *Null:
		return "(null)"
	case *Number[int8]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[uint8]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[int16]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[uint16]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[int32]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[uint32]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[int64]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[uint64]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[int]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[uint]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[float32]:
		return fmt.Sprintf("%v", a.Value(i))
	case *Number[float64]:
		return fmt.Sprintf("%v", a.Value(i))
	case *List:
		return a.Value(i).String()
	case *LargeList:
		return a.Value(i).String()
	case *ListView:
		return a.Value(i).String()
	case *LargeListView:
		return a.Value(i).String()
	case *FixedSizeList:
		return a.Value(i).String()
	case *Struct:
		return structElemString(a, i)
	}
	return fmt.Sprintf("%v", values)
}

func structElemString(a *Struct, i int) string {
	o := "{"
	fi := a.fieldIndex(i)
	for k := 0; k < a.NumFields(); k++ {
		if k > 0 {
			o += " "
		}
		f := a.Field(k)
		if f.IsNull(fi) {
			o += fmt.Sprintf("%s=(null)", a.FieldName(k))
			continue
		}
		o += fmt.Sprintf("%s=%s", a.FieldName(k), elemString(f, fi))
	}
	return o + "}"
}
