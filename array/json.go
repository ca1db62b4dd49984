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
	"encoding/base64"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/xtensor-stack/xparrow"
)

// getOneForMarshal returns the JSON value of element i, or nil when the
// element is null.
func getOneForMarshal(a xparrow.Array, i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	switch arr := a.(type) {
	case *Null:
		return nil
	case *Boolean:
		return arr.Value(i)
	case *Number[int8]:
		return arr.Value(i)
	case *Number[uint8]:
		return arr.Value(i)
	case *Number[int16]:
		return arr.Value(i)
	case *Number[uint16]:
		return arr.Value(i)
	case *Number[int32]:
		return arr.Value(i)
	case *Number[uint32]:
		return arr.Value(i)
	case *Number[int64]:
		return arr.Value(i)
	case *Number[uint64]:
		return arr.Value(i)
	case *Number[int]:
		return arr.Value(i)
	case *Number[uint]:
		return arr.Value(i)
	case *Number[float32]:
		return floatForMarshal(float64(arr.Value(i)), 32)
	case *Number[float64]:
		return floatForMarshal(arr.Value(i), 64)
	case *String:
		return arr.Value(i)
	case *Binary:
		return base64.StdEncoding.EncodeToString(arr.Value(i))
	case *List:
		return listValueForMarshal(arr.Value(i))
	case *LargeList:
		return listValueForMarshal(arr.Value(i))
	case *ListView:
		return listValueForMarshal(arr.Value(i))
	case *LargeListView:
		return listValueForMarshal(arr.Value(i))
	case *FixedSizeList:
		return listValueForMarshal(arr.Value(i))
	case *Struct:
		o := make(map[string]interface{}, arr.NumFields())
		fi := arr.fieldIndex(i)
		for k := 0; k < arr.NumFields(); k++ {
			o[arr.FieldName(k)] = getOneForMarshal(arr.Field(k), fi)
		}
		return o
	}
	panic(fmt.Errorf("%w: cannot marshal format %q", xparrow.ErrUnsupportedFormat, a.Format()))
}

// floatForMarshal follows the arrow JSON convention of encoding
// non-finite floats as strings.
func floatForMarshal(f float64, bitSize int) interface{} {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return json.RawMessage(strconv.FormatFloat(f, 'g', -1, bitSize))
}

func listValueForMarshal(v ListValue) interface{} {
	o := make([]interface{}, v.Len())
	for k := range o {
		if v.IsNull(k) {
			continue
		}
		o[k] = getOneForMarshal(v.Values(), int(v.Begin())+k)
	}
	return o
}

func marshalArray(a xparrow.Array) ([]byte, error) {
	vals := make([]interface{}, a.Len())
	for i := range vals {
		vals[i] = getOneForMarshal(a, i)
	}
	return json.Marshal(vals)
}

func (a *Null) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *Boolean) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *Number[T]) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *String) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *Binary) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *List) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *LargeList) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *ListView) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *LargeListView) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *FixedSizeList) MarshalJSON() ([]byte, error) { return marshalArray(a) }
func (a *Struct) MarshalJSON() ([]byte, error) { return marshalArray(a) }
