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
	"reflect"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/memory"
)

// Build derives an array from a Go slice, mapping the element type to a
// layout:
//
//	bool                      -> Boolean
//	int8..int64, int          -> Number (int maps to the 64-bit format)
//	uint8..uint64, uint       -> Number
//	float32, float64          -> Number
//	string                    -> String
//	[]byte                    -> Binary
//	[]T                       -> List with child Build([]T flattened)
//	[N]T                      -> FixedSizeList of arity N
//	struct                    -> Struct, one field per exported field
//	xparrow.Nullable[T], *T   -> nullable element of the layout of T
//
// Nested slices and structs compose; each nesting level is built bottom
// up from a single flattened child. A null list element contributes an
// empty range, a null fixed-size element contributes N zero values, and
// a null struct element leaves zero values in its fields.
func Build(mem memory.Allocator, values interface{}) (xparrow.Array, error) {
	rv := reflect.ValueOf(values)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%w: Build expects a slice, got %T", xparrow.ErrShapeMismatch, values)
	}
	return buildSlice(mem, rv)
}

var nullableValueType = reflect.TypeOf((*xparrow.NullableValue)(nil)).Elem()

// unwrapElem splits an element into its inner value and validity,
// resolving the *T and Nullable[T] wrappers. Null elements report a zero
// inner value.
func unwrapElem(v reflect.Value) (reflect.Value, bool) {
	switch {
	case v.Kind() == reflect.Ptr:
		if v.IsNil() {
			return reflect.Zero(v.Type().Elem()), false
		}
		return v.Elem(), true
	case v.Type().Implements(nullableValueType) && v.Kind() == reflect.Struct:
		if !v.FieldByName("Valid").Bool() {
			return reflect.Zero(v.FieldByName("Val").Type()), false
		}
		return v.FieldByName("Val"), true
	}
	return v, true
}

// innerType resolves the element type carried by t once the nullable
// wrappers are stripped.
func innerType(t reflect.Type) reflect.Type {
	switch {
	case t.Kind() == reflect.Ptr:
		return t.Elem()
	case t.Implements(nullableValueType) && t.Kind() == reflect.Struct:
		f, _ := t.FieldByName("Val")
		return f.Type
	}
	return t
}

func buildSlice(mem memory.Allocator, rv reflect.Value) (xparrow.Array, error) {
	n := rv.Len()
	et := innerType(rv.Type().Elem())

	validity := bitutil.NewBitmap(n, true)
	inner := make([]reflect.Value, n)
	for i := 0; i < n; i++ {
		v, ok := unwrapElem(rv.Index(i))
		inner[i] = v
		if !ok {
			validity.Set(i, false)
		}
	}

	switch et.Kind() {
	case reflect.Bool:
		vals := make([]bool, n)
		for i, v := range inner {
			vals[i] = v.Bool()
		}
		return NewBooleanFromSlice(mem, vals, validity)
	case reflect.Int8:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) int8 { return int8(v.Int()) })
	case reflect.Int16:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) int16 { return int16(v.Int()) })
	case reflect.Int32:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) int32 { return int32(v.Int()) })
	case reflect.Int64, reflect.Int:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) int64 { return v.Int() })
	case reflect.Uint8:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) uint8 { return uint8(v.Uint()) })
	case reflect.Uint16:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) uint16 { return uint16(v.Uint()) })
	case reflect.Uint32:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) uint32 { return uint32(v.Uint()) })
	case reflect.Uint64, reflect.Uint:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) uint64 { return v.Uint() })
	case reflect.Float32:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) float32 { return float32(v.Float()) })
	case reflect.Float64:
		return buildNumbers(mem, inner, validity, func(v reflect.Value) float64 { return v.Float() })
	case reflect.String:
		vals := make([]string, n)
		for i, v := range inner {
			vals[i] = v.String()
		}
		return NewStringFromSlice(mem, vals, validity)
	case reflect.Slice:
		if et.Elem().Kind() == reflect.Uint8 {
			vals := make([][]byte, n)
			for i, v := range inner {
				vals[i] = v.Bytes()
			}
			return NewBinaryFromSlice(mem, vals, validity)
		}
		return buildList(mem, et, inner, validity)
	case reflect.Array:
		return buildFixedSizeList(mem, et, inner, validity)
	case reflect.Struct:
		return buildStruct(mem, et, inner, validity)
	}
	return nil, fmt.Errorf("%w: Build cannot map Go type %v to a layout", xparrow.ErrUnsupportedFormat, et)
}

func buildNumbers[T xparrow.FixedWidth](mem memory.Allocator, inner []reflect.Value, validity *bitutil.Bitmap, get func(reflect.Value) T) (xparrow.Array, error) {
	vals := make([]T, len(inner))
	for i, v := range inner {
		vals[i] = get(v)
	}
	return NewNumberFromSlice(mem, vals, validity)
}

func buildList(mem memory.Allocator, et reflect.Type, inner []reflect.Value, validity *bitutil.Bitmap) (xparrow.Array, error) {
	sizes := make([]int, len(inner))
	total := 0
	for i, v := range inner {
		if validity.Test(i) {
			sizes[i] = v.Len()
			total += v.Len()
		}
	}
	flat := reflect.MakeSlice(et, 0, total)
	for i, v := range inner {
		if validity.Test(i) {
			flat = reflect.AppendSlice(flat, v)
		}
	}
	values, err := buildSlice(mem, flat)
	if err != nil {
		return nil, err
	}
	offsets, err := OffsetsFromSizes32(sizes)
	if err != nil {
		values.Release()
		return nil, err
	}
	a, err := NewListFromParts(mem, values, offsets, validity)
	if err != nil {
		values.Release()
		return nil, err
	}
	return a, nil
}

func buildFixedSizeList(mem memory.Allocator, et reflect.Type, inner []reflect.Value, validity *bitutil.Bitmap) (xparrow.Array, error) {
	arity := et.Len()
	if arity == 0 {
		return nil, fmt.Errorf("%w: Build cannot map a zero-length Go array to a layout", xparrow.ErrUnsupportedFormat)
	}
	flat := reflect.MakeSlice(reflect.SliceOf(et.Elem()), len(inner)*arity, len(inner)*arity)
	for i, v := range inner {
		if !validity.Test(i) {
			continue
		}
		for k := 0; k < arity; k++ {
			flat.Index(i*arity + k).Set(v.Index(k))
		}
	}
	values, err := buildSlice(mem, flat)
	if err != nil {
		return nil, err
	}
	a, err := NewFixedSizeListFromParts(mem, arity, values, validity)
	if err != nil {
		values.Release()
		return nil, err
	}
	return a, nil
}

func buildStruct(mem memory.Allocator, et reflect.Type, inner []reflect.Value, validity *bitutil.Bitmap) (xparrow.Array, error) {
	var fields []Field
	fail := func() {
		for _, f := range fields {
			f.Array.Release()
		}
	}
	for k := 0; k < et.NumField(); k++ {
		sf := et.Field(k)
		if !sf.IsExported() {
			continue
		}
		col := reflect.MakeSlice(reflect.SliceOf(sf.Type), len(inner), len(inner))
		for i, v := range inner {
			if validity.Test(i) {
				col.Index(i).Set(v.Field(k))
			}
		}
		fa, err := buildSlice(mem, col)
		if err != nil {
			fail()
			return nil, err
		}
		fields = append(fields, Field{Name: fieldName(sf), Array: fa})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: Build needs at least one exported field in %v", xparrow.ErrUnsupportedFormat, et)
	}
	a, err := NewStructFromParts(mem, len(inner), fields, validity)
	if err != nil {
		fail()
		return nil, err
	}
	return a, nil
}

func fieldName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("xparrow"); ok && tag != "" {
		return tag
	}
	return sf.Name
}
