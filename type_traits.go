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

package xparrow

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// FixedWidth is the constraint satisfied by the element types of the
// fixed-width primitive layouts.
type FixedWidth interface {
	constraints.Integer | constraints.Float
}

// CastFromBytes reinterprets a byte slice as a slice of fixed-width values
// without copying.
func CastFromBytes[T FixedWidth](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var z T
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/int(unsafe.Sizeof(z)))
}

// CastToBytes reinterprets a slice of fixed-width values as its backing
// bytes without copying.
func CastToBytes[T FixedWidth](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var z T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(z)))
}

// FormatFor returns the format tag of a fixed-width element type.
func FormatFor[T FixedWidth]() string {
	var z T
	switch any(z).(type) {
	case int8:
		return FormatInt8
	case uint8:
		return FormatUint8
	case int16:
		return FormatInt16
	case uint16:
		return FormatUint16
	case int32:
		return FormatInt32
	case uint32:
		return FormatUint32
	case int64:
		return FormatInt64
	case uint64:
		return FormatUint64
	case int:
		return FormatInt64
	case uint:
		return FormatUint64
	case float32:
		return FormatFloat32
	case float64:
		return FormatFloat64
	}
	return ""
}
