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
	"fmt"
	"strconv"
	"strings"
)

// Format strings identifying the layouts understood by this module. The
// grammar is the one of the Arrow C data interface: a single ASCII letter for
// scalar types, and a '+'-prefixed tag for nested types.
const (
	FormatNull    = "n"
	FormatBoolean = "b"
	FormatInt8    = "c"
	FormatUint8   = "C"
	FormatInt16   = "s"
	FormatUint16  = "S"
	FormatInt32   = "i"
	FormatUint32  = "I"
	FormatInt64   = "l"
	FormatUint64  = "L"
	FormatFloat32 = "f"
	FormatFloat64 = "d"
	FormatString  = "u"
	FormatBinary  = "z"

	FormatList          = "+l"
	FormatLargeList     = "+L"
	FormatListView      = "+vl"
	FormatLargeListView = "+vL"
	FormatStruct        = "+s"

	// FormatFixedSizeListPrefix is followed by the decimal arity, e.g. "+w:3".
	FormatFixedSizeListPrefix = "+w:"
)

// Flag is the bitfield carried by a schema descriptor, with the bit values
// mandated by the Arrow C data interface.
type Flag int64

const (
	FlagDictionaryOrdered Flag = 1 << iota
	FlagNullable
	FlagMapKeysSorted
)

func (f Flag) String() string {
	var parts []string
	if f&FlagDictionaryOrdered != 0 {
		parts = append(parts, "DICTIONARY_ORDERED")
	}
	if f&FlagNullable != 0 {
		parts = append(parts, "NULLABLE")
	}
	if f&FlagMapKeysSorted != 0 {
		parts = append(parts, "MAP_KEYS_SORTED")
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, "|")
}

// UnknownNullCount is the sentinel stored in an array descriptor whose null
// count has not been computed yet.
const UnknownNullCount = -1

// Metadata is the decoded form of a schema descriptor's key/value metadata.
type Metadata struct {
	keys   []string
	values []string
}

// NewMetadata builds metadata from parallel key and value slices, which must
// be of the same length.
func NewMetadata(keys, values []string) Metadata {
	if len(keys) != len(values) {
		panic(fmt.Errorf("%w: metadata keys/values length mismatch", ErrShapeMismatch))
	}
	k := make([]string, len(keys))
	copy(k, keys)
	v := make([]string, len(values))
	copy(v, values)
	return Metadata{keys: k, values: v}
}

func (md Metadata) Len() int { return len(md.keys) }
func (md Metadata) Keys() []string { return md.keys }
func (md Metadata) Values() []string { return md.values }
func (md Metadata) KeyAt(i int) string { return md.keys[i] }
func (md Metadata) ValueAt(i int) string { return md.values[i] }

// FindKey returns the index of the given key, or -1.
func (md Metadata) FindKey(k string) int {
	for i, v := range md.keys {
		if v == k {
			return i
		}
	}
	return -1
}

func (md Metadata) String() string {
	o := new(strings.Builder)
	fmt.Fprintf(o, "[%q, %q]", md.keys, md.values)
	return o.String()
}

// IsPrimitive reports whether the format tag identifies a fixed-width scalar
// layout (booleans included).
func IsPrimitive(format string) bool {
	if len(format) != 1 {
		return false
	}
	switch format[0] {
	case 'b', 'c', 'C', 's', 'S', 'i', 'I', 'l', 'L', 'f', 'd':
		return true
	}
	return false
}

// IsVarBinary reports whether the format tag identifies a variable-size
// binary layout (strings included).
func IsVarBinary(format string) bool {
	return format == FormatString || format == FormatBinary
}

// IsNested reports whether the format tag identifies a layout with children.
func IsNested(format string) bool {
	return strings.HasPrefix(format, "+")
}

// PrimitiveWidth returns the element width in bytes of a fixed-width scalar
// format. Booleans are bit-packed and report a width of 0.
func PrimitiveWidth(format string) (int, error) {
	if len(format) != 1 {
		return 0, fmt.Errorf("%w: %q is not a primitive format", ErrInvalidFormat, format)
	}
	switch format[0] {
	case 'b':
		return 0, nil
	case 'c', 'C':
		return 1, nil
	case 's', 'S':
		return 2, nil
	case 'i', 'I', 'f':
		return 4, nil
	case 'l', 'L', 'd':
		return 8, nil
	}
	return 0, fmt.Errorf("%w: %q is not a primitive format", ErrInvalidFormat, format)
}

// FixedSizeListArity parses the arity out of a "+w:<N>" format string.
func FixedSizeListArity(format string) (int, error) {
	if !strings.HasPrefix(format, FormatFixedSizeListPrefix) {
		return 0, fmt.Errorf("%w: %q is not a fixed size list format", ErrInvalidFormat, format)
	}
	n, err := strconv.ParseUint(format[len(FormatFixedSizeListPrefix):], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad fixed size list arity in %q: %v", ErrInvalidFormat, format, err)
	}
	return int(n), nil
}

// BufferCount returns the number of physical buffers the format mandates on
// its array descriptor, buffer 0 being the validity bitmap when present.
func BufferCount(format string) (int, error) {
	switch {
	case format == "":
		return 0, fmt.Errorf("%w: empty format", ErrInvalidFormat)
	case format == FormatNull:
		return 0, nil
	case IsPrimitive(format):
		return 2, nil
	case IsVarBinary(format):
		return 3, nil
	case format == FormatList || format == FormatLargeList:
		return 2, nil
	case format == FormatListView || format == FormatLargeListView:
		return 3, nil
	case format == FormatStruct:
		return 1, nil
	case strings.HasPrefix(format, FormatFixedSizeListPrefix):
		if _, err := FixedSizeListArity(format); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ChildCount returns the number of child arrays the format mandates, or -1
// when the count is free (struct layouts take one child per field).
func ChildCount(format string) (int, error) {
	switch {
	case format == "":
		return 0, fmt.Errorf("%w: empty format", ErrInvalidFormat)
	case format == FormatStruct:
		return -1, nil
	case IsNested(format):
		return 1, nil
	default:
		return 0, nil
	}
}
