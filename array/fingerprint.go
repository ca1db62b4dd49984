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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/xtensor-stack/xparrow"
)

// Fingerprint hashes an array's logical content: its format string and
// the element-wise values, independent of offsets, bitmap storage or
// buffer capacities. Equal arrays produce equal fingerprints.
func Fingerprint(a xparrow.Array) uint64 {
	h := xxh3.New()
	hashArray(h, a)
	return h.Sum64()
}

func hashArray(h *xxh3.Hasher, a xparrow.Array) {
	_, _ = h.WriteString(a.Format())
	hashInt(h, uint64(a.Len()))
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			_, _ = h.Write([]byte{0})
			continue
		}
		_, _ = h.Write([]byte{1})
		hashElem(h, a, i)
	}
}

func hashElem(h *xxh3.Hasher, a xparrow.Array, i int) {
	switch arr := a.(type) {
	case *Null:
	case *Boolean:
		if arr.Value(i) {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	case *Number[int8]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[uint8]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[int16]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[uint16]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[int32]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[uint32]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[int64]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[uint64]:
		hashInt(h, arr.Value(i))
	case *Number[int]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[uint]:
		hashInt(h, uint64(arr.Value(i)))
	case *Number[float32]:
		hashInt(h, uint64(math.Float32bits(arr.Value(i))))
	case *Number[float64]:
		hashInt(h, math.Float64bits(arr.Value(i)))
	case *String:
		v := arr.Value(i)
		hashInt(h, uint64(len(v)))
		_, _ = h.WriteString(v)
	case *Binary:
		v := arr.Value(i)
		hashInt(h, uint64(len(v)))
		_, _ = h.Write(v)
	case *List:
		hashListValue(h, arr.Value(i))
	case *LargeList:
		hashListValue(h, arr.Value(i))
	case *ListView:
		hashListValue(h, arr.Value(i))
	case *LargeListView:
		hashListValue(h, arr.Value(i))
	case *FixedSizeList:
		hashListValue(h, arr.Value(i))
	case *Struct:
		fi := arr.fieldIndex(i)
		for k := 0; k < arr.NumFields(); k++ {
			f := arr.Field(k)
			_, _ = h.WriteString(arr.FieldName(k))
			if f.IsNull(fi) {
				_, _ = h.Write([]byte{0})
				continue
			}
			_, _ = h.Write([]byte{1})
			hashElem(h, f, fi)
		}
	default:
		panic(fmt.Errorf("%w: cannot fingerprint format %q", xparrow.ErrUnsupportedFormat, a.Format()))
	}
}

func hashListValue(h *xxh3.Hasher, v ListValue) {
	hashInt(h, uint64(v.Len()))
	for k := 0; k < v.Len(); k++ {
		if v.IsNull(k) {
			_, _ = h.Write([]byte{0})
			continue
		}
		_, _ = h.Write([]byte{1})
		hashElem(h, v.Values(), int(v.Begin())+k)
	}
}

func hashInt(h *xxh3.Hasher, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, _ = h.Write(b[:])
}
