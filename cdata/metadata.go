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

package cdata

import (
	"encoding/binary"
	"fmt"

	"github.com/xtensor-stack/xparrow"
)

// The C-ABI metadata blob: an int32 pair count, then for each pair an
// int32-length-prefixed key and an int32-length-prefixed value, all in
// native endianness (little-endian here).

// EncodeMetadata serializes metadata to the C-ABI blob. Empty metadata
// encodes to nil.
func EncodeMetadata(md xparrow.Metadata) []byte {
	if md.Len() == 0 {
		return nil
	}
	sz := 4
	for i := 0; i < md.Len(); i++ {
		sz += 8 + len(md.KeyAt(i)) + len(md.ValueAt(i))
	}
	out := make([]byte, 0, sz)
	out = binary.LittleEndian.AppendUint32(out, uint32(md.Len()))
	for i := 0; i < md.Len(); i++ {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(md.KeyAt(i))))
		out = append(out, md.KeyAt(i)...)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(md.ValueAt(i))))
		out = append(out, md.ValueAt(i)...)
	}
	return out
}

// DecodeMetadata parses the C-ABI blob. A nil blob decodes to empty
// metadata.
func DecodeMetadata(blob []byte) (xparrow.Metadata, error) {
	if len(blob) == 0 {
		return xparrow.Metadata{}, nil
	}
	if len(blob) < 4 {
		return xparrow.Metadata{}, fmt.Errorf("%w: truncated metadata header", xparrow.ErrShapeMismatch)
	}
	n := int(int32(binary.LittleEndian.Uint32(blob)))
	if n < 0 {
		return xparrow.Metadata{}, fmt.Errorf("%w: negative metadata pair count", xparrow.ErrShapeMismatch)
	}
	pos := 4
	keys := make([]string, 0, n)
	values := make([]string, 0, n)
	next := func() (string, error) {
		if len(blob)-pos < 4 {
			return "", fmt.Errorf("%w: truncated metadata entry", xparrow.ErrShapeMismatch)
		}
		l := int(int32(binary.LittleEndian.Uint32(blob[pos:])))
		pos += 4
		if l < 0 || len(blob)-pos < l {
			return "", fmt.Errorf("%w: truncated metadata entry", xparrow.ErrShapeMismatch)
		}
		s := string(blob[pos : pos+l])
		pos += l
		return s, nil
	}
	for i := 0; i < n; i++ {
		k, err := next()
		if err != nil {
			return xparrow.Metadata{}, err
		}
		v, err := next()
		if err != nil {
			return xparrow.Metadata{}, err
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	return xparrow.NewMetadata(keys, values), nil
}
