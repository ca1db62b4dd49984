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

package bitutil

import (
	"fmt"

	"github.com/xtensor-stack/xparrow"
)

// Bitmap is a dynamically sized sequence of packed validity bits with a
// cached null count. The null count is maintained incrementally on every
// mutation rather than recomputed by scanning.
//
// A Bitmap of length 0 means "all elements valid" to every consumer; it is
// materialized to its full length lazily, only when a null must actually be
// recorded (see EnsureValidity).
type Bitmap struct {
	bits   []byte
	length int
	nulls  int
}

// NewBitmap returns a bitmap of n bits, all set to fill.
func NewBitmap(n int, fill bool) *Bitmap {
	bm := &Bitmap{
		bits:   make([]byte, BytesForBits(int64(n))),
		length: n,
	}
	if fill {
		for i := range bm.bits {
			bm.bits[i] = 0xff
		}
		bm.clearTrailing()
	} else {
		bm.nulls = n
	}
	return bm
}

// NewBitmapFromBools packs a sequence of booleans, false meaning null.
func NewBitmapFromBools(valid []bool) *Bitmap {
	bm := NewBitmap(len(valid), true)
	for i, v := range valid {
		if !v {
			bm.Set(i, false)
		}
	}
	return bm
}

// NewBitmapFromMarkers packs a sequence of unsigned markers, zero meaning
// null.
func NewBitmapFromMarkers[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](markers []T) *Bitmap {
	bm := NewBitmap(len(markers), true)
	for i, v := range markers {
		if v == 0 {
			bm.Set(i, false)
		}
	}
	return bm
}

// BitmapFromBytes adopts packed storage of n bits and computes the null
// count once. The storage is not copied.
func BitmapFromBytes(buf []byte, n int) *Bitmap {
	if int64(len(buf)) < BytesForBits(int64(n)) {
		panic(fmt.Errorf("%w: bitmap storage too short for %d bits", xparrow.ErrShapeMismatch, n))
	}
	return &Bitmap{
		bits:   buf,
		length: n,
		nulls:  n - CountSetBits(buf, 0, n),
	}
}

// Len returns the number of bits in the bitmap.
func (bm *Bitmap) Len() int { return bm.length }

// NullN returns the cached number of 0 (null) bits. O(1).
func (bm *Bitmap) NullN() int { return bm.nulls }

// Bytes returns the packed storage. Its length is Len() rounded up to a
// whole byte.
func (bm *Bitmap) Bytes() []byte { return bm.bits }

// Test returns the bit at index i.
func (bm *Bitmap) Test(i int) bool {
	if i < 0 || i >= bm.length {
		panic(fmt.Errorf("%w: bitmap index %d out of range [0, %d)", xparrow.ErrBadAccess, i, bm.length))
	}
	return BitIsSet(bm.bits, i)
}

// Set sets the bit at index i to v, adjusting the cached null count by the
// delta.
func (bm *Bitmap) Set(i int, v bool) {
	if i < 0 || i >= bm.length {
		panic(fmt.Errorf("%w: bitmap index %d out of range [0, %d)", xparrow.ErrBadAccess, i, bm.length))
	}
	old := BitIsSet(bm.bits, i)
	if old == v {
		return
	}
	SetBitTo(bm.bits, i, v)
	if v {
		bm.nulls--
	} else {
		bm.nulls++
	}
}

// Resize grows or shrinks the bitmap to n bits; new bits are set to fill.
func (bm *Bitmap) Resize(n int, fill bool) {
	if n == bm.length {
		return
	}
	if n < bm.length {
		bm.nulls = n - CountSetBits(bm.bits, 0, n)
		bm.length = n
		bm.bits = bm.bits[:BytesForBits(int64(n))]
		bm.clearTrailing()
		return
	}

	nbytes := int(BytesForBits(int64(n)))
	if nbytes > len(bm.bits) {
		grown := make([]byte, nbytes)
		copy(grown, bm.bits)
		bm.bits = grown
	}
	old := bm.length
	bm.length = n
	SetBitsTo(bm.bits, old, n-old, fill)
	if !fill {
		bm.nulls += n - old
	}
}

// Append adds one bit at the end.
func (bm *Bitmap) Append(v bool) {
	bm.Resize(bm.length+1, v)
}

// Clone returns a deep copy of the bitmap.
func (bm *Bitmap) Clone() *Bitmap {
	bits := make([]byte, len(bm.bits))
	copy(bits, bm.bits)
	return &Bitmap{bits: bits, length: bm.length, nulls: bm.nulls}
}

// clearTrailing zeroes the unused bits of the last byte so that byte-wise
// consumers see deterministic storage.
func (bm *Bitmap) clearTrailing() {
	if bm.length%8 != 0 && len(bm.bits) > 0 {
		bm.bits[len(bm.bits)-1] &= PrecedingBitmask[bm.length%8]
	}
}

// EnsureValidity normalizes a validity input against a declared size. A nil
// or empty bitmap means all-valid and is materialized to the full size; a
// non-empty bitmap is authoritative and must match size.
func EnsureValidity(size int, bm *Bitmap) (*Bitmap, error) {
	if bm == nil || bm.Len() == 0 {
		return NewBitmap(size, true), nil
	}
	if bm.Len() != size {
		return nil, fmt.Errorf("%w: validity bitmap length %d, declared length %d", xparrow.ErrShapeMismatch, bm.Len(), size)
	}
	return bm, nil
}
