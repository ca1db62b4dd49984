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

// Package bitutil provides the packed-bit primitives backing validity
// bitmaps: one bit per logical element, least-significant bit first within
// each byte.
package bitutil

import (
	"math/bits"
)

var (
	// BitMask selects the bit at index i%8 within a byte.
	BitMask = [8]byte{1, 2, 4, 8, 16, 32, 64, 128}
	// FlippedBitMask clears the bit at index i%8 within a byte.
	FlippedBitMask = [8]byte{254, 253, 251, 247, 239, 223, 191, 127}

	// PrecedingBitmask keeps the i%8 low bits of a byte.
	PrecedingBitmask = [8]byte{0, 1, 3, 7, 15, 31, 63, 127}
)

// IsMultipleOf8 returns whether v is a multiple of 8.
func IsMultipleOf8(v int64) bool { return v&7 == 0 }

// CeilByte rounds size up to the next multiple of 8.
func CeilByte(size int) int { return (size + 7) &^ 7 }

// BytesForBits returns the number of bytes required to store bits bits.
func BytesForBits(bits int64) int64 { return (bits + 7) >> 3 }

// BitIsSet returns true if the bit at index i in buf is set (1).
func BitIsSet(buf []byte, i int) bool { return (buf[uint(i)/8] & BitMask[byte(i)%8]) != 0 }

// BitIsNotSet returns true if the bit at index i in buf is not set (0).
func BitIsNotSet(buf []byte, i int) bool { return (buf[uint(i)/8] & BitMask[byte(i)%8]) == 0 }

// SetBit sets the bit at index i in buf to 1.
func SetBit(buf []byte, i int) { buf[uint(i)/8] |= BitMask[byte(i)%8] }

// ClearBit sets the bit at index i in buf to 0.
func ClearBit(buf []byte, i int) { buf[uint(i)/8] &= FlippedBitMask[byte(i)%8] }

// SetBitTo sets the bit at index i in buf to val.
func SetBitTo(buf []byte, i int, val bool) {
	if val {
		SetBit(buf, i)
	} else {
		ClearBit(buf, i)
	}
}

// SetBitsTo sets the length bits starting at the start offset to val.
func SetBitsTo(buf []byte, start, length int, val bool) {
	for i := start; i < start+length; i++ {
		SetBitTo(buf, i, val)
	}
}

// CountSetBits counts the number of 1's in buf, starting at the bit offset,
// over n bits.
func CountSetBits(buf []byte, offset, n int) int {
	if n <= 0 {
		return 0
	}

	count := 0
	i := offset

	// leading bits up to the first byte boundary
	for ; i < offset+n && !IsMultipleOf8(int64(i)); i++ {
		if BitIsSet(buf, i) {
			count++
		}
	}

	// whole bytes
	end := offset + n
	for ; i+8 <= end; i += 8 {
		count += bits.OnesCount8(buf[i/8])
	}

	// trailing bits
	for ; i < end; i++ {
		if BitIsSet(buf, i) {
			count++
		}
	}

	return count
}
