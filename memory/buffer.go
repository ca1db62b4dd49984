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

package memory

// Buffer is a contiguous region of physical data. A buffer either owns its
// storage (allocated through an Allocator, freed on Release) or borrows a
// byte slice from an external producer (Release is a no-op). A buffer has
// exactly one owner; descriptors release their buffers when they themselves
// are released.
type Buffer struct {
	buf    []byte
	length int
	mem    Allocator
}

// NewBufferBytes creates a fixed-size buffer borrowing data. The buffer does
// not own the storage.
func NewBufferBytes(data []byte) *Buffer {
	return &Buffer{buf: data, length: len(data)}
}

// NewResizableBuffer creates an empty buffer that allocates its storage from
// mem.
func NewResizableBuffer(mem Allocator) *Buffer {
	return &Buffer{mem: mem}
}

// Release frees owned storage. The buffer must not be used afterwards.
func (b *Buffer) Release() {
	if b.mem != nil && b.buf != nil {
		b.mem.Free(b.buf)
	}
	b.buf, b.length = nil, 0
}

// Bytes returns the byte slice of logical length Len().
func (b *Buffer) Bytes() []byte { return b.buf[:b.length] }

// Buf returns the whole underlying storage, capacity included.
func (b *Buffer) Buf() []byte { return b.buf }

// Len returns the logical length of the buffer in bytes.
func (b *Buffer) Len() int { return b.length }

// Cap returns the capacity of the underlying storage in bytes.
func (b *Buffer) Cap() int { return len(b.buf) }

// Resize grows or shrinks the logical length, reallocating owned storage in
// 64-byte-aligned chunks when it grows. Newly exposed bytes are zero.
func (b *Buffer) Resize(newSize int) {
	if b.mem == nil {
		panic("memory: resize of non-owning buffer")
	}
	if newSize > len(b.buf) {
		b.buf = b.mem.Reallocate(roundUpToMultipleOf64(newSize), b.buf)
	}
	if newSize > b.length {
		Set(b.buf[b.length:newSize], 0)
	}
	b.length = newSize
}

// Reserve ensures the storage can hold at least capacity bytes without
// changing the logical length.
func (b *Buffer) Reserve(capacity int) {
	if b.mem == nil {
		panic("memory: reserve of non-owning buffer")
	}
	if capacity > len(b.buf) {
		b.buf = b.mem.Reallocate(roundUpToMultipleOf64(capacity), b.buf)
	}
}

// Clone returns an owning deep copy of the buffer allocated from mem.
func (b *Buffer) Clone(mem Allocator) *Buffer {
	out := NewResizableBuffer(mem)
	out.Resize(b.length)
	copy(out.buf, b.Bytes())
	return out
}
