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
	"fmt"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/internal/debug"
	"github.com/xtensor-stack/xparrow/memory"
)

// Array is the physical data description of one array: the ArrowArray side
// of the descriptor pair.
type Array struct {
	length      int64
	nullCount   int64 // xparrow.UnknownNullCount when not yet computed
	offset      int64
	buffers     []*memory.Buffer
	children    []*Array
	dictionary  *Array
	release     func(*Array)
	privateData any
}

// NewArray builds an owning array descriptor. The null count may be
// xparrow.UnknownNullCount; otherwise it must not exceed the length.
func NewArray(length, nullCount, offset int64, buffers []*memory.Buffer, children []*Array, dictionary *Array) (*Array, error) {
	if nullCount < xparrow.UnknownNullCount || nullCount > length {
		return nil, fmt.Errorf("%w: null count %d for length %d", xparrow.ErrShapeMismatch, nullCount, length)
	}
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("%w: negative length or offset", xparrow.ErrShapeMismatch)
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: nil child array at %d", xparrow.ErrShapeMismatch, i)
		}
	}
	return &Array{
		length:     length,
		nullCount:  nullCount,
		offset:     offset,
		buffers:    buffers,
		children:   children,
		dictionary: dictionary,
		release:    releaseArray,
	}, nil
}

func (a *Array) Len() int64 { return a.length }
func (a *Array) NullCount() int64 { return a.nullCount }
func (a *Array) Offset() int64 { return a.offset }
func (a *Array) NumBuffers() int { return len(a.buffers) }
func (a *Array) NumChildren() int { return len(a.children) }

func (a *Array) Buffer(i int) *memory.Buffer { return a.buffers[i] }
func (a *Array) Child(i int) *Array { return a.children[i] }
func (a *Array) Dictionary() *Array { return a.dictionary }

// Released reports whether the descriptor has already been released.
func (a *Array) Released() bool { return a.release == nil }

// Release releases the descriptor subtree: buffers first, then children and
// dictionary, then the struct is nulled out. Releasing an already-released
// descriptor is a guarded no-op.
func (a *Array) Release() {
	if a.release == nil {
		debug.Log("cdata: array already released")
		return
	}
	rel := a.release
	a.release = nil
	rel(a)
}

func releaseArray(a *Array) {
	for _, b := range a.buffers {
		if b != nil {
			b.Release()
		}
	}
	for _, c := range a.children {
		if c != nil {
			c.Release()
		}
	}
	if a.dictionary != nil {
		a.dictionary.Release()
	}
	a.length, a.nullCount, a.offset = 0, 0, 0
	a.buffers = nil
	a.children = nil
	a.dictionary = nil
	a.privateData = nil
}

// Clone returns a deep copy of the array subtree; every buffer is copied
// into fresh storage allocated from mem.
func (a *Array) Clone(mem memory.Allocator) *Array {
	if a.Released() {
		panic(fmt.Errorf("%w: clone of released array", xparrow.ErrDoubleRelease))
	}
	var buffers []*memory.Buffer
	if a.buffers != nil {
		buffers = make([]*memory.Buffer, len(a.buffers))
		for i, b := range a.buffers {
			if b != nil {
				buffers[i] = b.Clone(mem)
			}
		}
	}
	var children []*Array
	if len(a.children) > 0 {
		children = make([]*Array, len(a.children))
		for i, c := range a.children {
			children[i] = c.Clone(mem)
		}
	}
	var dict *Array
	if a.dictionary != nil {
		dict = a.dictionary.Clone(mem)
	}
	return &Array{
		length:     a.length,
		nullCount:  a.nullCount,
		offset:     a.offset,
		buffers:    buffers,
		children:   children,
		dictionary: dict,
		release:    releaseArray,
	}
}
