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
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/memory"
)

// Proxy binds one schema descriptor and one array descriptor and exposes
// bounds-checked access to their buffers, children and metadata.
//
// A Proxy either owns the pair (NewProxy: releasing the proxy releases the
// whole subtree exactly once) or borrows it (NewProxyView: releasing is a
// no-op, the external producer keeps ownership). Child proxies are always
// views.
type Proxy struct {
	schema *Schema
	arr    *Array
	mem    memory.Allocator
	owned  bool
}

// NewProxy wraps an owning descriptor pair. The allocator is the one the
// buffers were allocated from; it is reused by Clone. A nil allocator means
// memory.DefaultAllocator.
func NewProxy(schema *Schema, arr *Array, mem memory.Allocator) *Proxy {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Proxy{schema: schema, arr: arr, mem: mem, owned: true}
}

// NewProxyView wraps a borrowed descriptor pair. The caller must keep the
// owning descriptors alive for the lifetime of the view.
func NewProxyView(schema *Schema, arr *Array) *Proxy {
	return &Proxy{schema: schema, arr: arr, mem: memory.DefaultAllocator}
}

// Owned reports whether the proxy owns its descriptor pair.
func (p *Proxy) Owned() bool { return p.owned }

// Schema returns the underlying schema descriptor.
func (p *Proxy) Schema() *Schema { return p.schema }

// Arr returns the underlying array descriptor.
func (p *Proxy) Arr() *Array { return p.arr }

func (p *Proxy) Format() string { return p.schema.Format() }
func (p *Proxy) Name() string { return p.schema.Name() }
func (p *Proxy) Metadata() xparrow.Metadata { return p.schema.Metadata() }
func (p *Proxy) Flags() xparrow.Flag { return p.schema.Flags() }

// Len returns the logical number of elements.
func (p *Proxy) Len() int { return int(p.arr.Len()) }

// Offset returns the logical element offset into the physical buffers
// (zero-copy slicing).
func (p *Proxy) Offset() int { return int(p.arr.Offset()) }

// NullN returns the number of null elements. When the descriptor carries
// the unknown sentinel the count is computed from the validity buffer on
// first access, then cached.
func (p *Proxy) NullN() int {
	if p.arr.nullCount == xparrow.UnknownNullCount {
		validity := p.validityBytes()
		if validity == nil {
			p.arr.nullCount = 0
		} else {
			set := bitutil.CountSetBits(validity, p.Offset(), p.Len())
			p.arr.nullCount = int64(p.Len() - set)
		}
	}
	return int(p.arr.nullCount)
}

// SetNullN overrides the cached null count. Construction-time helper.
func (p *Proxy) SetNullN(n int) { p.arr.nullCount = int64(n) }

// NumBuffers returns the number of physical buffers.
func (p *Proxy) NumBuffers() int { return p.arr.NumBuffers() }

// Buffer returns the byte span of buffer i, which may be nil (an absent
// validity buffer means all elements are valid).
func (p *Proxy) Buffer(i int) []byte {
	if i < 0 || i >= p.arr.NumBuffers() {
		panic(fmt.Errorf("%w: buffer index %d out of range [0, %d)", xparrow.ErrBadAccess, i, p.arr.NumBuffers()))
	}
	b := p.arr.Buffer(i)
	if b == nil {
		return nil
	}
	return b.Bytes()
}

// Buffers returns the byte spans of all physical buffers.
func (p *Proxy) Buffers() [][]byte {
	out := make([][]byte, p.arr.NumBuffers())
	for i := range out {
		out[i] = p.Buffer(i)
	}
	return out
}

// SetBuffers replaces the physical buffers. Construction-time helper; the
// descriptor takes ownership of the new buffers and releases the old ones.
func (p *Proxy) SetBuffers(buffers []*memory.Buffer) {
	for _, b := range p.arr.buffers {
		if b != nil {
			b.Release()
		}
	}
	p.arr.buffers = buffers
}

func (p *Proxy) validityBytes() []byte {
	if p.arr.NumBuffers() == 0 {
		return nil
	}
	b := p.arr.Buffer(0)
	if b == nil || b.Len() == 0 {
		return nil
	}
	return b.Bytes()
}

// NumChildren returns the number of child arrays.
func (p *Proxy) NumChildren() int { return p.arr.NumChildren() }

// Child returns a view over the i-th child descriptor pair. The view
// borrows from this proxy's subtree and never owns it.
func (p *Proxy) Child(i int) *Proxy {
	if i < 0 || i >= p.arr.NumChildren() {
		panic(fmt.Errorf("%w: child index %d out of range [0, %d)", xparrow.ErrBadAccess, i, p.arr.NumChildren()))
	}
	if i >= p.schema.NumChildren() {
		panic(fmt.Errorf("%w: schema has %d children, array has %d", xparrow.ErrShapeMismatch, p.schema.NumChildren(), p.arr.NumChildren()))
	}
	return NewProxyView(p.schema.Child(i), p.arr.Child(i))
}

// Dictionary returns a view over the dictionary pair, or nil.
func (p *Proxy) Dictionary() *Proxy {
	if p.arr.Dictionary() == nil {
		return nil
	}
	return NewProxyView(p.schema.Dictionary(), p.arr.Dictionary())
}

// View returns a non-owning proxy over the same descriptor pair.
func (p *Proxy) View() *Proxy { return NewProxyView(p.schema, p.arr) }

// Release releases an owning proxy's subtree exactly once. Releasing a view
// is a no-op; releasing an owning proxy twice reports ErrDoubleRelease.
func (p *Proxy) Release() error {
	if !p.owned {
		return nil
	}
	if p.schema.Released() && p.arr.Released() {
		return fmt.Errorf("%w: proxy already released", xparrow.ErrDoubleRelease)
	}
	p.schema.Release()
	p.arr.Release()
	return nil
}

// Detach surrenders ownership of the descriptor pair and returns it. The
// proxy becomes a plain view of the detached pair; releasing it afterwards
// is a no-op. Only an owning, unreleased proxy can be detached.
func (p *Proxy) Detach() (*Schema, *Array, error) {
	if !p.owned {
		return nil, nil, fmt.Errorf("%w: detach of a non-owning proxy", xparrow.ErrBadAccess)
	}
	if p.schema.Released() || p.arr.Released() {
		return nil, nil, fmt.Errorf("%w: detach of a released proxy", xparrow.ErrDoubleRelease)
	}
	p.owned = false
	return p.schema, p.arr, nil
}

// Clone deep-copies the descriptor pair, buffers included, into a new
// owning proxy. Views can be cloned; the clone owns its copy.
func (p *Proxy) Clone() *Proxy {
	return NewProxy(p.schema.Clone(), p.arr.Clone(p.mem), p.mem)
}

// Validate checks the buffer and child counts against what the format
// mandates, recursively.
func (p *Proxy) Validate() error {
	format := p.Format()
	nbuf, err := xparrow.BufferCount(format)
	if err != nil {
		return err
	}
	if p.arr.NumBuffers() < nbuf {
		return fmt.Errorf("%w: format %q needs %d buffers, have %d", xparrow.ErrShapeMismatch, format, nbuf, p.arr.NumBuffers())
	}
	nchild, err := xparrow.ChildCount(format)
	if err != nil {
		return err
	}
	if nchild >= 0 && p.arr.NumChildren() != nchild {
		return fmt.Errorf("%w: format %q needs %d children, have %d", xparrow.ErrShapeMismatch, format, nchild, p.arr.NumChildren())
	}
	if p.schema.NumChildren() != p.arr.NumChildren() {
		return fmt.Errorf("%w: schema has %d children, array has %d", xparrow.ErrShapeMismatch, p.schema.NumChildren(), p.arr.NumChildren())
	}
	if p.arr.NullCount() != xparrow.UnknownNullCount && p.arr.NullCount() > p.arr.Len() {
		return fmt.Errorf("%w: null count %d exceeds length %d", xparrow.ErrShapeMismatch, p.arr.NullCount(), p.arr.Len())
	}
	for i := 0; i < p.NumChildren(); i++ {
		if err := p.Child(i).Validate(); err != nil {
			return err
		}
	}
	return nil
}
