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

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/cdata"
	"github.com/xtensor-stack/xparrow/memory"
)

// bitmapBuffer copies a bitmap's packed storage into an owned buffer.
func bitmapBuffer(mem memory.Allocator, bm *bitutil.Bitmap) *memory.Buffer {
	buf := memory.NewResizableBuffer(mem)
	buf.Resize(len(bm.Bytes()))
	copy(buf.Bytes(), bm.Bytes())
	return buf
}

// sliceBuffer copies a fixed-width slice into an owned buffer.
func sliceBuffer[T xparrow.FixedWidth](mem memory.Allocator, values []T) *memory.Buffer {
	raw := xparrow.CastToBytes(values)
	buf := memory.NewResizableBuffer(mem)
	buf.Resize(len(raw))
	copy(buf.Bytes(), raw)
	return buf
}

// childField captures one child array being moved into a parent during
// construction.
type childField struct {
	name  string
	array xparrow.Array
}

// proxied is satisfied by every layout in this package.
type proxied interface {
	xparrow.Array
	Data() *cdata.Proxy
}

// makeProxy assembles an owning proxy for a new layout: it builds the
// schema/array descriptor pair, takes ownership of the child layouts by
// detaching their proxies, and validates the result. On failure the buffers
// are released and the children are left untouched (each build step commits
// only after fully succeeding).
func makeProxy(mem memory.Allocator, format string, length, nullCount int, buffers []*memory.Buffer, children []childField) (*cdata.Proxy, error) {
	fail := func(err error) (*cdata.Proxy, error) {
		for _, b := range buffers {
			if b != nil {
				b.Release()
			}
		}
		return nil, err
	}

	// Detaching is the commit point: check every child first so that a
	// failure leaves all of them owned by the caller.
	for i, c := range children {
		if c.array == nil {
			return fail(fmt.Errorf("%w: nil child %d", xparrow.ErrShapeMismatch, i))
		}
		if !c.array.(proxied).Data().Owned() {
			return fail(fmt.Errorf("%w: child %d does not own its descriptors", xparrow.ErrBadAccess, i))
		}
	}

	childSchemas := make([]*cdata.Schema, 0, len(children))
	childArrays := make([]*cdata.Array, 0, len(children))
	for _, c := range children {
		s, a, err := c.array.(proxied).Data().Detach()
		if err != nil {
			return fail(err)
		}
		if c.name != "" {
			s.SetName(c.name)
		}
		childSchemas = append(childSchemas, s)
		childArrays = append(childArrays, a)
	}
	if len(childSchemas) == 0 {
		childSchemas, childArrays = nil, nil
	}
	failOwningChildren := func(err error) (*cdata.Proxy, error) {
		for _, s := range childSchemas {
			s.Release()
		}
		for _, a := range childArrays {
			a.Release()
		}
		return fail(err)
	}

	schema, err := cdata.NewSchema(format, "", xparrow.Metadata{}, xparrow.FlagNullable, childSchemas, nil)
	if err != nil {
		return failOwningChildren(err)
	}
	arr, err := cdata.NewArray(int64(length), int64(nullCount), 0, buffers, childArrays, nil)
	if err != nil {
		return failOwningChildren(err)
	}

	p := cdata.NewProxy(schema, arr, mem)
	if err := p.Validate(); err != nil {
		_ = p.Release()
		return nil, err
	}
	return p, nil
}
