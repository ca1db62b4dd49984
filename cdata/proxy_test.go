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

package cdata_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/cdata"
	"github.com/xtensor-stack/xparrow/memory"
)

// int32Proxy builds an owning proxy for a 5-element int32 array with the
// given validity bits and logical offset.
func int32Proxy(t *testing.T, mem memory.Allocator, valid []bool, offset int64) *cdata.Proxy {
	t.Helper()
	n := int64(len(valid))
	bm := bitutil.NewBitmapFromBools(valid)

	vbuf := memory.NewResizableBuffer(mem)
	vbuf.Resize(len(bm.Bytes()))
	copy(vbuf.Bytes(), bm.Bytes())

	dbuf := memory.NewResizableBuffer(mem)
	dbuf.Resize(int(n) * 4)

	schema, err := cdata.NewSchema(xparrow.FormatInt32, "", xparrow.Metadata{}, xparrow.FlagNullable, nil, nil)
	require.NoError(t, err)
	arr, err := cdata.NewArray(n-offset, xparrow.UnknownNullCount, offset, []*memory.Buffer{vbuf, dbuf}, nil, nil)
	require.NoError(t, err)
	return cdata.NewProxy(schema, arr, mem)
}

func TestProxyAccessors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, false, true, true, false}, 0)
	assert.Equal(t, xparrow.FormatInt32, p.Format())
	assert.Equal(t, 5, p.Len())
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 2, p.NumBuffers())
	assert.True(t, p.Owned())
	require.NoError(t, p.Release())
}

func TestProxyLazyNullCount(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, false, true, true, false}, 0)
	assert.Equal(t, int64(xparrow.UnknownNullCount), p.Arr().NullCount())
	assert.Equal(t, 2, p.NullN())
	// Cached after the first computation.
	assert.Equal(t, int64(2), p.Arr().NullCount())
	require.NoError(t, p.Release())
}

func TestProxyNullCountHonorsOffset(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	// Bits: v n v v n; with offset 2 the window [2, 5) holds one null.
	p := int32Proxy(t, mem, []bool{true, false, true, true, false}, 2)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 1, p.NullN())
	require.NoError(t, p.Release())
}

func TestProxyDoubleRelease(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, true, true, true, true}, 0)
	require.NoError(t, p.Release())
	err := p.Release()
	if !errors.Is(err, xparrow.ErrDoubleRelease) {
		t.Fatalf("second release: got %v, want ErrDoubleRelease", err)
	}
}

func TestDescriptorReleaseIdempotent(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, true, true, true, true}, 0)
	schema, arr, err := p.Detach()
	require.NoError(t, err)

	arr.Release()
	assert.True(t, arr.Released())
	arr.Release() // no-op on a released descriptor
	schema.Release()
	schema.Release()
	assert.True(t, schema.Released())
}

func TestProxyViewReleaseIsNoop(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, true, true, true, true}, 0)
	v := p.View()
	assert.False(t, v.Owned())
	require.NoError(t, v.Release())
	// The storage is still live after releasing the view.
	assert.Equal(t, 5, p.Len())
	require.NoError(t, p.Release())
}

func TestProxyDetach(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, true, true, true, true}, 0)
	schema, arr, err := p.Detach()
	require.NoError(t, err)
	assert.False(t, p.Owned())

	// A detached proxy is a plain view; it cannot surrender again.
	_, _, err = p.Detach()
	if !errors.Is(err, xparrow.ErrBadAccess) {
		t.Fatalf("second detach: got %v, want ErrBadAccess", err)
	}

	// The caller now owns the pair.
	np := cdata.NewProxy(schema, arr, mem)
	require.NoError(t, np.Release())
}

func TestProxyClone(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, false, true, true, true}, 0)
	cp := p.Clone()

	// No aliasing between the trees.
	p.Buffer(1)[0] = 0xFF
	assert.Equal(t, byte(0), cp.Buffer(1)[0])

	require.NoError(t, p.Release())
	assert.Equal(t, 5, cp.Len())
	assert.Equal(t, 1, cp.NullN())
	require.NoError(t, cp.Release())
}

func TestProxyBufferOutOfRange(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, true, true, true, true}, 0)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, xparrow.ErrBadAccess))
		require.NoError(t, p.Release())
	}()
	p.Buffer(7)
}

func TestProxyValidate(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	p := int32Proxy(t, mem, []bool{true, true, true, true, true}, 0)
	require.NoError(t, p.Validate())
	require.NoError(t, p.Release())
}

func TestSchemaChildren(t *testing.T) {
	child, err := cdata.NewSchema(xparrow.FormatInt64, "ints", xparrow.Metadata{}, xparrow.FlagNullable, nil, nil)
	require.NoError(t, err)
	parent, err := cdata.NewSchema(xparrow.FormatList, "", xparrow.Metadata{}, xparrow.FlagNullable, []*cdata.Schema{child}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, parent.NumChildren())
	assert.Equal(t, "ints", parent.Child(0).Name())

	// Releasing the parent releases the subtree.
	parent.Release()
	assert.True(t, parent.Released())
	assert.True(t, child.Released())
}

func TestNewSchemaRejectsEmptyFormat(t *testing.T) {
	_, err := cdata.NewSchema("", "", xparrow.Metadata{}, 0, nil, nil)
	if !errors.Is(err, xparrow.ErrInvalidFormat) {
		t.Fatalf("got %v, want ErrInvalidFormat", err)
	}
}

func TestNewArrayRejectsBadNullCount(t *testing.T) {
	_, err := cdata.NewArray(3, 4, 0, nil, nil, nil)
	if !errors.Is(err, xparrow.ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}
}
