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

package array_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/array"
	"github.com/xtensor-stack/xparrow/memory"
)

func TestEqualBasic(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a := mustBuild(t, mem, []int64{1, 2, 3})
	b := mustBuild(t, mem, []int64{1, 2, 3})
	c := mustBuild(t, mem, []int64{1, 2, 4})
	d := mustBuild(t, mem, []int64{1, 2})
	e := mustBuild(t, mem, []int32{1, 2, 3})
	defer func() {
		for _, x := range []xparrow.Array{a, b, c, d, e} {
			x.Release()
		}
	}()

	assert.True(t, array.Equal(a, a))
	assert.True(t, array.Equal(a, b))
	assert.False(t, array.Equal(a, c))
	assert.False(t, array.Equal(a, d))
	// Different formats are never equal, whatever the values.
	assert.False(t, array.Equal(a, e))
	assert.False(t, array.Equal(a, nil))
}

func TestEqualNullsMatchNulls(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a := mustBuild(t, mem, []xparrow.Nullable[string]{
		xparrow.Some("x"), xparrow.Null[string](),
	})
	b := mustBuild(t, mem, []xparrow.Nullable[string]{
		xparrow.Some("x"), xparrow.Null[string](),
	})
	// Same positions, one null where the other holds a value.
	c := mustBuild(t, mem, []xparrow.Nullable[string]{
		xparrow.Some("x"), xparrow.Some(""),
	})
	defer a.Release()
	defer b.Release()
	defer c.Release()

	assert.True(t, array.Equal(a, b))
	assert.False(t, array.Equal(a, c))
}

func TestEqualNested(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	type row struct {
		Tags []string
		N    xparrow.Nullable[int32]
	}
	rows := []row{
		{Tags: []string{"a", "b"}, N: xparrow.Some(int32(7))},
		{Tags: nil, N: xparrow.Null[int32]()},
	}
	a := mustBuild(t, mem, rows)
	b := mustBuild(t, mem, rows)
	defer a.Release()
	defer b.Release()

	assert.True(t, array.Equal(a, b))

	rows[0].Tags = []string{"a", "c"}
	c := mustBuild(t, mem, rows)
	defer c.Release()
	assert.False(t, array.Equal(a, c))
}

// Equality is logical: a list and a list view holding the same ranges
// still differ by format, but two views with different physical layouts
// of the same values are equal.
func TestEqualListViewLayoutInsensitive(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	c1, err := array.NewNumberFromSlice(mem, []int32{1, 2, 3}, nil)
	require.NoError(t, err)
	v1, err := array.NewListViewFromParts(mem, c1, []int32{0, 1}, []int32{1, 2}, nil)
	require.NoError(t, err)
	defer v1.Release()

	// Same logical values over reordered child storage.
	c2, err := array.NewNumberFromSlice(mem, []int32{2, 3, 1}, nil)
	require.NoError(t, err)
	v2, err := array.NewListViewFromParts(mem, c2, []int32{2, 0}, []int32{1, 2}, nil)
	require.NoError(t, err)
	defer v2.Release()

	assert.True(t, array.Equal(v1, v2))
}
