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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/array"
	"github.com/xtensor-stack/xparrow/memory"
)

func TestBuildNumeric(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []int32{3, 1, 4, 1, 5})
	require.NoError(t, err)
	defer a.Release()

	nums := a.(*array.Number[int32])
	assert.Equal(t, xparrow.FormatInt32, a.Format())
	assert.Equal(t, []int32{3, 1, 4, 1, 5}, nums.Values())
	assert.Equal(t, 0, a.NullN())
}

func TestBuildIntMapsTo64Bit(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []int{1, 2})
	require.NoError(t, err)
	defer a.Release()
	assert.Equal(t, xparrow.FormatInt64, a.Format())

	b, err := array.Build(mem, []uint{1})
	require.NoError(t, err)
	defer b.Release()
	assert.Equal(t, xparrow.FormatUint64, b.Format())
}

func TestBuildNullable(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []xparrow.Nullable[float64]{
		xparrow.Some(1.5),
		xparrow.Null[float64](),
		xparrow.Some(-2.0),
	})
	require.NoError(t, err)
	defer a.Release()

	nums := a.(*array.Number[float64])
	assert.Equal(t, 1, a.NullN())
	assert.Equal(t, 1.5, nums.Value(0))
	assert.True(t, a.IsNull(1))
	assert.Equal(t, -2.0, nums.Value(2))
}

func TestBuildPointerNullable(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	x, y := "left", "right"
	a, err := array.Build(mem, []*string{&x, nil, &y})
	require.NoError(t, err)
	defer a.Release()

	strs := a.(*array.String)
	assert.Equal(t, "left", strs.Value(0))
	assert.True(t, a.IsNull(1))
	assert.Equal(t, "right", strs.Value(2))
}

func TestBuildStrings(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []string{"alpha", "", "gamma"})
	require.NoError(t, err)
	defer a.Release()

	strs := a.(*array.String)
	assert.Equal(t, "alpha", strs.Value(0))
	assert.Equal(t, "", strs.Value(1))
	assert.Equal(t, "gamma", strs.Value(2))
}

func TestBuildBytes(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, [][]byte{{0xDE, 0xAD}, {0xBE}})
	require.NoError(t, err)
	defer a.Release()

	assert.Equal(t, xparrow.FormatBinary, a.Format())
	bin := a.(*array.Binary)
	assert.Equal(t, []byte{0xDE, 0xAD}, bin.Value(0))
}

func TestBuildList(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, [][]int64{{1, 2}, {}, {3, 4, 5}})
	require.NoError(t, err)
	defer a.Release()

	lst := a.(*array.List)
	assert.Equal(t, 3, lst.Len())
	assert.Equal(t, []int32{0, 2, 2, 5}, lst.Offsets())

	vals := lst.ListValues().(*array.Number[int64])
	v := lst.Value(2)
	assert.Equal(t, int64(3), vals.Value(int(v.Begin())))
}

func TestBuildNullListElement(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []xparrow.Nullable[[]int32]{
		xparrow.Some([]int32{1}),
		xparrow.Null[[]int32](),
		xparrow.Some([]int32{2, 3}),
	})
	require.NoError(t, err)
	defer a.Release()

	lst := a.(*array.List)
	assert.Equal(t, 1, lst.NullN())
	assert.True(t, lst.IsNull(1))
	// The null element contributes a zero-length span.
	assert.Equal(t, []int32{0, 1, 1, 3}, lst.Offsets())
}

func TestBuildFixedSizeList(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, [][3]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	defer a.Release()

	fsl := a.(*array.FixedSizeList)
	assert.Equal(t, "+w:3", fsl.Format())
	assert.Equal(t, 3, fsl.N())
	vals := fsl.ListValues().(*array.Number[float64])
	assert.Equal(t, 5.0, vals.Value(4))
}

func TestBuildNullFixedSizeElement(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []*[2]int32{{7, 8}, nil})
	require.NoError(t, err)
	defer a.Release()

	fsl := a.(*array.FixedSizeList)
	assert.True(t, fsl.IsNull(1))
	// The null element still holds arity zero-filled child slots.
	vals := fsl.ListValues().(*array.Number[int32])
	assert.Equal(t, 4, vals.Len())
	assert.Equal(t, int32(0), vals.Value(2))
	assert.Equal(t, int32(0), vals.Value(3))
}

func TestBuildStruct(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	type row struct {
		ID    int64
		Name  string `xparrow:"name"`
		Score xparrow.Nullable[float64]
	}
	a, err := array.Build(mem, []row{
		{ID: 1, Name: "a", Score: xparrow.Some(0.5)},
		{ID: 2, Name: "b", Score: xparrow.Null[float64]()},
	})
	require.NoError(t, err)
	defer a.Release()

	st := a.(*array.Struct)
	assert.Equal(t, 3, st.NumFields())
	assert.Equal(t, "ID", st.FieldName(0))
	assert.Equal(t, "name", st.FieldName(1))

	assert.Equal(t, int64(2), st.Field(0).(*array.Number[int64]).Value(1))
	assert.Equal(t, "b", st.FieldByName("name").(*array.String).Value(1))
	score := st.Field(2)
	assert.True(t, score.IsNull(1))
	assert.Equal(t, 0.5, score.(*array.Number[float64]).Value(0))
}

func TestBuildNestedStructList(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	type point struct {
		X float64
		Y float64
	}
	a, err := array.Build(mem, [][]point{
		{{1, 2}, {3, 4}},
		{},
		{{5, 6}},
	})
	require.NoError(t, err)
	defer a.Release()

	lst := a.(*array.List)
	assert.Equal(t, 3, lst.Len())
	pts := lst.ListValues().(*array.Struct)
	assert.Equal(t, 3, pts.Len())
	assert.Equal(t, 6.0, pts.Field(1).(*array.Number[float64]).Value(2))
}

func TestBuildEmpty(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []int64{})
	require.NoError(t, err)
	defer a.Release()
	assert.Equal(t, 0, a.Len())

	b, err := array.Build(mem, [][]string{})
	require.NoError(t, err)
	defer b.Release()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, xparrow.FormatList, b.Format())
}

func TestBuildRejectsNonSlice(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	_, err := array.Build(mem, 42)
	if !errors.Is(err, xparrow.ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}
}

func TestBuildRejectsUnsupportedElem(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	_, err := array.Build(mem, []map[string]int{{"x": 1}})
	if !errors.Is(err, xparrow.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

// A built array round-trips through Clone and stays equal.
func TestBuildCloneEqual(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.Build(mem, []xparrow.Nullable[[]string]{
		xparrow.Some([]string{"x", "y"}),
		xparrow.Null[[]string](),
	})
	require.NoError(t, err)

	cp := a.Clone()
	assert.True(t, array.Equal(a, cp))
	a.Release()

	lst := cp.(*array.List)
	strs := lst.ListValues().(*array.String)
	assert.Equal(t, "y", strs.Value(1))
	cp.Release()
}
