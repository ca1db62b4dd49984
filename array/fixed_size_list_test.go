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
	"github.com/xtensor-stack/xparrow/bitutil"
	"github.com/xtensor-stack/xparrow/memory"
)

func TestFixedSizeListRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	child, err := array.NewNumberFromSlice(mem, []float32{1, 2, 3, 4, 5, 6}, nil)
	require.NoError(t, err)

	a, err := array.NewFixedSizeListFromParts(mem, 3, child, nil)
	require.NoError(t, err)
	defer a.Release()

	assert.Equal(t, "+w:3", a.Format())
	assert.Equal(t, 3, a.N())
	assert.Equal(t, 2, a.Len())

	v := a.Value(1)
	assert.Equal(t, 3, v.Len())
	vals := v.Values().(*array.Number[float32])
	assert.Equal(t, float32(4), vals.Value(int(v.Begin())))
}

func TestFixedSizeListChildNotMultiple(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	child, err := array.NewNumberFromSlice(mem, []int32{1, 2, 3, 4, 5}, nil)
	require.NoError(t, err)
	defer child.Release()

	_, err = array.NewFixedSizeListFromParts(mem, 3, child, nil)
	if !errors.Is(err, xparrow.ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}
}

func TestFixedSizeListWithNulls(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	child, err := array.NewNumberFromSlice(mem, []int64{1, 2, 0, 0}, nil)
	require.NoError(t, err)
	validity := bitutil.NewBitmapFromBools([]bool{true, false})

	a, err := array.NewFixedSizeListFromParts(mem, 2, child, validity)
	require.NoError(t, err)
	defer a.Release()

	assert.Equal(t, 1, a.NullN())
	assert.True(t, a.IsNull(1))
	// A null element still spans its fixed arity in the child.
	assert.Equal(t, 2, a.Value(1).Len())
}

func TestFixedSizeListArityParsing(t *testing.T) {
	n, err := xparrow.FixedSizeListArity("+w:12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, format := range []string{"+w:", "+w:x", "+w:-1", "+l"} {
		if _, err := xparrow.FixedSizeListArity(format); !errors.Is(err, xparrow.ErrInvalidFormat) {
			t.Fatalf("FixedSizeListArity(%q): got %v, want ErrInvalidFormat", format, err)
		}
	}
}
