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

package xparrow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtensor-stack/xparrow"
)

func TestBufferCount(t *testing.T) {
	for _, tc := range []struct {
		format string
		want   int
	}{
		{"n", 0},
		{"b", 2}, {"l", 2}, {"d", 2},
		{"u", 3}, {"z", 3},
		{"+l", 2}, {"+L", 2},
		{"+vl", 3}, {"+vL", 3},
		{"+s", 1}, {"+w:4", 1},
	} {
		got, err := xparrow.BufferCount(tc.format)
		require.NoError(t, err, "format %q", tc.format)
		if got != tc.want {
			t.Fatalf("BufferCount(%q): got %d, want %d", tc.format, got, tc.want)
		}
	}

	_, err := xparrow.BufferCount("q")
	if !errors.Is(err, xparrow.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestChildCount(t *testing.T) {
	for _, tc := range []struct {
		format string
		want   int
	}{
		{"l", 0}, {"u", 0}, {"n", 0},
		{"+l", 1}, {"+vL", 1}, {"+w:2", 1},
		{"+s", -1},
	} {
		got, err := xparrow.ChildCount(tc.format)
		require.NoError(t, err, "format %q", tc.format)
		if got != tc.want {
			t.Fatalf("ChildCount(%q): got %d, want %d", tc.format, got, tc.want)
		}
	}
}

func TestFormatClassifiers(t *testing.T) {
	assert.True(t, xparrow.IsPrimitive("b"))
	assert.True(t, xparrow.IsPrimitive("L"))
	assert.False(t, xparrow.IsPrimitive("n"))
	assert.False(t, xparrow.IsPrimitive("+l"))

	assert.True(t, xparrow.IsVarBinary("u"))
	assert.True(t, xparrow.IsVarBinary("z"))
	assert.False(t, xparrow.IsVarBinary("l"))

	assert.True(t, xparrow.IsNested("+s"))
	assert.True(t, xparrow.IsNested("+w:3"))
	assert.False(t, xparrow.IsNested("d"))
}

func TestPrimitiveWidth(t *testing.T) {
	for _, tc := range []struct {
		format string
		want   int
	}{
		{"b", 0}, {"c", 1}, {"S", 2}, {"i", 4}, {"L", 8}, {"f", 4}, {"d", 8},
	} {
		got, err := xparrow.PrimitiveWidth(tc.format)
		require.NoError(t, err)
		if got != tc.want {
			t.Fatalf("PrimitiveWidth(%q): got %d, want %d", tc.format, got, tc.want)
		}
	}
}

func TestCastRoundTrip(t *testing.T) {
	values := []int32{1, -2, 3}
	raw := xparrow.CastToBytes(values)
	assert.Len(t, raw, 12)
	back := xparrow.CastFromBytes[int32](raw)
	assert.Equal(t, values, back)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "c", xparrow.FormatFor[int8]())
	assert.Equal(t, "l", xparrow.FormatFor[int64]())
	assert.Equal(t, "L", xparrow.FormatFor[uint64]())
	assert.Equal(t, "f", xparrow.FormatFor[float32]())
	assert.Equal(t, "l", xparrow.FormatFor[int]())
	assert.Equal(t, "L", xparrow.FormatFor[uint]())
}

func TestMetadataFindKey(t *testing.T) {
	md := xparrow.NewMetadata([]string{"a", "b"}, []string{"1", "2"})
	assert.Equal(t, 1, md.FindKey("b"))
	assert.Equal(t, -1, md.FindKey("z"))
	assert.Equal(t, "2", md.ValueAt(1))
}

func TestNullable(t *testing.T) {
	v := xparrow.Some(42)
	assert.True(t, v.HasValue())
	assert.Equal(t, 42, v.Value())

	n := xparrow.Null[int]()
	assert.False(t, n.HasValue())
	_, ok := n.Get()
	assert.False(t, ok)
	assert.Equal(t, "(null)", n.String())
}
