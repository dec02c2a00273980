// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ranges

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input Set
		want  Set
	}{
		{
			name: "empty",
		},
		{
			name:  "single",
			input: Set{{1, 3}},
			want:  Set{{1, 3}},
		},
		{
			name:  "unsorted_disjoint",
			input: Set{{5, 7}, {0, 2}},
			want:  Set{{0, 2}, {5, 7}},
		},
		{
			name:  "overlapping",
			input: Set{{0, 4}, {2, 6}},
			want:  Set{{0, 6}},
		},
		{
			name:  "touching",
			input: Set{{0, 2}, {2, 4}},
			want:  Set{{0, 4}},
		},
		{
			name:  "nested",
			input: Set{{0, 10}, {2, 4}, {5, 6}},
			want:  Set{{0, 10}},
		},
		{
			name:  "drops_empty",
			input: Set{{3, 3}, {5, 6}},
			want:  Set{{5, 6}},
		},
		{
			name:  "mixed_order_from_query",
			input: Set{{10, 12}, {0, 3}, {11, 15}, {2, 5}, {20, 21}},
			want:  Set{{0, 5}, {10, 15}, {20, 21}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsNormalized(), "merged set should be normalized")
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		a    Set
		b    Set
		want Set
	}{
		{
			name: "empty_minuend",
			b:    Set{{0, 3}},
		},
		{
			name: "empty_subtrahend",
			a:    Set{{0, 3}},
			want: Set{{0, 3}},
		},
		{
			name: "hole_in_middle",
			a:    Set{{0, 10}},
			b:    Set{{3, 5}},
			want: Set{{0, 3}, {5, 10}},
		},
		{
			name: "cut_both_ends",
			a:    Set{{2, 8}},
			b:    Set{{0, 3}, {7, 12}},
			want: Set{{3, 7}},
		},
		{
			name: "fully_covered",
			a:    Set{{2, 8}},
			b:    Set{{0, 10}},
		},
		{
			name: "subtrahend_spans_two",
			a:    Set{{0, 4}, {6, 10}},
			b:    Set{{3, 7}},
			want: Set{{0, 3}, {7, 10}},
		},
		{
			name: "several_holes",
			a:    Set{{0, 20}},
			b:    Set{{1, 2}, {5, 8}, {18, 25}},
			want: Set{{0, 1}, {2, 5}, {8, 18}},
		},
		{
			name: "unnormalized_inputs",
			a:    Set{{6, 10}, {0, 4}, {3, 5}},
			b:    Set{{8, 9}},
			want: Set{{0, 5}, {6, 8}, {9, 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(tt.a, tt.b)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsNormalized(), "difference should be normalized")
		})
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a    Set
		b    Set
		want Set
	}{
		{
			name: "disjoint",
			a:    Set{{0, 2}},
			b:    Set{{2, 4}},
		},
		{
			name: "overlap",
			a:    Set{{0, 5}},
			b:    Set{{3, 8}},
			want: Set{{3, 5}},
		},
		{
			name: "many_to_one",
			a:    Set{{0, 2}, {4, 6}, {8, 10}},
			b:    Set{{1, 9}},
			want: Set{{1, 2}, {4, 6}, {8, 9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intersect(tt.a, tt.b))
		})
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name  string
		input Set
		total int
		want  Set
	}{
		{
			name:  "empty_set",
			total: 5,
			want:  Set{{0, 5}},
		},
		{
			name:  "full_cover",
			input: Set{{0, 5}},
			total: 5,
		},
		{
			name:  "zero_total",
			input: Set{{0, 5}},
		},
		{
			name:  "gaps_and_edges",
			input: Set{{2, 3}, {5, 7}},
			total: 10,
			want:  Set{{0, 2}, {3, 5}, {7, 10}},
		},
		{
			name:  "leading_cover",
			input: Set{{0, 3}},
			total: 6,
			want:  Set{{3, 6}},
		},
		{
			name:  "unmerged_input",
			input: Set{{4, 6}, {0, 2}, {1, 3}},
			total: 6,
			want:  Set{{3, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Invert(tt.input, tt.total))
		})
	}
}

func TestCovers(t *testing.T) {
	s := Set{{0, 3}, {5, 9}}

	assert.True(t, s.Covers(Range{0, 3}))
	assert.True(t, s.Covers(Range{6, 8}))
	assert.False(t, s.Covers(Range{2, 6}))
	assert.False(t, s.Covers(Range{3, 5}))
	assert.False(t, Set(nil).Covers(Range{0, 1}))
}

func randomSet(rng *rand.Rand, n int) Set {
	var s Set
	for i := rng.Intn(8); i > 0; i-- {
		start := rng.Intn(n)
		end := start + rng.Intn(n-start+1)
		s = append(s, Range{Start: start, End: end})
	}
	return s
}

func TestAlgebraLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const total = 40

	for i := 0; i < 500; i++ {
		a := randomSet(rng, total)
		b := randomSet(rng, total)

		merged := Merge(a)
		require.Equal(t, merged, Merge(merged), "merge should be idempotent for %v", a)
		require.True(t, merged.IsNormalized(), "merge should normalize %v", a)

		diff := Subtract(a, b)
		require.True(t, diff.IsNormalized())
		require.Equal(t, merged, Union(diff, Intersect(a, b)), "subtract/union law for %v and %v", a, b)
		require.Empty(t, Intersect(diff, b), "difference should not overlap %v", b)

		require.Equal(t, merged, Invert(Invert(a, total), total), "invert should be an involution for %v", a)
	}
}
