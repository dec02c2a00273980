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

// Package ranges implements half-open byte ranges and the set algebra used to
// combine scopes: merging, subtraction, intersection and inversion.
package ranges

import (
	"fmt"
	"sort"
	"strings"
)

// 📏 Range is a half-open span [Start, End) over input bytes.
type Range struct {
	Start int
	End   int
}

// New returns the range [start, end).
func New(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of bytes covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// 📦 Set is an ordered collection of ranges. Sets returned by this package are
// normalized: ascending by start, no empty elements, and no two elements
// overlapping or touching.
type Set []Range

func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, r.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Covers reports whether r lies entirely within a single element of the
// normalized set s.
func (s Set) Covers(r Range) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].End >= r.End })
	return i < len(s) && s[i].Contains(r)
}

// IsNormalized reports whether s is sorted, free of empty elements and free of
// overlapping or touching neighbours.
func (s Set) IsNormalized() bool {
	for i, r := range s {
		if r.IsEmpty() {
			return false
		}
		if i > 0 && r.Start <= s[i-1].End {
			return false
		}
	}
	return true
}

// 🔄 Merge sorts the ranges and coalesces any that overlap or touch.
func Merge(s Set) Set {
	if len(s) == 0 {
		return nil
	}

	sorted := make(Set, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	var out Set
	for _, r := range sorted {
		if r.IsEmpty() {
			continue
		}
		if n := len(out); n > 0 && r.Start <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, r.End)
			continue
		}
		out = append(out, r)
	}
	return out
}

// ➖ Subtract returns the parts of a not covered by b.
func Subtract(a, b Set) Set {
	a, b = Merge(a), Merge(b)

	var out Set
	j := 0
	for _, x := range a {
		// b ranges ending before x also end before every later element of a
		for j < len(b) && b[j].End <= x.Start {
			j++
		}

		cur := x.Start
		for k := j; k < len(b) && b[k].Start < x.End; k++ {
			if b[k].Start > cur {
				out = append(out, Range{Start: cur, End: b[k].Start})
			}
			cur = max(cur, b[k].End)
		}
		if cur < x.End {
			out = append(out, Range{Start: cur, End: x.End})
		}
	}
	return out
}

// Intersect returns the bytes covered by both a and b.
func Intersect(a, b Set) Set {
	a, b = Merge(a), Merge(b)

	var out Set
	for i, j := 0, 0; i < len(a) && j < len(b); {
		lo := max(a[i].Start, b[j].Start)
		hi := min(a[i].End, b[j].End)
		if lo < hi {
			out = append(out, Range{Start: lo, End: hi})
		}
		if a[i].End < b[j].End {
			i++
		} else {
			j++
		}
	}
	return Merge(out)
}

// Union returns the bytes covered by either a or b.
func Union(a, b Set) Set {
	all := make(Set, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return Merge(all)
}

// 🔀 Invert returns the complement of s within [0, total).
func Invert(s Set, total int) Set {
	if total <= 0 {
		return nil
	}

	var out Set
	cur := 0
	for _, r := range Merge(s) {
		if r.Start >= total {
			break
		}
		if r.Start > cur {
			out = append(out, Range{Start: cur, End: r.Start})
		}
		cur = max(cur, r.End)
	}
	if cur < total {
		out = append(out, Range{Start: cur, End: total})
	}
	return out
}
