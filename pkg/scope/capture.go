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

package scope

import (
	"sort"
	"strconv"

	"github.com/walteh/reshape/pkg/ranges"
)

// 🏷️ CaptureGroup identifies a capture either by name or by number. A named
// group never equals a numbered one, even when the name is made of digits.
type CaptureGroup struct {
	name   string
	number int
	named  bool
}

// Named returns the capture group called name.
func Named(name string) CaptureGroup {
	return CaptureGroup{name: name, named: true}
}

// Numbered returns the n-th capture group; 0 is the whole match.
func Numbered(n int) CaptureGroup {
	return CaptureGroup{number: n}
}

// ParseCaptureGroup reads "3" as Numbered(3) and anything else as Named.
func ParseCaptureGroup(s string) CaptureGroup {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return Numbered(n)
	}
	return Named(s)
}

// IsNamed reports whether g is a named group.
func (g CaptureGroup) IsNamed() bool { return g.named }

// Name returns the group name, empty for numbered groups.
func (g CaptureGroup) Name() string { return g.name }

// Number returns the group number, zero for named groups.
func (g CaptureGroup) Number() int { return g.number }

func (g CaptureGroup) String() string {
	if g.named {
		return g.name
	}
	return strconv.Itoa(g.number)
}

// less orders numbered groups first, then named groups alphabetically.
func (g CaptureGroup) less(other CaptureGroup) bool {
	if g.named != other.named {
		return !g.named
	}
	if g.named {
		return g.name < other.name
	}
	return g.number < other.number
}

// Capture is the text a group matched and where it matched in the input.
type Capture struct {
	Text  string
	Range ranges.Range
}

// 📎 Bindings are the captures produced by a single match.
type Bindings map[CaptureGroup]Capture

// Groups returns the bound groups, numbered first.
func (b Bindings) Groups() []CaptureGroup {
	out := make([]CaptureGroup, 0, len(b))
	for g := range b {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Lookup returns the text bound to g.
func (b Bindings) Lookup(g CaptureGroup) (string, bool) {
	c, ok := b[g]
	return c.Text, ok
}
