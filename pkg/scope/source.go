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

// Package scope provides the sources deciding which parts of an input are in
// scope: regular expression matches and tree-sitter query captures.
package scope

import (
	"context"

	"github.com/walteh/reshape/pkg/ranges"
)

// Match is one in-scope span, with the captures of the match that produced it
// when the source records them.
type Match struct {
	Range    ranges.Range
	Bindings Bindings
}

// 🔌 Source finds the in-scope spans of an input.
type Source interface {
	// Scope returns the in-scope spans of input in ascending order.
	Scope(ctx context.Context, input string) ([]Match, error)
}

// ContextProducer is implemented by sources whose matches may carry bindings.
type ContextProducer interface {
	ProducesContext() bool
}

// ProducesContext reports whether src may attach bindings to its matches.
func ProducesContext(src Source) bool {
	p, ok := src.(ContextProducer)
	return ok && p.ProducesContext()
}

// MatchesOf turns a set of ranges into matches without bindings.
func MatchesOf(set ranges.Set) []Match {
	out := make([]Match, 0, len(set))
	for _, r := range set {
		out = append(out, Match{Range: r})
	}
	return out
}

// RangesOf returns the spans of matches.
func RangesOf(matches []Match) ranges.Set {
	out := make(ranges.Set, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Range)
	}
	return out
}
