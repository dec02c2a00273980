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

// Package view partitions an input into in-scope and out-of-scope fragments
// and applies actions to the in-scope ones.
package view

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reshape/pkg/ranges"
	"github.com/walteh/reshape/pkg/scope"
)

// ErrMultipleContextSources is returned when a second source that produces
// bindings is exploded into the same builder.
var ErrMultipleContextSources = errors.Base("only one context producing source may be applied to a view")

// Option configures a Builder.
type Option func(*Builder)

// WithJoin makes the in-scope set the union of all sources instead of their
// intersection.
func WithJoin() Option {
	return func(b *Builder) { b.join = true }
}

// WithInvert flips the final in-scope set.
func WithInvert() Option {
	return func(b *Builder) { b.invert = true }
}

// 🧱 Builder narrows the in-scope set of one input source by source, then
// cuts the input into fragments.
type Builder struct {
	input  string
	join   bool
	invert bool

	applied    int
	inScope    ranges.Set
	boundaries map[int]struct{}

	withContext bool
	matches     []scope.Match
}

// NewBuilder starts a builder for input with every byte in scope.
func NewBuilder(input string, opts ...Option) *Builder {
	b := &Builder{
		input:      input,
		boundaries: map[int]struct{}{0: {}, len(input): {}},
	}
	if len(input) > 0 {
		b.inScope = ranges.Set{ranges.New(0, len(input))}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Explode applies src to the input, narrowing the in-scope set (or widening
// it when joining) and recording every match boundary.
func (b *Builder) Explode(ctx context.Context, src scope.Source) error {
	withContext := scope.ProducesContext(src)
	if withContext && b.withContext {
		return ErrMultipleContextSources
	}

	matches, err := src.Scope(ctx, b.input)
	if err != nil {
		return errors.Errorf("scoping input: %w", err)
	}
	if withContext {
		b.withContext = true
	}

	found := ranges.Merge(scope.RangesOf(matches))
	switch {
	case b.applied == 0:
		b.inScope = found
	case b.join:
		b.inScope = ranges.Union(b.inScope, found)
	default:
		b.inScope = ranges.Intersect(b.inScope, found)
	}
	b.applied++

	for _, m := range matches {
		b.boundaries[m.Range.Start] = struct{}{}
		b.boundaries[m.Range.End] = struct{}{}
		if m.Bindings != nil && !m.Range.IsEmpty() {
			b.matches = append(b.matches, m)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("matches", len(matches)).
		Stringer("in_scope", b.inScope).
		Bool("join", b.join).
		Msg("exploded scope source")

	return nil
}

// 🏗️ Build cuts the input at every recorded boundary and returns the view.
// An empty input yields a view with no fragments.
func (b *Builder) Build() *View {
	inScope := b.inScope
	if b.invert {
		inScope = ranges.Invert(inScope, len(b.input))
	}

	cuts := make([]int, 0, len(b.boundaries)+2*len(inScope))
	seen := make(map[int]struct{}, len(b.boundaries))
	add := func(i int) {
		if _, ok := seen[i]; !ok {
			seen[i] = struct{}{}
			cuts = append(cuts, i)
		}
	}
	for i := range b.boundaries {
		add(i)
	}
	for _, r := range inScope {
		add(r.Start)
		add(r.End)
	}
	sort.Ints(cuts)

	sort.Slice(b.matches, func(i, j int) bool {
		return b.matches[i].Range.Start < b.matches[j].Range.Start
	})

	v := &View{fragments: make([]Fragment, 0, len(cuts))}
	for i := 0; i+1 < len(cuts); i++ {
		r := ranges.New(cuts[i], cuts[i+1])
		f := Fragment{
			Range:   r,
			Content: b.input[r.Start:r.End],
			Status:  OutOfScope,
		}
		if inScope.Covers(r) {
			f.Status = InScope
			f.Bindings = b.bindingsFor(r)
		}
		v.fragments = append(v.fragments, f)
	}
	return v
}

// bindingsFor returns the bindings of the last recorded match containing r.
func (b *Builder) bindingsFor(r ranges.Range) scope.Bindings {
	var out scope.Bindings
	for _, m := range b.matches {
		if m.Range.Start > r.Start {
			break
		}
		if m.Range.Contains(r) {
			out = m.Bindings
		}
	}
	return out
}
