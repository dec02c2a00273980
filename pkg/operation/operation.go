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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reshape/pkg/action"
	"github.com/walteh/reshape/pkg/scope"
	"github.com/walteh/reshape/pkg/view"
)

var (
	// ErrFailAny is returned when FailAny is set and something was in scope.
	ErrFailAny = errors.Base("input contained in-scope content")
	// ErrFailNone is returned when FailNone is set and nothing was in scope.
	ErrFailNone = errors.Base("input contained no in-scope content")
)

// 🔧 Options describes what a run scopes and does
type Options struct {
	// Sources are applied in order, narrowing the in-scope set
	Sources []scope.Source
	// Actions run in order over every in-scope fragment
	Actions []action.Action
	// Join ORs the sources instead of ANDing them
	Join bool
	// Invert flips the final in-scope set
	Invert bool
	// FailAny fails when anything is in scope
	FailAny bool
	// FailNone fails when nothing is in scope
	FailNone bool
	// DryRun leaves files untouched and reports diffs instead
	DryRun bool
	// Jobs bounds how many files are processed at once; zero means GOMAXPROCS
	Jobs int
	// Label describes the run in console output
	Label string
}

func (o Options) viewOptions() []view.Option {
	var out []view.Option
	if o.Join {
		out = append(out, view.WithJoin())
	}
	if o.Invert {
		out = append(out, view.WithInvert())
	}
	return out
}

// 📦 Result is the outcome of processing one input
type Result struct {
	Output    string
	Fragments int
	InScope   int
	Modified  bool
}

// 🎯 Process scopes input, applies the actions and reassembles the output.
// When a failure policy trips, the returned result carries the unmodified
// input along with ErrFailAny or ErrFailNone.
func Process(ctx context.Context, input string, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	b := view.NewBuilder(input, opts.viewOptions()...)
	for i, src := range opts.Sources {
		if err := b.Explode(ctx, src); err != nil {
			return nil, errors.Errorf("applying scope %d: %w", i, err)
		}
	}
	v := b.Build()

	res := &Result{
		Output:    input,
		Fragments: len(v.Fragments()),
		InScope:   v.InScopeCount(),
	}

	logger.Debug().
		Int("bytes", len(input)).
		Int("fragments", res.Fragments).
		Int("in_scope", res.InScope).
		Msg("built view")

	switch {
	case opts.FailAny && v.HasInScope():
		return res, ErrFailAny
	case opts.FailNone && !v.HasInScope():
		return res, ErrFailNone
	}

	if err := v.Apply(ctx, opts.Actions...); err != nil {
		return res, errors.Errorf("applying actions: %w", err)
	}

	res.Output = v.String()
	res.Modified = res.Output != input
	return res, nil
}
