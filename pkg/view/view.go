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

package view

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reshape/pkg/action"
	"github.com/walteh/reshape/pkg/ranges"
	"github.com/walteh/reshape/pkg/scope"
)

// Status tells whether actions apply to a fragment.
type Status int

const (
	OutOfScope Status = iota
	InScope
)

func (s Status) String() string {
	if s == InScope {
		return "in-scope"
	}
	return "out-of-scope"
}

// Fragment is one contiguous cell of a view.
type Fragment struct {
	// Range is where the fragment sat in the original input.
	Range    ranges.Range
	Content  string
	Status   Status
	Bindings scope.Bindings
}

// FragmentError attributes an action failure to the fragment it happened on.
type FragmentError struct {
	Range ranges.Range
	Err   error
}

func (e *FragmentError) Error() string {
	return "fragment " + e.Range.String() + ": " + e.Err.Error()
}

func (e *FragmentError) Unwrap() error {
	return e.Err
}

// 🧩 View is the ordered, gap-free partition of one input. It is owned by
// whoever processes that input and is not safe for concurrent use.
type View struct {
	fragments []Fragment
}

// Fragments returns a copy of the fragments in order.
func (v *View) Fragments() []Fragment {
	out := make([]Fragment, len(v.fragments))
	copy(out, v.fragments)
	return out
}

// String reassembles the current fragment contents.
func (v *View) String() string {
	var sb strings.Builder
	for _, f := range v.fragments {
		sb.WriteString(f.Content)
	}
	return sb.String()
}

// HasInScope reports whether any fragment is in scope.
func (v *View) HasInScope() bool {
	return v.InScopeCount() > 0
}

// InScopeCount returns the number of in-scope fragments.
func (v *View) InScopeCount() int {
	n := 0
	for _, f := range v.fragments {
		if f.Status == InScope {
			n++
		}
	}
	return n
}

// ⚙️ Apply runs actions in order over every in-scope fragment, each action
// consuming the output of the previous one. When an action fails the view is
// left as it was before the call.
func (v *View) Apply(ctx context.Context, actions ...action.Action) error {
	contents := make([]string, len(v.fragments))
	for i, f := range v.fragments {
		contents[i] = f.Content
	}

	for _, a := range actions {
		for i, f := range v.fragments {
			if f.Status != InScope {
				continue
			}
			out, err := action.Apply(a, contents[i], f.Bindings)
			if err != nil {
				var missing *action.MissingCaptureGroupError
				if errors.As(err, &missing) {
					zerolog.Ctx(ctx).Error().
						Stringer("fragment", f.Range).
						Stringer("group", missing.Group).
						Msg("replacement references a capture group the fragment does not have")
				}
				return &FragmentError{Range: f.Range, Err: err}
			}
			contents[i] = out
		}
	}

	for i := range v.fragments {
		v.fragments[i].Content = contents[i]
	}
	return nil
}
