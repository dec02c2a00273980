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

// Package action holds the transformations applied to in-scope fragments.
//
// Actions are expected to be idempotent: applying one to its own output gives
// the same output again. Nothing enforces this; applying a non-idempotent
// action twice is legal.
package action

import "github.com/walteh/reshape/pkg/scope"

// 🎬 Action transforms the content of one in-scope fragment.
type Action interface {
	Act(input string) string
}

// ContextAction is an Action that can use the captures of the match a
// fragment came from.
type ContextAction interface {
	Action
	// ActWithContext transforms input given the bindings of its fragment,
	// which are nil when the fragment carries none.
	ActWithContext(input string, bindings scope.Bindings) (string, error)
}

// Func adapts a plain function to Action.
type Func func(string) string

// Act implements Action.
func (f Func) Act(input string) string {
	return f(input)
}

// Apply runs a on input, passing bindings along when a accepts them.
func Apply(a Action, input string, bindings scope.Bindings) (string, error) {
	if ca, ok := a.(ContextAction); ok {
		return ca.ActWithContext(input, bindings)
	}
	return a.Act(input), nil
}
