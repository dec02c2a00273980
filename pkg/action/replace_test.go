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

package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/reshape/pkg/scope"
	"gitlab.com/tozd/go/errors"
)

func bind(pairs ...any) scope.Bindings {
	b := scope.Bindings{}
	for i := 0; i < len(pairs); i += 2 {
		var g scope.CaptureGroup
		switch k := pairs[i].(type) {
		case string:
			g = scope.Named(k)
		case int:
			g = scope.Numbered(k)
		}
		b[g] = scope.Capture{Text: pairs[i+1].(string)}
	}
	return b
}

func TestReplacementActWithContext(t *testing.T) {
	tests := []struct {
		name     string
		template string
		bindings scope.Bindings
		want     string
	}{
		{
			name:     "plain_variable",
			template: "Hello $var World",
			bindings: bind("var", "Rust"),
			want:     "Hello Rust World",
		},
		{
			name:     "double_braces",
			template: "${{name}}",
			bindings: bind("name", "x"),
			want:     "x",
		},
		{
			name:     "numbered_and_literal_suffix",
			template: "$0hello",
			bindings: bind(0, "abc"),
			want:     "abchello",
		},
		{
			name:     "repeated_and_interleaved",
			template: "$a-$1-$a",
			bindings: bind("a", "x", 1, "y"),
			want:     "x-y-x",
		},
		{
			name:     "escaped_dollars_stay_literal",
			template: "$$notavar",
			bindings: bind(0, "unused"),
			want:     "$$notavar",
		},
		{
			name:     "escape_then_variable",
			template: "$$$avar",
			bindings: bind("avar", "v"),
			want:     "$$v",
		},
		{
			name:     "swap_groups",
			template: "${2}=${1}",
			bindings: bind(1, "key", 2, "value"),
			want:     "value=key",
		},
		{
			name:     "no_variables_ignores_bindings",
			template: "fixed",
			want:     "fixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := NewReplacement(tt.template)
			require.NoError(t, err)

			got, err := rep.ActWithContext("ignored input", tt.bindings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplacementMissingBinding(t *testing.T) {
	rep, err := NewReplacement("Hello $undefined")
	require.NoError(t, err)

	_, err = rep.ActWithContext("x", bind(0, "x", "other", "y"))
	require.Error(t, err)

	var missing *MissingCaptureGroupError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, scope.Named("undefined"), missing.Group)
	assert.Equal(t, []scope.CaptureGroup{scope.Numbered(0), scope.Named("other")}, missing.Available)
	assert.Contains(t, err.Error(), `capture group "undefined" not found (available: 0, other)`)

	_, err = rep.ActWithContext("x", nil)
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, missing.Available)
}

func TestReplacementAct(t *testing.T) {
	rep, err := NewReplacement(`a\tb $1`)
	require.NoError(t, err)
	assert.Equal(t, "a\tb $1", rep.Act("whatever"))
	assert.Equal(t, "a\tb $1", rep.Template())
	assert.Equal(t, VariablePositions{scope.Numbered(1): {r(4, 6)}}, rep.Variables())
}

func TestNewReplacementErrors(t *testing.T) {
	_, err := NewReplacement(`bad \q escape`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEscape))

	_, err = NewReplacement("${{name}")
	var mbe *MismatchedBracesError
	require.ErrorAs(t, err, &mbe)
	assert.Equal(t, "${{name}", mbe.Template)

	_, err = NewReplacement("[$18446744073709551617]")
	var goe *GroupOverflowError
	require.ErrorAs(t, err, &goe)
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "no_escapes", input: "plain ünïcode", want: "plain ünïcode"},
		{name: "newline_and_tab", input: `a\nb\tc`, want: "a\nb\tc"},
		{name: "backslash", input: `a\\b`, want: `a\b`},
		{name: "quotes", input: `\"q\'`, want: `"q'`},
		{name: "hex", input: `\x41`, want: "A"},
		{name: "unicode", input: `caf\u00e9`, want: "café"},
		{name: "unknown", input: `\q`, wantErr: true},
		{name: "trailing_backslash", input: `abc\`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unescape(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidEscape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
