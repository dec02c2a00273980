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
)

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		input  string
		want   string
	}{
		{name: "upper_ascii", action: Upper{}, input: "a", want: "A"},
		{name: "upper_german", action: Upper{}, input: "aAäÄöÖüÜßẞ!", want: "AAÄÄÖÖÜÜẞẞ!"},
		{name: "upper_ss", action: Upper{}, input: "ss", want: "SS"},
		{name: "upper_cjk", action: Upper{}, input: "你好!", want: "你好!"},
		{name: "upper_cyrillic", action: Upper{}, input: "привет!", want: "ПРИВЕТ!"},
		{name: "upper_emoji_nul", action: Upper{}, input: "👋\x00", want: "👋\x00"},
		{name: "lower_german", action: Lower{}, input: "AaÄäÖöÜüẞß!", want: "aaääööüüßß!"},
		{name: "lower_ss", action: Lower{}, input: "SS", want: "ss"},
		{name: "lower_cyrillic", action: Lower{}, input: "ПРИВЕТ!", want: "привет!"},
		{name: "titlecase", action: Titlecase{}, input: "hello wide world", want: "Hello Wide World"},
		{name: "normalize_accents", action: Normalization{}, input: "café naïve", want: "cafe naive"},
		{name: "normalize_plain", action: Normalization{}, input: "plain", want: "plain"},
		{name: "delete", action: Deletion{}, input: "gone", want: ""},
		{name: "func", action: Func(func(s string) string { return s + s }), input: "ab", want: "abab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.action.Act(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tt.action.Act(got), "builtin actions should be idempotent")
		})
	}
}

func TestApplyDispatch(t *testing.T) {
	rep, err := NewReplacement("<$1>")
	require.NoError(t, err)

	got, err := Apply(rep, "in", bind(1, "x"))
	require.NoError(t, err)
	assert.Equal(t, "<x>", got)

	got, err = Apply(Upper{}, "in", bind(1, "x"))
	require.NoError(t, err)
	assert.Equal(t, "IN", got)
}

func TestNew(t *testing.T) {
	arg := "x"

	a, err := New("replace", &arg)
	require.NoError(t, err)
	assert.IsType(t, &Replacement{}, a)

	a, err = New("Upper", nil)
	require.NoError(t, err)
	assert.Equal(t, Upper{}, a)

	_, err = New("replace", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a replacement template")

	_, err = New("lower", &arg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "takes no argument")

	_, err = New("shout", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown action "shout"`)

	assert.Equal(t, []string{"delete", "lower", "normalize", "replace", "titlecase", "upper"}, Kinds())
}
