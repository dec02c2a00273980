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

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/reshape/pkg/action"
	"github.com/walteh/reshape/pkg/scope"
)

func TestSources(t *testing.T) {
	tests := []struct {
		name        string
		scopes      []ScopeConfig
		errContains string
		check       func(t *testing.T, sources []scope.Source)
	}{
		{
			name: "pattern_and_queries",
			scopes: []ScopeConfig{
				{Pattern: `(?P<w>\w+)`, Capture: "w"},
				{Language: "golang", Query: "comments"},
				{Language: "py", CustomQuery: "(comment) @c"},
			},
			check: func(t *testing.T, sources []scope.Source) {
				require.Len(t, sources, 3)
				assert.IsType(t, &scope.PatternSource{}, sources[0])
				assert.True(t, scope.ProducesContext(sources[0]))

				q, ok := sources[1].(*scope.QuerySource)
				require.True(t, ok)
				assert.Equal(t, "go", q.Language().Name())

				q, ok = sources[2].(*scope.QuerySource)
				require.True(t, ok)
				assert.Equal(t, "python", q.Language().Name())
			},
		},
		{
			name: "literal_pattern",
			scopes: []ScopeConfig{
				{Pattern: "a.b", Literal: true},
			},
			check: func(t *testing.T, sources []scope.Source) {
				matches, err := sources[0].Scope(context.Background(), "axb a.b")
				require.NoError(t, err)
				require.Len(t, matches, 1)
				assert.Equal(t, 4, matches[0].Range.Start)
			},
		},
		{
			name:        "invalid_pattern",
			scopes:      []ScopeConfig{{Pattern: "("}},
			errContains: "scopes[0]",
		},
		{
			name:        "unknown_capture",
			scopes:      []ScopeConfig{{Pattern: "(a)", Capture: "name"}},
			errContains: `no capture group named "name"`,
		},
		{
			name:        "unknown_language",
			scopes:      []ScopeConfig{{Language: "cobol", Query: "comments"}},
			errContains: "cobol",
		},
		{
			name:        "unknown_prepared_query",
			scopes:      []ScopeConfig{{Language: "go", Query: "nothing"}},
			errContains: "nothing",
		},
		{
			name:        "invalid_custom_query",
			scopes:      []ScopeConfig{{Language: "go", CustomQuery: "(not_a_node"}},
			errContains: "scopes[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Scopes: tt.scopes}
			sources, err := cfg.Sources(context.Background())
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, sources)
		})
	}
}

func TestBuildActions(t *testing.T) {
	cfg := &Config{Actions: []ActionConfig{
		{Kind: "replace", With: ptr("[$0]")},
		{Kind: "lower"},
		{Kind: "delete"},
	}}

	actions, err := cfg.BuildActions()
	require.NoError(t, err)
	require.Len(t, actions, 3)
	assert.IsType(t, &action.Replacement{}, actions[0])
	assert.Equal(t, action.Lower{}, actions[1])
	assert.Equal(t, action.Deletion{}, actions[2])

	_, err = (&Config{Actions: []ActionConfig{{Kind: "replace", With: ptr("${{x}")}}}).BuildActions()
	require.Error(t, err)
	var braces *action.MismatchedBracesError
	assert.ErrorAs(t, err, &braces)
}
