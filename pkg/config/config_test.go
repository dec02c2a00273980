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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing config file")
	return path
}

func ptr(s string) *string { return &s }

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_full",
			file: "reshape.yaml",
			config: `
scopes:
  - language: go
    query: comments
  - pattern: 'TODO\((?P<who>\w+)\)'
actions:
  - kind: replace
    with: 'TODO(@${who})'
  - kind: upper
files: ["**/*.go"]
ignore: ["vendor/**"]
join: true
fail_none: true
jobs: 4
`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Scopes, 2, "should have 2 scopes")
				assert.Equal(t, "go", cfg.Scopes[0].Language)
				assert.Equal(t, "comments", cfg.Scopes[0].Query)
				assert.Equal(t, `TODO\((?P<who>\w+)\)`, cfg.Scopes[1].Pattern)
				require.Len(t, cfg.Actions, 2, "should have 2 actions")
				assert.Equal(t, ActionConfig{Kind: "replace", With: ptr("TODO(@${who})")}, cfg.Actions[0])
				assert.Equal(t, ActionConfig{Kind: "upper"}, cfg.Actions[1])
				assert.Equal(t, []string{"**/*.go"}, cfg.Files)
				assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
				assert.True(t, cfg.Join)
				assert.True(t, cfg.FailNone)
				assert.Equal(t, 4, cfg.Jobs)
			},
		},
		{
			name: "yml_extension",
			file: "reshape.yml",
			config: `
scopes:
  - pattern: foo
    literal: true
actions:
  - kind: delete
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Scopes[0].Literal)
				assert.Equal(t, "delete", cfg.Actions[0].Kind)
			},
		},
		{
			name: "json",
			file: "reshape.json",
			config: `{
				"scopes": [{"pattern": "(a)(b)", "capture": "2"}],
				"actions": [{"kind": "titlecase"}],
				"invert": true
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "2", cfg.Scopes[0].Capture)
				assert.Equal(t, "titlecase", cfg.Actions[0].Kind)
				assert.True(t, cfg.Invert)
			},
		},
		{
			name: "hcl",
			file: "reshape.hcl",
			config: `
scope {
  language = "python"
  query    = "strings"
}
action "replace" {
  with = "$${0}!"
}
action "normalize" {}
files     = ["src/**/*.py"]
fail_any  = true
jobs      = 2
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []ScopeConfig{{Language: "python", Query: "strings"}}, cfg.Scopes)
				assert.Equal(t, []ActionConfig{
					{Kind: "replace", With: ptr("${0}!")},
					{Kind: "normalize"},
				}, cfg.Actions)
				assert.Equal(t, []string{"src/**/*.py"}, cfg.Files)
				assert.True(t, cfg.FailAny)
				assert.Equal(t, 2, cfg.Jobs)
			},
		},
		{
			name:        "unknown_extension",
			file:        "reshape.toml",
			config:      `scopes = []`,
			errContains: "no parser found",
		},
		{
			name: "yaml_unknown_field",
			file: "reshape.yaml",
			config: `
scopes:
  - pattern: x
    flavour: spicy
`,
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			file:        "reshape.json",
			config:      `{"scopes": [], "colour": "blue"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_syntax_error",
			file:        "reshape.hcl",
			config:      `scope {`,
			errContains: "parsing HCL",
		},
		{
			name:        "hcl_unknown_attribute",
			file:        "reshape.hcl",
			config:      `colour = "blue"`,
			errContains: "decoding HCL",
		},
		{
			name: "invalid_config",
			file: "reshape.yaml",
			config: `
actions:
  - kind: shout
`,
			errContains: `unknown kind "shout"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			path := writeConfig(t, tt.file, tt.config)

			cfg, err := Load(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestHCLEnvironment(t *testing.T) {
	t.Setenv("RESHAPE_TEST_WORD", "hello")

	cfg, err := Load(context.Background(), writeConfig(t, "env.hcl", `
scope {
  pattern = env.RESHAPE_TEST_WORD
}
action "upper" {}
`))
	require.NoError(t, err)
	assert.Equal(t, "hello", cfg.Scopes[0].Pattern)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{
			name: "valid",
			cfg: Config{
				Scopes:  []ScopeConfig{{Pattern: "x"}, {Language: "go", CustomQuery: "(comment) @c"}},
				Actions: []ActionConfig{{Kind: "Upper"}, {Kind: "replace", With: ptr("y")}},
				Files:   []string{"**/*.go"},
			},
		},
		{
			name: "empty_is_valid",
			cfg:  Config{},
		},
		{
			name:        "scope_without_source",
			cfg:         Config{Scopes: []ScopeConfig{{}}},
			errContains: "one of pattern or language is required",
		},
		{
			name:        "scope_with_both_sources",
			cfg:         Config{Scopes: []ScopeConfig{{Pattern: "x", Language: "go"}}},
			errContains: "mutually exclusive",
		},
		{
			name:        "query_without_language",
			cfg:         Config{Scopes: []ScopeConfig{{Pattern: "x", Query: "comments"}}},
			errContains: "require language",
		},
		{
			name:        "capture_without_pattern",
			cfg:         Config{Scopes: []ScopeConfig{{Language: "go", Query: "comments", Capture: "1"}}},
			errContains: "require pattern",
		},
		{
			name:        "language_without_query",
			cfg:         Config{Scopes: []ScopeConfig{{Language: "go"}}},
			errContains: "exactly one of query or custom_query",
		},
		{
			name:        "language_with_both_queries",
			cfg:         Config{Scopes: []ScopeConfig{{Language: "go", Query: "comments", CustomQuery: "(comment) @c"}}},
			errContains: "exactly one of query or custom_query",
		},
		{
			name:        "replace_without_template",
			cfg:         Config{Actions: []ActionConfig{{Kind: "replace"}}},
			errContains: "replace requires with",
		},
		{
			name:        "bad_glob",
			cfg:         Config{Ignore: []string{"[a-"}},
			errContains: "invalid glob",
		},
		{
			name:        "conflicting_policies",
			cfg:         Config{FailAny: true, FailNone: true},
			errContains: "mutually exclusive",
		},
		{
			name:        "negative_jobs",
			cfg:         Config{Jobs: -1},
			errContains: "jobs must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		file string
		want Parser
	}{
		{"a.yaml", &YAMLParser{}},
		{"a.YML", &YAMLParser{}},
		{"a.json", &JSONParser{}},
		{"a.hcl", &HCLParser{}},
		{"a.txt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got := GetParser(tt.file)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	cfg := &Config{
		Scopes:  []ScopeConfig{{Pattern: "x"}, {Language: "go", Query: "comments"}},
		Actions: []ActionConfig{{Kind: "upper"}},
	}
	assert.Equal(t, `[pattern "x"; go comments] -> [upper] on stdin`, cfg.String())
}
