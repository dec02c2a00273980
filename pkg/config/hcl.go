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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files. Attribute
// expressions may read the environment through env, e.g. env.HOME. Template
// variables must be written as $${name} so HCL leaves them alone.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "reshape.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Scopes []struct {
			Pattern     string `hcl:"pattern,optional"`
			Literal     bool   `hcl:"literal,optional"`
			Capture     string `hcl:"capture,optional"`
			Language    string `hcl:"language,optional"`
			Query       string `hcl:"query,optional"`
			CustomQuery string `hcl:"custom_query,optional"`
		} `hcl:"scope,block"`
		Actions []struct {
			Kind string  `hcl:"kind,label"`
			With *string `hcl:"with,optional"`
		} `hcl:"action,block"`
		Files    []string `hcl:"files,optional"`
		Ignore   []string `hcl:"ignore,optional"`
		Invert   bool     `hcl:"invert,optional"`
		Join     bool     `hcl:"join,optional"`
		FailAny  bool     `hcl:"fail_any,optional"`
		FailNone bool     `hcl:"fail_none,optional"`
		Jobs     int      `hcl:"jobs,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Files:    hclCfg.Files,
		Ignore:   hclCfg.Ignore,
		Invert:   hclCfg.Invert,
		Join:     hclCfg.Join,
		FailAny:  hclCfg.FailAny,
		FailNone: hclCfg.FailNone,
		Jobs:     hclCfg.Jobs,
	}
	for _, s := range hclCfg.Scopes {
		cfg.Scopes = append(cfg.Scopes, ScopeConfig(s))
	}
	for _, a := range hclCfg.Actions {
		cfg.Actions = append(cfg.Actions, ActionConfig(a))
	}

	return cfg, nil
}

func environment() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}
