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
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reshape/pkg/action"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔎 ScopeConfig describes one scope source. Exactly one of Pattern and
// Language is set; a language scope names either a prepared Query or a
// CustomQuery.
type ScopeConfig struct {
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Literal     bool   `json:"literal,omitempty" yaml:"literal,omitempty"`
	Capture     string `json:"capture,omitempty" yaml:"capture,omitempty"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
	Query       string `json:"query,omitempty" yaml:"query,omitempty"`
	CustomQuery string `json:"custom_query,omitempty" yaml:"custom_query,omitempty"`
}

func (s ScopeConfig) String() string {
	switch {
	case s.Pattern != "":
		return fmt.Sprintf("pattern %q", s.Pattern)
	case s.CustomQuery != "":
		return s.Language + " custom query"
	default:
		return s.Language + " " + s.Query
	}
}

// 🎬 ActionConfig names an action and, for "replace", its template.
type ActionConfig struct {
	Kind string  `json:"kind" yaml:"kind"`
	With *string `json:"with,omitempty" yaml:"with,omitempty"`
}

// 📚 Config represents a complete run
type Config struct {
	Scopes   []ScopeConfig  `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	Actions  []ActionConfig `json:"actions,omitempty" yaml:"actions,omitempty"`
	Files    []string       `json:"files,omitempty" yaml:"files,omitempty"`
	Ignore   []string       `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Invert   bool           `json:"invert,omitempty" yaml:"invert,omitempty"`
	Join     bool           `json:"join,omitempty" yaml:"join,omitempty"`
	FailAny  bool           `json:"fail_any,omitempty" yaml:"fail_any,omitempty"`
	FailNone bool           `json:"fail_none,omitempty" yaml:"fail_none,omitempty"`
	Jobs     int            `json:"jobs,omitempty" yaml:"jobs,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks the configuration for structural errors. Patterns and
// queries are compiled later, by Sources.
func (cfg *Config) Validate() error {
	for i, s := range cfg.Scopes {
		if err := s.validate(); err != nil {
			return errors.Errorf("scopes[%d]: %w", i, err)
		}
	}

	kinds := action.Kinds()
	for i, a := range cfg.Actions {
		kind := strings.ToLower(a.Kind)
		if !slices.Contains(kinds, kind) {
			return errors.Errorf("actions[%d]: unknown kind %q (available: %s)", i, a.Kind, strings.Join(kinds, ", "))
		}
		if kind == "replace" && a.With == nil {
			return errors.Errorf("actions[%d]: replace requires with", i)
		}
	}

	for _, pattern := range slices.Concat(cfg.Files, cfg.Ignore) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob %q", pattern)
		}
	}

	if cfg.FailAny && cfg.FailNone {
		return errors.Errorf("fail_any and fail_none are mutually exclusive")
	}
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}

	return nil
}

func (s ScopeConfig) validate() error {
	switch {
	case s.Pattern == "" && s.Language == "":
		return errors.Errorf("one of pattern or language is required")
	case s.Pattern != "" && s.Language != "":
		return errors.Errorf("pattern and language are mutually exclusive")
	case s.Pattern != "":
		if s.Query != "" || s.CustomQuery != "" {
			return errors.Errorf("query and custom_query require language")
		}
	default:
		if s.Literal || s.Capture != "" {
			return errors.Errorf("literal and capture require pattern")
		}
		if (s.Query == "") == (s.CustomQuery == "") {
			return errors.Errorf("language %s needs exactly one of query or custom_query", s.Language)
		}
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	scopes := make([]string, 0, len(cfg.Scopes))
	for _, s := range cfg.Scopes {
		scopes = append(scopes, s.String())
	}
	kinds := make([]string, 0, len(cfg.Actions))
	for _, a := range cfg.Actions {
		kinds = append(kinds, a.Kind)
	}
	files := "stdin"
	if len(cfg.Files) > 0 {
		files = strings.Join(cfg.Files, ",")
	}
	return fmt.Sprintf("[%s] -> [%s] on %s", strings.Join(scopes, "; "), strings.Join(kinds, ", "), files)
}
