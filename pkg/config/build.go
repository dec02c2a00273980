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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reshape/pkg/action"
	"github.com/walteh/reshape/pkg/grammar"
	"github.com/walteh/reshape/pkg/scope"
)

// 🔎 Sources builds the scope sources in configuration order. Invalid
// patterns, unknown languages and queries that do not compile fail here.
func (cfg *Config) Sources(ctx context.Context) ([]scope.Source, error) {
	out := make([]scope.Source, 0, len(cfg.Scopes))
	for i, s := range cfg.Scopes {
		src, err := s.source()
		if err != nil {
			return nil, errors.Errorf("scopes[%d]: %w", i, err)
		}
		zerolog.Ctx(ctx).Debug().Int("index", i).Str("scope", s.String()).Msg("built scope source")
		out = append(out, src)
	}
	return out, nil
}

func (s ScopeConfig) source() (scope.Source, error) {
	if s.Pattern != "" {
		var opts []scope.PatternOption
		if s.Literal {
			opts = append(opts, scope.WithLiteral())
		}
		if s.Capture != "" {
			opts = append(opts, scope.WithCaptureFilter(scope.ParseCaptureGroup(s.Capture)))
		}
		return scope.NewPatternSource(s.Pattern, opts...)
	}

	lang, err := grammar.Lookup(s.Language)
	if err != nil {
		return nil, err
	}
	if s.CustomQuery != "" {
		return scope.NewQuerySource(lang, s.CustomQuery)
	}
	return scope.NewPreparedQuerySource(lang, s.Query)
}

// 🎬 BuildActions builds the actions in configuration order.
func (cfg *Config) BuildActions() ([]action.Action, error) {
	out := make([]action.Action, 0, len(cfg.Actions))
	for i, a := range cfg.Actions {
		act, err := action.New(a.Kind, a.With)
		if err != nil {
			return nil, errors.Errorf("actions[%d]: %w", i, err)
		}
		out = append(out, act)
	}
	return out, nil
}
