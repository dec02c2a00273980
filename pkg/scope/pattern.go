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

package scope

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/walteh/reshape/pkg/ranges"
	"gitlab.com/tozd/go/errors"
)

type patternConfig struct {
	literal bool
	filter  *CaptureGroup
}

// PatternOption configures a PatternSource.
type PatternOption func(*patternConfig)

// WithLiteral treats the pattern as a literal string.
func WithLiteral() PatternOption {
	return func(c *patternConfig) { c.literal = true }
}

// WithCaptureFilter scopes only the span of group g within each match.
func WithCaptureFilter(g CaptureGroup) PatternOption {
	return func(c *patternConfig) { c.filter = &g }
}

// 🔎 PatternSource scopes the matches of a regular expression. When the
// expression has capture groups, every match carries its bindings.
type PatternSource struct {
	re     *regexp.Regexp
	filter int
}

// NewPatternSource compiles pattern. Compilation errors and capture filters
// naming a group the pattern lacks are reported here, before any input.
func NewPatternSource(pattern string, opts ...PatternOption) (*PatternSource, error) {
	cfg := &patternConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.literal {
		pattern = regexp.QuoteMeta(pattern)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", pattern, err)
	}

	src := &PatternSource{re: re}
	if cfg.filter != nil {
		switch g := *cfg.filter; {
		case g.IsNamed():
			src.filter = re.SubexpIndex(g.Name())
			if src.filter < 0 {
				return nil, errors.Errorf("pattern %q has no capture group named %q", pattern, g.Name())
			}
		case g.Number() > re.NumSubexp():
			return nil, errors.Errorf("pattern %q has no capture group %d", pattern, g.Number())
		default:
			src.filter = g.Number()
		}
	}

	return src, nil
}

// String returns the compiled expression.
func (s *PatternSource) String() string {
	return s.re.String()
}

// ProducesContext implements ContextProducer.
func (s *PatternSource) ProducesContext() bool {
	return s.re.NumSubexp() > 0
}

// Scope implements Source.
func (s *PatternSource) Scope(ctx context.Context, input string) ([]Match, error) {
	names := s.re.SubexpNames()
	withContext := s.ProducesContext()

	var out []Match
	for _, loc := range s.re.FindAllStringSubmatchIndex(input, -1) {
		start, end := loc[2*s.filter], loc[2*s.filter+1]
		if start < 0 {
			// the filtered group did not take part in this match
			continue
		}

		m := Match{Range: ranges.New(start, end)}
		if withContext {
			m.Bindings = make(Bindings, len(names))
			for i, name := range names {
				gs, ge := loc[2*i], loc[2*i+1]
				if gs < 0 {
					continue
				}
				c := Capture{Text: input[gs:ge], Range: ranges.New(gs, ge)}
				m.Bindings[Numbered(i)] = c
				if name != "" {
					m.Bindings[Named(name)] = c
				}
			}
		}
		out = append(out, m)
	}

	zerolog.Ctx(ctx).Trace().
		Str("pattern", s.re.String()).
		Int("matches", len(out)).
		Msg("pattern scoped input")

	return out, nil
}
