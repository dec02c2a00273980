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

	"github.com/rs/zerolog"
	"github.com/walteh/reshape/pkg/grammar"
	"github.com/walteh/reshape/pkg/ranges"
	"gitlab.com/tozd/go/errors"
)

// 🌳 QuerySource scopes the captures of a tree-sitter query. Captures named
// with the grammar.IgnorePrefix marker are cut out of the other captures,
// which lets one query say "X, except the Y inside it".
type QuerySource struct {
	query *grammar.Query
}

// NewQuerySource compiles a custom query against lang. An invalid query is a
// configuration error and is reported before any input is touched.
func NewQuerySource(lang *grammar.Language, query string) (*QuerySource, error) {
	q, err := lang.Compile(query)
	if err != nil {
		return nil, errors.Errorf("creating query source: %w", err)
	}
	return &QuerySource{query: q}, nil
}

// NewPreparedQuerySource uses the prepared query called name of lang.
func NewPreparedQuerySource(lang *grammar.Language, name string) (*QuerySource, error) {
	q, err := lang.Prepared(name)
	if err != nil {
		return nil, errors.Errorf("creating query source: %w", err)
	}
	return &QuerySource{query: q}, nil
}

// Language returns the grammar the query runs against.
func (s *QuerySource) Language() *grammar.Language {
	return s.query.Language()
}

// Scope implements Source. Input the grammar cannot fully parse is scoped on
// whatever partial tree the parser recovered.
func (s *QuerySource) Scope(ctx context.Context, input string) ([]Match, error) {
	logger := zerolog.Ctx(ctx).With().Str("language", s.query.Language().Name()).Logger()

	tree, err := s.query.Language().Parse(ctx, []byte(input))
	if err != nil {
		return nil, errors.Errorf("scoping input: %w", err)
	}

	logger.Trace().Str("sexpr", tree.SExpr()).Msg("parsed input")
	if tree.HasError() {
		logger.Debug().Msg("input has syntax errors, scoping the partial tree")
	}

	logger.Trace().Str("query", s.query.Source()).Msg("running query")
	positive := s.query.Captures(tree, nil)
	if !s.query.HasIgnoredCaptures() {
		return MatchesOf(positive), nil
	}

	negative := s.query.Captures(tree, grammar.IsIgnored)
	effective := ranges.Subtract(positive, negative)

	logger.Debug().
		Stringer("positive", positive).
		Stringer("negative", negative).
		Stringer("effective", effective).
		Msg("removed ignored captures")

	return MatchesOf(effective), nil
}
