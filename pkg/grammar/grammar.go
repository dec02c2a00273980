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

package grammar

import (
	"context"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/walteh/reshape/pkg/ranges"
	"gitlab.com/tozd/go/errors"
)

// IgnorePrefix marks a capture whose spans are removed from the query's
// result instead of being added to it.
const IgnorePrefix = "_IGNORE"

// IsIgnored reports whether a capture name carries the ignore marker.
func IsIgnored(capture string) bool {
	return strings.HasPrefix(capture, IgnorePrefix)
}

// 📝 PreparedQuery is a named query shipped with a language.
type PreparedQuery struct {
	Name        string
	Description string
	Source      string
}

// 🌳 Language is a tree-sitter grammar together with its prepared queries. A
// Language is immutable once built and safe for concurrent use.
type Language struct {
	name       string
	aliases    []string
	extensions []string
	lang       *sitter.Language
	prepared   []PreparedQuery
	compiled   map[string]func() (*Query, error)
}

func newLanguage(d *definition) *Language {
	l := &Language{
		name:       d.name,
		aliases:    d.aliases,
		extensions: d.extensions,
		lang:       d.language(),
		prepared:   d.prepared,
		compiled:   make(map[string]func() (*Query, error), len(d.prepared)),
	}
	for _, pq := range d.prepared {
		l.compiled[pq.Name] = sync.OnceValues(func() (*Query, error) {
			return l.Compile(pq.Source)
		})
	}
	return l
}

// Name returns the canonical language identifier.
func (l *Language) Name() string { return l.name }

// Aliases returns alternative identifiers accepted by Lookup.
func (l *Language) Aliases() []string { return l.aliases }

// Extensions returns the file extensions (without dot) of this language.
func (l *Language) Extensions() []string { return l.extensions }

// PreparedQueries returns the prepared queries sorted by name.
func (l *Language) PreparedQueries() []PreparedQuery {
	out := make([]PreparedQuery, len(l.prepared))
	copy(out, l.prepared)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// 🔧 Compile compiles a query against this language.
func (l *Language) Compile(source string) (*Query, error) {
	q, err := sitter.NewQuery([]byte(source), l.lang)
	if err != nil {
		return nil, errors.Errorf("compiling %s query: %w", l.name, err)
	}

	names := make([]string, q.CaptureCount())
	for i := range names {
		names[i] = q.CaptureNameForId(uint32(i))
	}

	return &Query{lang: l, q: q, source: source, captures: names}, nil
}

// Prepared returns the compiled prepared query with the given name. Each
// prepared query is compiled at most once per process.
func (l *Language) Prepared(name string) (*Query, error) {
	compile, ok := l.compiled[name]
	if !ok {
		names := make([]string, 0, len(l.prepared))
		for _, pq := range l.PreparedQueries() {
			names = append(names, pq.Name)
		}
		return nil, errors.Errorf("unknown %s query %q (available: %s)", l.name, name, strings.Join(names, ", "))
	}
	return compile()
}

// 🌲 Parse parses source into a syntax tree. Malformed source still yields a
// tree; tree-sitter recovers with error nodes and the tree is used as is.
func (l *Language) Parse(ctx context.Context, source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(l.lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.Errorf("parsing %s source: %w", l.name, err)
	}

	return &Tree{tree: tree, source: source}, nil
}

// Tree is a parsed syntax tree and the source it was parsed from.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// SExpr renders the tree as an S-expression.
func (t *Tree) SExpr() string {
	return t.tree.RootNode().String()
}

// HasError reports whether the parser had to recover from malformed input.
func (t *Tree) HasError() bool {
	return t.tree.RootNode().HasError()
}

// 🔍 Query is a compiled query bound to a language.
type Query struct {
	lang     *Language
	q        *sitter.Query
	source   string
	captures []string
}

// Source returns the query text.
func (q *Query) Source() string { return q.source }

// Language returns the language the query was compiled against.
func (q *Query) Language() *Language { return q.lang }

// CaptureNames returns the capture names in declaration order.
func (q *Query) CaptureNames() []string { return q.captures }

// HasIgnoredCaptures reports whether any capture carries the ignore marker.
func (q *Query) HasIgnoredCaptures() bool {
	for _, name := range q.captures {
		if IsIgnored(name) {
			return true
		}
	}
	return false
}

// Captures runs the query over tree and returns the merged spans of every
// capture whose name passes keep. A nil keep admits all captures.
func (q *Query) Captures(tree *Tree, keep func(name string) bool) ranges.Set {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q.q, tree.tree.RootNode())

	// captures of multi-capture queries come back unordered and overlapping
	var out ranges.Set
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, tree.source)
		for _, c := range m.Captures {
			if keep != nil && !keep(q.captures[c.Index]) {
				continue
			}
			out = append(out, ranges.New(int(c.Node.StartByte()), int(c.Node.EndByte())))
		}
	}
	return ranges.Merge(out)
}
