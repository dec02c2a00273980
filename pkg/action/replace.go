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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/walteh/reshape/pkg/scope"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidEscape is returned for templates with an unknown escape sequence.
var ErrInvalidEscape = errors.Base("invalid escape sequence")

// MissingCaptureGroupError reports a template reference to a group the
// fragment's match did not bind.
type MissingCaptureGroupError struct {
	Group     scope.CaptureGroup
	Available []scope.CaptureGroup
}

func (e *MissingCaptureGroupError) Error() string {
	available := make([]string, 0, len(e.Available))
	for _, g := range e.Available {
		available = append(available, g.String())
	}
	return fmt.Sprintf("capture group %q not found (available: %s)", e.Group.String(), strings.Join(available, ", "))
}

type segment struct {
	literal  string
	group    scope.CaptureGroup
	variable bool
}

// 🔄 Replacement replaces fragments with a fixed template, substituting
// capture group references when the fragment has bindings. A Replacement is
// immutable and may be shared between goroutines.
type Replacement struct {
	template  string
	variables VariablePositions
	segments  []segment
}

// NewReplacement unescapes template and extracts its variable references.
func NewReplacement(template string) (*Replacement, error) {
	unescaped, err := unescape(template)
	if err != nil {
		return nil, errors.Errorf("creating replacement: %w", err)
	}

	vars, err := ExtractVariables(unescaped)
	if err != nil {
		return nil, errors.Errorf("creating replacement: %w", err)
	}

	return &Replacement{
		template:  unescaped,
		variables: vars,
		segments:  segmentsOf(unescaped, vars),
	}, nil
}

func segmentsOf(template string, vars VariablePositions) []segment {
	type ref struct {
		start, end int
		group      scope.CaptureGroup
	}

	var refs []ref
	for g, spans := range vars {
		for _, sp := range spans {
			refs = append(refs, ref{start: sp.Start, end: sp.End, group: g})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].start < refs[j].start })

	var out []segment
	pos := 0
	for _, r := range refs {
		if r.start > pos {
			out = append(out, segment{literal: template[pos:r.start]})
		}
		out = append(out, segment{group: r.group, variable: true})
		pos = r.end
	}
	if pos < len(template) {
		out = append(out, segment{literal: template[pos:]})
	}
	return out
}

// Template returns the unescaped template.
func (r *Replacement) Template() string { return r.template }

// Variables returns the capture group references of the template.
func (r *Replacement) Variables() VariablePositions { return r.variables }

// Act implements Action. Without bindings the template is used verbatim.
func (r *Replacement) Act(input string) string {
	return r.template
}

// ActWithContext implements ContextAction. Every referenced group must be
// bound; a missing one fails with a *MissingCaptureGroupError.
func (r *Replacement) ActWithContext(input string, bindings scope.Bindings) (string, error) {
	if len(r.variables) == 0 {
		return r.template, nil
	}

	var b strings.Builder
	b.Grow(len(r.template))
	for _, seg := range r.segments {
		if !seg.variable {
			b.WriteString(seg.literal)
			continue
		}
		text, ok := bindings.Lookup(seg.group)
		if !ok {
			return "", &MissingCaptureGroupError{Group: seg.group, Available: bindings.Groups()}
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// unescape resolves Go-style escape sequences such as \n, \t, \x41 and \u00e9.
func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	for rest := s; len(rest) > 0; {
		if len(rest) >= 2 && rest[0] == '\\' && (rest[1] == '\'' || rest[1] == '"') {
			b.WriteByte(rest[1])
			rest = rest[2:]
			continue
		}
		c, multibyte, tail, err := strconv.UnquoteChar(rest, 0)
		if err != nil {
			return "", errors.Errorf("%w in %q", ErrInvalidEscape, s)
		}
		if c < utf8.RuneSelf || !multibyte {
			b.WriteByte(byte(c))
		} else {
			b.WriteRune(c)
		}
		rest = tail
	}
	return b.String(), nil
}
