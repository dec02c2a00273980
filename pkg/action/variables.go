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
	"math"

	"github.com/walteh/reshape/pkg/ranges"
	"github.com/walteh/reshape/pkg/scope"
)

// VariablePositions maps each capture group referenced by a template to the
// byte ranges of its references within the template.
type VariablePositions map[scope.CaptureGroup][]ranges.Range

// MismatchedBracesError reports a template whose variable braces do not close.
type MismatchedBracesError struct {
	Template string
}

func (e *MismatchedBracesError) Error() string {
	return fmt.Sprintf("contains an imbalanced set of braces: '%s'", e.Template)
}

// GroupOverflowError reports a numbered reference too large for an int.
type GroupOverflowError struct {
	Template string
}

func (e *GroupOverflowError) Error() string {
	return fmt.Sprintf("capture group number overflows: '%s'", e.Template)
}

type stateKind int

const (
	neutral stateKind = iota
	maybeStart
	windUpBraces
	buildingNamed
	buildingNumbered
	windDownNamed
	windDownNumbered
)

// state carries everything accumulated for the variable being read.
type state struct {
	kind      stateKind
	name      string
	magnitude int
	start     int
	braces    int
}

// variable is a reference completed by a transition.
type variable struct {
	group scope.CaptureGroup
	span  ranges.Range
}

func isIdentStart(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func (s state) finish(end int) variable {
	if s.kind == buildingNamed || s.kind == windDownNamed {
		return variable{group: scope.Named(s.name), span: ranges.New(s.start, end)}
	}
	return variable{group: scope.Numbered(s.magnitude), span: ranges.New(s.start, end)}
}

// step consumes the character c found at byte offset i.
func step(s state, c rune, i int, template string) (state, *variable, error) {
	switch s.kind {
	case neutral:
		if c == '$' {
			return state{kind: maybeStart}, nil, nil
		}
		return state{kind: neutral}, nil, nil

	case maybeStart, windUpBraces:
		// '$' and '{' are one byte each
		start := i - 1 - s.braces
		switch {
		case c == '{':
			return state{kind: windUpBraces, braces: s.braces + 1}, nil, nil
		case isIdentStart(c):
			return state{kind: buildingNamed, name: string(c), start: start, braces: s.braces}, nil, nil
		case isDigit(c):
			return state{kind: buildingNumbered, magnitude: int(c - '0'), start: start, braces: s.braces}, nil, nil
		default:
			// a second '$' lands here too: "$$" is an escaped, literal pair
			return state{kind: neutral}, nil, nil
		}

	case buildingNamed:
		if isIdentStart(c) || isDigit(c) {
			s.name += string(c)
			return s, nil, nil
		}

	case buildingNumbered:
		if isDigit(c) {
			if s.magnitude > (math.MaxInt-9)/10 {
				return state{}, nil, &GroupOverflowError{Template: template}
			}
			s.magnitude = s.magnitude*10 + int(c-'0')
			return s, nil, nil
		}
	}

	// building stopped, or winding down
	if s.braces == 0 {
		v := s.finish(i)
		if c == '$' {
			return state{kind: maybeStart}, &v, nil
		}
		return state{kind: neutral}, &v, nil
	}

	if c != '}' {
		return state{}, nil, &MismatchedBracesError{Template: template}
	}

	s.braces--
	if s.kind == buildingNamed {
		s.kind = windDownNamed
	} else if s.kind == buildingNumbered {
		s.kind = windDownNumbered
	}
	return s, nil, nil
}

// 🧩 ExtractVariables finds the capture group references in template:
// $name, $0, ${name} and ${{name}} with any brace depth. A "$$" pair is
// literal, so in an odd run of dollars only the last may start a reference.
// Offsets are bytes into template.
func ExtractVariables(template string) (VariablePositions, error) {
	out := VariablePositions{}
	s := state{kind: neutral}

	for i, c := range template {
		next, v, err := step(s, c, i, template)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out[v.group] = append(out[v.group], v.span)
		}
		s = next
	}

	switch s.kind {
	case buildingNamed, buildingNumbered, windDownNamed, windDownNumbered:
		if s.braces > 0 {
			return nil, &MismatchedBracesError{Template: template}
		}
		v := s.finish(len(template))
		out[v.group] = append(out[v.group], v.span)
	}

	return out, nil
}
