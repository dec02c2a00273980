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
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cases.Caser and transform chains keep state, so each call builds its own.

var sharpS = strings.NewReplacer("ß", "ẞ")

// Upper renders in uppercase. The German sharp s becomes a capital sharp s
// instead of "SS", which keeps the action idempotent.
type Upper struct{}

// Act implements Action.
func (Upper) Act(input string) string {
	return cases.Upper(language.Und).String(sharpS.Replace(input))
}

// Lower renders in lowercase.
type Lower struct{}

// Act implements Action.
func (Lower) Act(input string) string {
	return cases.Lower(language.Und).String(input)
}

// Titlecase capitalizes the first letter of every word.
type Titlecase struct{}

// Act implements Action.
func (Titlecase) Act(input string) string {
	return cases.Title(language.Und).String(input)
}

// Normalization decomposes characters and drops combining marks, so "café"
// becomes "cafe".
type Normalization struct{}

// Act implements Action.
func (Normalization) Act(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// Deletion removes the fragment.
type Deletion struct{}

// Act implements Action.
func (Deletion) Act(string) string {
	return ""
}
