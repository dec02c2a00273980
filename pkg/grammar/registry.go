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
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/hcl"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"gitlab.com/tozd/go/errors"
)

// definition is the static description of a supported language. The
// tree-sitter grammar behind it is only loaded on first use.
type definition struct {
	name       string
	aliases    []string
	extensions []string
	language   func() *sitter.Language
	prepared   []PreparedQuery
	load       func() *Language
}

var definitions = []*definition{
	{name: "c", extensions: []string{"c", "h"}, language: c.GetLanguage, prepared: cQueries},
	{name: "csharp", aliases: []string{"cs", "c#"}, extensions: []string{"cs"}, language: csharp.GetLanguage, prepared: csharpQueries},
	{name: "go", aliases: []string{"golang"}, extensions: []string{"go"}, language: golang.GetLanguage, prepared: goQueries},
	{name: "hcl", aliases: []string{"terraform", "tf"}, extensions: []string{"hcl", "tf"}, language: hcl.GetLanguage, prepared: hclQueries},
	{name: "python", aliases: []string{"py"}, extensions: []string{"py"}, language: python.GetLanguage, prepared: pythonQueries},
	{name: "rust", aliases: []string{"rs"}, extensions: []string{"rs"}, language: rust.GetLanguage, prepared: rustQueries},
	{name: "typescript", aliases: []string{"ts"}, extensions: []string{"ts", "tsx"}, language: typescript.GetLanguage, prepared: typescriptQueries},
}

func init() {
	for _, d := range definitions {
		d.load = sync.OnceValue(func() *Language { return newLanguage(d) })
	}
}

func find(name string) *definition {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range definitions {
		if d.name == name {
			return d
		}
		for _, alias := range d.aliases {
			if alias == name {
				return d
			}
		}
	}
	return nil
}

// 🎯 Lookup returns the language registered under name or one of its aliases.
func Lookup(name string) (*Language, error) {
	d := find(name)
	if d == nil {
		return nil, errors.Errorf("unknown language %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return d.load(), nil
}

// ForFile returns the language handling the extension of path, if any.
func ForFile(path string) (*Language, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return nil, false
	}
	for _, d := range definitions {
		for _, e := range d.extensions {
			if e == ext {
				return d.load(), true
			}
		}
	}
	return nil, false
}

// Names returns the canonical names of all supported languages.
func Names() []string {
	out := make([]string, 0, len(definitions))
	for _, d := range definitions {
		out = append(out, d.name)
	}
	sort.Strings(out)
	return out
}

// All returns every supported language, loading each grammar if needed.
func All() []*Language {
	out := make([]*Language, 0, len(definitions))
	for _, name := range Names() {
		out = append(out, find(name).load())
	}
	return out
}
