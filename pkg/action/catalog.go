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
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

type constructor func(arg *string) (Action, error)

func plain(a Action) constructor {
	return func(arg *string) (Action, error) {
		if arg != nil {
			return nil, errors.Errorf("takes no argument")
		}
		return a, nil
	}
}

var catalog = map[string]constructor{
	"replace": func(arg *string) (Action, error) {
		if arg == nil {
			return nil, errors.Errorf("requires a replacement template")
		}
		return NewReplacement(*arg)
	},
	"upper":     plain(Upper{}),
	"lower":     plain(Lower{}),
	"titlecase": plain(Titlecase{}),
	"normalize": plain(Normalization{}),
	"delete":    plain(Deletion{}),
}

// Kinds returns the names accepted by New.
func Kinds() []string {
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// 🏭 New builds the action called kind. Only "replace" takes an argument.
func New(kind string, arg *string) (Action, error) {
	build, ok := catalog[strings.ToLower(kind)]
	if !ok {
		return nil, errors.Errorf("unknown action %q (available: %s)", kind, strings.Join(Kinds(), ", "))
	}
	a, err := build(arg)
	if err != nil {
		return nil, errors.Errorf("action %s: %w", kind, err)
	}
	return a, nil
}
