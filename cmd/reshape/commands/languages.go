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

package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/walteh/reshape/pkg/grammar"
)

func NewLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages [LANGUAGE]",
		Short: "List grammars and their prepared queries",
		Long: `Languages lists every grammar reshape can scope with, its aliases, the file
extensions it claims and its prepared queries. Given a LANGUAGE, it shows
the source of each prepared query instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout())

			if len(args) == 1 {
				lang, err := grammar.Lookup(args[0])
				if err != nil {
					return err
				}
				return table.WithData(queryTable(lang)).Render()
			}

			return table.WithData(languageTable(grammar.All())).Render()
		},
	}

	return cmd
}

func languageTable(langs []*grammar.Language) [][]string {
	data := [][]string{{"Language", "Aliases", "Extensions", "Prepared queries"}}
	for _, l := range langs {
		names := make([]string, 0, len(l.PreparedQueries()))
		for _, q := range l.PreparedQueries() {
			names = append(names, q.Name)
		}
		data = append(data, []string{
			l.Name(),
			strings.Join(l.Aliases(), ", "),
			strings.Join(l.Extensions(), ", "),
			strings.Join(names, ", "),
		})
	}
	return data
}

func queryTable(lang *grammar.Language) [][]string {
	data := [][]string{{"Query", "Description", "Source"}}
	for _, q := range lang.PreparedQueries() {
		data = append(data, []string{q.Name, q.Description, strings.Join(strings.Fields(q.Source), " ")})
	}
	return data
}
