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
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reshape/cmd/reshape/opts"
	"github.com/walteh/reshape/pkg/config"
	"github.com/walteh/reshape/pkg/log"
	"github.com/walteh/reshape/pkg/operation"
)

type runFlags struct {
	// actions
	upper     bool
	lower     bool
	titlecase bool
	normalize bool
	delete    bool

	// scoping
	lang        string
	query       string
	customQuery string
	literal     bool
	capture     string
	invert      bool
	join        bool

	// files
	globs  []string
	ignore []string
	jobs   int
	dryRun bool

	// policies
	failAny  bool
	failNone bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()

	fl.BoolVar(&f.upper, "upper", false, "uppercase in-scope text")
	fl.BoolVar(&f.lower, "lower", false, "lowercase in-scope text")
	fl.BoolVar(&f.titlecase, "titlecase", false, "titlecase in-scope text")
	fl.BoolVar(&f.normalize, "normalize", false, "decompose in-scope text and drop combining marks")
	fl.BoolVar(&f.delete, "delete", false, "delete in-scope text")

	fl.StringVar(&f.lang, "lang", "", "grammar to scope with (see reshape languages)")
	fl.StringVar(&f.query, "query", "", "prepared query of --lang to scope with")
	fl.StringVar(&f.customQuery, "custom-query", "", "tree-sitter query to scope with; captures prefixed _IGNORE are excluded")
	fl.BoolVar(&f.literal, "literal", false, "treat PATTERN as a literal string")
	fl.StringVar(&f.capture, "capture", "", "scope only this capture group of PATTERN (name or number)")
	fl.BoolVar(&f.invert, "invert", false, "invert the final scope")
	fl.BoolVar(&f.join, "join", false, "join scopes with OR instead of AND")

	fl.StringSliceVarP(&f.globs, "glob", "g", nil, "process files matching this glob instead of stdin (repeatable)")
	fl.StringSliceVar(&f.ignore, "ignore", nil, "skip files matching this glob (repeatable)")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "files processed in parallel (0 means one per CPU)")
	fl.BoolVar(&f.dryRun, "dry-run", false, "print a diff instead of writing files")

	fl.BoolVar(&f.failAny, "fail-any", false, "fail if anything is in scope")
	fl.BoolVar(&f.failNone, "fail-none", false, "fail if nothing is in scope")
}

// config merges the flags and positional arguments into base, which may be
// nil. Flag scopes and actions run after those of base.
func (f *runFlags) config(base *config.Config, args []string) (*config.Config, error) {
	cfg := &config.Config{}
	if base != nil {
		c := *base
		cfg = &c
		cfg.Scopes = slices.Clone(base.Scopes)
		cfg.Actions = slices.Clone(base.Actions)
		cfg.Files = slices.Clone(base.Files)
		cfg.Ignore = slices.Clone(base.Ignore)
	}

	var pattern string
	if len(args) > 0 {
		pattern = args[0]
	}

	if f.lang == "" && (f.query != "" || f.customQuery != "") {
		return nil, errors.Errorf("--query and --custom-query require --lang")
	}
	if pattern == "" && (f.literal || f.capture != "") {
		return nil, errors.Errorf("--literal and --capture require a PATTERN")
	}

	if f.lang != "" {
		cfg.Scopes = append(cfg.Scopes, config.ScopeConfig{
			Language:    f.lang,
			Query:       f.query,
			CustomQuery: f.customQuery,
		})
	}
	if pattern != "" {
		cfg.Scopes = append(cfg.Scopes, config.ScopeConfig{
			Pattern: pattern,
			Literal: f.literal,
			Capture: f.capture,
		})
	}

	if len(args) > 1 {
		replacement := args[1]
		cfg.Actions = append(cfg.Actions, config.ActionConfig{Kind: "replace", With: &replacement})
	}
	for _, a := range []struct {
		set  bool
		kind string
	}{
		{f.upper, "upper"},
		{f.lower, "lower"},
		{f.titlecase, "titlecase"},
		{f.normalize, "normalize"},
		{f.delete, "delete"},
	} {
		if a.set {
			cfg.Actions = append(cfg.Actions, config.ActionConfig{Kind: a.kind})
		}
	}

	cfg.Files = append(cfg.Files, f.globs...)
	cfg.Ignore = append(cfg.Ignore, f.ignore...)
	cfg.Invert = cfg.Invert || f.invert
	cfg.Join = cfg.Join || f.join
	cfg.FailAny = cfg.FailAny || f.failAny
	cfg.FailNone = cfg.FailNone || f.failNone
	if f.jobs != 0 {
		cfg.Jobs = f.jobs
	}

	if len(cfg.Actions) == 0 && !cfg.FailAny && !cfg.FailNone {
		return nil, errors.Errorf("nothing to do: give a REPLACEMENT, an action flag or a failure policy")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}
	return cfg, nil
}

func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [PATTERN] [REPLACEMENT]",
		Short: "Transform the in-scope parts of stdin or of files",
		Long: `Run scopes its input, applies the actions to every in-scope fragment and
writes the result. It will:
1. Narrow the scope with --lang/--query, then with PATTERN
2. Replace in-scope text with REPLACEMENT, if given
3. Apply the action flags in the order upper, lower, titlecase, normalize, delete
4. Write to stdout, or back to the files selected with --glob

REPLACEMENT may reference capture groups of PATTERN as $1, $name, ${name}
or ${{name}}; write $$ for a literal dollar sign.`,
		Example: `  echo 'hello world' | reshape run 'o' --upper
  reshape run --lang go --query comments 'TODO' 'DONE' --glob '**/*.go'
  reshape run '(?P<k>\w+)=(?P<v>\w+)' '${v}=${k}' --glob 'conf/*.env' --dry-run`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			cfg, err := flags.config(o.Config, args)
			if err != nil {
				return err
			}

			sources, err := cfg.Sources(ctx)
			if err != nil {
				return errors.Errorf("building scopes: %w", err)
			}
			actions, err := cfg.BuildActions()
			if err != nil {
				return errors.Errorf("building actions: %w", err)
			}

			runner := operation.NewRunner(operation.Options{
				Sources:  sources,
				Actions:  actions,
				Join:     cfg.Join,
				Invert:   cfg.Invert,
				FailAny:  cfg.FailAny,
				FailNone: cfg.FailNone,
				DryRun:   flags.dryRun,
				Jobs:     cfg.Jobs,
				Label:    cfg.String(),
			}, log.New(os.Stderr, zerolog.GlobalLevel()), cmd.OutOrStdout())

			if len(cfg.Files) == 0 {
				return runner.RunStream(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			summary, err := runner.RunFiles(ctx, ".", cfg.Files, cfg.Ignore)
			if err != nil {
				return errors.Errorf("running: %w", err)
			}

			if flags.dryRun {
				o.UserLogger.LogDryRun(summary.Modified)
				return nil
			}
			o.UserLogger.LogValidation(true, summary.String(), nil)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
