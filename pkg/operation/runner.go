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

package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/reshape/pkg/grammar"
	"github.com/walteh/reshape/pkg/log"
	"github.com/walteh/reshape/pkg/scope"
)

// 🏃 Runner applies Options to files or streams
type Runner struct {
	opts    Options
	console *log.Logger
	diffs   io.Writer
	diffMu  sync.Mutex
}

// 🏗️ NewRunner creates a new runner. Results are reported to console and, in
// dry-run mode, diffs are written to diffs.
func NewRunner(opts Options, console *log.Logger, diffs io.Writer) *Runner {
	if diffs == nil {
		diffs = io.Discard
	}
	return &Runner{
		opts:    opts,
		console: console,
		diffs:   diffs,
	}
}

// perFile drops FailNone, which only makes sense across all files. FailAny
// stays so that no file is written once it has tripped.
func (r *Runner) perFile() Options {
	opts := r.opts
	opts.FailNone = false
	return opts
}

// languages returns the languages of the query sources in the options.
func (r *Runner) languages() []*grammar.Language {
	var out []*grammar.Language
	for _, src := range r.opts.Sources {
		if q, ok := src.(*scope.QuerySource); ok {
			out = append(out, q.Language())
		}
	}
	return out
}

// forLanguages keeps the files whose extension belongs to every language
// the options query.
func (r *Runner) forLanguages(ctx context.Context, files []string) []string {
	langs := r.languages()
	if len(langs) == 0 {
		return files
	}

	kept := files[:0:0]
	for _, rel := range files {
		lang, ok := grammar.ForFile(rel)
		match := ok
		for _, want := range langs {
			match = match && lang.Name() == want.Name()
		}
		if !match {
			zerolog.Ctx(ctx).Debug().Str("file", rel).Msg("skipping file of another language")
			continue
		}
		kept = append(kept, rel)
	}
	return kept
}

// 🌊 RunStream processes everything read from in and writes the result to out.
func (r *Runner) RunStream(ctx context.Context, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Errorf("reading input: %w", err)
	}

	res, err := Process(ctx, string(data), r.opts)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, res.Output); err != nil {
		return errors.Errorf("writing output: %w", err)
	}
	return nil
}

// 📂 RunFiles processes every file under root selected by include and not
// excluded by ignore. Files are processed in parallel, each with its own view.
// A failing file does not stop the others; the returned error reports how
// many failed.
func (r *Runner) RunFiles(ctx context.Context, root string, include, ignore []string) (log.Summary, error) {
	logger := zerolog.Ctx(ctx)

	files, err := Discover(root, include, ignore)
	if err != nil {
		return log.Summary{}, errors.Errorf("discovering files: %w", err)
	}
	files = r.forLanguages(ctx, files)
	logger.Debug().Str("root", root).Int("files", len(files)).Msg("discovered files")

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	r.console.StartRun(ctx, log.RunInfo{Root: root, Config: r.opts.Label, DryRun: r.opts.DryRun})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.runFile(gctx, root, rel)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return log.Summary{}, errors.Errorf("processing files: %w", err)
	}

	summary := r.console.EndRun(ctx)

	switch {
	case summary.Failed > 0:
		r.console.Errorf("%d of %d files failed", summary.Failed, summary.Files)
		return summary, errors.Errorf("%d of %d files failed", summary.Failed, summary.Files)
	case r.opts.FailAny && summary.Matched > 0:
		return summary, errors.Errorf("%d files: %w", summary.Matched, ErrFailAny)
	case r.opts.FailNone && summary.Matched == 0:
		return summary, ErrFailNone
	}
	return summary, nil
}

func (r *Runner) runFile(ctx context.Context, root, rel string) {
	result := log.FileResult{Path: rel, DryRun: r.opts.DryRun}
	defer func() { r.console.LogFileResult(ctx, result) }()

	path := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil {
		result.Err = errors.Errorf("stat: %w", err)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = errors.Errorf("reading file: %w", err)
		return
	}
	if !utf8.Valid(data) {
		r.console.Warningf("skipping %s: not valid utf-8", rel)
		return
	}

	res, err := Process(ctx, string(data), r.perFile())
	if res != nil {
		result.Fragments = res.Fragments
		result.InScope = res.InScope
	}
	if errors.Is(err, ErrFailAny) {
		return
	}
	if err != nil {
		result.Err = err
		return
	}
	result.Modified = res.Modified

	if !res.Modified {
		return
	}

	if r.opts.DryRun {
		r.diffMu.Lock()
		defer r.diffMu.Unlock()
		if _, err := io.WriteString(r.diffs, Diff(rel, string(data), res.Output)); err != nil {
			result.Err = errors.Errorf("writing diff: %w", err)
		}
		return
	}

	if err := writeFileAtomic(path, []byte(res.Output), info.Mode().Perm()); err != nil {
		result.Err = errors.Errorf("writing file: %w", err)
	}
}
