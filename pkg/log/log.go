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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	scopeWidth  = 15 // Width for the in-scope column
	statusWidth = 15 // Width for status text
)

// 🎯 FileResult is the outcome of reshaping one file, for logging
type FileResult struct {
	Path      string // File path
	Fragments int    // Number of fragments in the view
	InScope   int    // Number of in-scope fragments
	Modified  bool   // Whether the content changed
	DryRun    bool   // Whether changes were only previewed
	Err       error  // Failure, if any
}

// Status returns the status column for r.
func (r FileResult) Status() string {
	switch {
	case r.Err != nil:
		return "FAILED"
	case r.Modified && r.DryRun:
		return "WOULD UPDATE"
	case r.Modified:
		return "UPDATED"
	case r.InScope > 0:
		return "UNCHANGED"
	default:
		return "NO MATCH"
	}
}

// 📦 RunInfo describes a run for logging
type RunInfo struct {
	Root   string // Directory files are discovered in
	Config string // Summary of the configuration
	DryRun bool   // Whether changes are only previewed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	run     *RunInfo
	results []FileResult
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr })).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 formatFileResult formats a file result for display
func (l *Logger) formatFileResult(r FileResult) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case r.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
	case r.Modified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case r.InScope > 0:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	scopeColor := color.FgYellow
	if r.InScope > 0 {
		scopeColor = color.FgCyan
	}
	inScope := fmt.Sprintf("%d/%d in scope", r.InScope, r.Fragments)

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, r.Path),
		color.New(scopeColor).Sprint(fmt.Sprintf("%-*s", scopeWidth, inScope)),
		fmt.Sprintf("%-*s", statusWidth, r.Status()))
}

// 📝 LogFileResult logs the result of one file
func (l *Logger) LogFileResult(ctx context.Context, r FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, r)

	fmt.Fprintln(l.console, l.formatFileResult(r))
	if r.Err != nil {
		fmt.Fprintf(l.console, "%*s%s\n", fileIndent+2, "", color.New(color.FgRed).Sprint(r.Err.Error()))
	}

	ev := l.zlog.Info()
	if r.Err != nil {
		ev = l.zlog.Error().Err(r.Err)
	}
	ev.Str("file", r.Path).
		Str("status", r.Status()).
		Int("fragments", r.Fragments).
		Int("in_scope", r.InScope).
		Bool("modified", r.Modified).
		Bool("dry_run", r.DryRun).
		Msg("file processed")
}

// 📝 StartRun starts a new run
func (l *Logger) StartRun(ctx context.Context, run RunInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.run = &run
	l.results = nil

	mode := "writing"
	if run.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "[reshaping %s]\n",
		color.New(color.FgCyan).Sprint(run.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(run.Config),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("root", run.Root).
		Str("config", run.Config).
		Bool("dry_run", run.DryRun).
		Msg("starting run")
}

// 📊 Summary counts the results of a run
type Summary struct {
	Files    int
	Matched  int
	Modified int
	Failed   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d files, %d matched, %d modified, %d failed", s.Files, s.Matched, s.Modified, s.Failed)
}

// 📝 EndRun ends the current run and returns its summary
func (l *Logger) EndRun(ctx context.Context) Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s Summary
	for _, r := range l.results {
		s.Files++
		if r.InScope > 0 {
			s.Matched++
		}
		if r.Modified {
			s.Modified++
		}
		if r.Err != nil {
			s.Failed++
		}
	}

	if l.run == nil {
		return s
	}

	l.zlog.Info().
		Str("root", l.run.Root).
		Int("files", s.Files).
		Int("matched", s.Matched).
		Int("modified", s.Modified).
		Int("failed", s.Failed).
		Msg("run complete")

	l.run = nil
	l.results = nil
	return s
}

// notice prints one marked message to the console and mirrors it to zerolog.
func (l *Logger) notice(level zerolog.Level, mark string, attr color.Attribute, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", mark, color.New(attr).Sprint(msg))
	l.zlog.WithLevel(level).Msg(msg)
}

// ⚠️ Warningf reports something skipped without failing the run
func (l *Logger) Warningf(format string, args ...any) {
	l.notice(zerolog.WarnLevel, "⚠️ ", color.FgYellow, fmt.Sprintf(format, args...))
}

// ❌ Errorf reports a run that finished with failures
func (l *Logger) Errorf(format string, args ...any) {
	l.notice(zerolog.ErrorLevel, "❌", color.FgRed, fmt.Sprintf(format, args...))
}
