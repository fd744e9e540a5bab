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
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/tmplrc/pkg/status"
)

// 🎯 Logger prints copy events to a console and mirrors them to zerolog
type Logger struct {
	console io.Writer
	mu      sync.Mutex
	events  []status.Event
}

var _ status.Reporter = (*Logger)(nil)

// 🏭 New creates a new console logger
func New(console io.Writer) *Logger {
	return &Logger{
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to stdout
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(os.Stdout)
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 Report prints one event as `    create  path`
func (l *Logger) Report(ctx context.Context, ev status.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, ev)
	fmt.Fprintln(l.console, status.FormatEvent(ev))

	zerolog.Ctx(ctx).Debug().
		Str("action", ev.Action.String()).
		Str("path", ev.Path).
		Bool("is_dir", ev.IsDir).
		Msg("copy event")
}

// 📝 ReportError prints a recovered problem with a warning prefix
func (l *Logger) ReportError(ctx context.Context, title string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pterm.Warning.WithWriter(l.console).Println(fmt.Sprintf("%s: %v", title, err))
	zerolog.Ctx(ctx).Warn().Err(err).Str("title", title).Msg("recovered error")
}

// 📊 Summary prints the count of each action reported so far
func (l *Logger) Summary(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := status.Summary(l.events)
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(l.console)
	for _, a := range []status.Action{status.ActionCreate, status.ActionIdentical, status.ActionSkip, status.ActionConflict, status.ActionForce} {
		if n := counts[a]; n > 0 {
			fmt.Fprintln(l.console, status.FormatLine(a.String(), fmt.Sprintf("%d", n), status.Style(a)))
		}
	}
	zerolog.Ctx(ctx).Debug().Int("events", len(l.events)).Msg("copy complete")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("tmplrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Success.WithWriter(l.console).Println(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Error.WithWriter(l.console).Println(msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
