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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/walteh/tmplrc/pkg/render"
)

// 🧨 TaskError reports a task that could not run or exited non-zero
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q: %s", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// Is makes every TaskError match ErrTaskFailed
func (e *TaskError) Is(target error) bool {
	return target == ErrTaskFailed
}

// ExitCode returns the exit status of the task, or -1 if it never ran
func (e *TaskError) ExitCode() int {
	var status interp.ExitStatus
	if errors.As(e.Err, &status) {
		return int(status)
	}
	return -1
}

// 🏃 runTasks renders and runs each task in dir, stopping at the first failure
func runTasks(ctx context.Context, r *render.Renderer, tasks []string, dir string, stdout, stderr io.Writer) error {
	logger := zerolog.Ctx(ctx)

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("tasks interrupted: %w", err)
		}

		command, err := r.String(task)
		if err != nil {
			return errors.Errorf("rendering task %d: %w", i, err)
		}

		logger.Debug().Int("index", i).Str("task", command).Str("dir", dir).Msg("running task")

		if err := runShell(ctx, command, dir, stdout, stderr); err != nil {
			return errors.WithStack(&TaskError{Task: command, Err: err})
		}
	}

	return nil
}

func runShell(ctx context.Context, command, dir string, stdout, stderr io.Writer) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "task")
	if err != nil {
		return errors.Errorf("parsing: %w", err)
	}

	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return errors.Errorf("creating shell: %w", err)
	}

	return runner.Run(ctx, file)
}
