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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tmplrc/pkg/config"
	"github.com/walteh/tmplrc/pkg/conflict"
	"github.com/walteh/tmplrc/pkg/filter"
	"github.com/walteh/tmplrc/pkg/match"
	"github.com/walteh/tmplrc/pkg/remote"
	"github.com/walteh/tmplrc/pkg/render"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateNotDir   = errors.New("template is not a directory")
	ErrTaskFailed       = errors.New("task failed")
	ErrPathEscapes      = errors.New("rendered path escapes the destination")
)

// FolderNameKey is the data key holding the base name of the destination
const FolderNameKey = "folder_name"

// 📋 Copy instantiates the template at src into dst.
// When src is a git locator the repository is cloned first and removed afterwards.
func Copy(ctx context.Context, src, dst string, data map[string]any, opts Options) error {
	url, ref, ok := remote.ParseLocator(src)
	if !ok {
		return CopyLocal(ctx, src, dst, data, opts)
	}

	zerolog.Ctx(ctx).Debug().Str("url", url).Str("ref", ref).Msg("template is a git repository")

	dir, err := opts.cloner().Clone(ctx, url, ref)
	if err != nil {
		return errors.Errorf("cloning template: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("dir", dir).Msg("removing clone")
		}
	}()

	return CopyLocal(ctx, dir, dst, data, opts)
}

// 📋 CopyLocal instantiates the template directory src into dst
func CopyLocal(ctx context.Context, src, dst string, data map[string]any, opts Options) error {
	logger := zerolog.Ctx(ctx)

	srcAbs, err := checkTemplate(src)
	if err != nil {
		return err
	}

	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return errors.Errorf("resolving destination %s: %w", dst, err)
	}

	reporter := opts.reporter()

	cfg := config.LoadDefaults(ctx, opts.ConfigLoader, srcAbs, opts.Reporter, opts.Quiet)

	settings := filter.Resolve(filter.Settings{
		Render:       opts.Render,
		Exclude:      opts.Exclude,
		Include:      opts.Include,
		SkipIfExists: opts.SkipIfExists,
	}, cfg.Settings())

	tasks := opts.Tasks
	if tasks == nil {
		tasks = cfg.Tasks
	}

	values := make(map[string]any, len(data)+1)
	for k, v := range data {
		values[k] = v
	}
	values[FolderNameKey] = filepath.Base(dstAbs)

	renderer := render.New(values, opts.Delims)

	settings, err = renderSettings(renderer, settings)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("src", srcAbs).
		Str("dst", dstAbs).
		Strs("exclude", settings.Exclude).
		Strs("include", settings.Include).
		Strs("skip_if_exists", settings.SkipIfExists).
		Strs("render", settings.Render).
		Bool("pretend", opts.Pretend).
		Msg("copying template")

	w := &walker{
		srcRoot:   srcAbs,
		dstRoot:   dstAbs,
		pretend:   opts.Pretend,
		renderer:  renderer,
		policy:    filter.New(append(settings.Exclude, config.FileNames...), settings.Include),
		templates: match.Compile(settings.Render).WithLogger(*logger),
		resolver: &conflict.Resolver{
			SkipIfExists: match.Compile(settings.SkipIfExists).WithLogger(*logger),
			Force:        opts.Force,
			Skip:         opts.Skip,
			Confirmer:    opts.confirmer(),
			Reporter:     reporter,
		},
	}

	if err := w.walk(ctx); err != nil {
		return err
	}

	if opts.Pretend {
		if len(tasks) > 0 {
			logger.Debug().Int("tasks", len(tasks)).Msg("pretend mode, not running tasks")
		}
		return nil
	}

	return runTasks(ctx, renderer, tasks, dstAbs, opts.TaskStdout, opts.TaskStderr)
}

func checkTemplate(src string) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", errors.Errorf("resolving template %s: %w", src, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.Errorf("%s: %w", src, ErrTemplateNotFound)
		}
		return "", errors.Errorf("checking template %s: %w", src, err)
	}

	if !info.IsDir() {
		return "", errors.Errorf("%s: %w", src, ErrTemplateNotDir)
	}

	return abs, nil
}

// renderSettings expands data references inside the pattern lists
func renderSettings(r *render.Renderer, s filter.Settings) (filter.Settings, error) {
	var err error
	out := filter.Settings{}

	if out.Exclude, err = r.Strings(s.Exclude); err != nil {
		return out, errors.Errorf("rendering exclude patterns: %w", err)
	}
	if out.Include, err = r.Strings(s.Include); err != nil {
		return out, errors.Errorf("rendering include patterns: %w", err)
	}
	if out.SkipIfExists, err = r.Strings(s.SkipIfExists); err != nil {
		return out, errors.Errorf("rendering skip_if_exists patterns: %w", err)
	}
	if out.Render, err = r.Strings(s.Render); err != nil {
		return out, errors.Errorf("rendering render patterns: %w", err)
	}

	return out, nil
}
