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
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tmplrc/pkg/conflict"
	"github.com/walteh/tmplrc/pkg/filter"
	"github.com/walteh/tmplrc/pkg/match"
	"github.com/walteh/tmplrc/pkg/render"
)

// TemplateSuffix is stripped from file names, case insensitively
const TemplateSuffix = ".tmpl"

// 🚶 walker visits the template depth first, files of a directory before its subdirectories
type walker struct {
	srcRoot   string
	dstRoot   string
	pretend   bool
	renderer  *render.Renderer
	policy    *filter.Policy
	templates *match.Matcher
	resolver  *conflict.Resolver

	// real paths of the source directories currently being visited
	active map[string]bool
}

func (w *walker) walk(ctx context.Context) error {
	resolved, err := filepath.EvalSymlinks(w.srcRoot)
	if err != nil {
		return errors.Errorf("resolving template %s: %w", w.srcRoot, err)
	}
	w.active = map[string]bool{resolved: true}

	if !w.pretend {
		if err := os.MkdirAll(w.dstRoot, 0o755); err != nil {
			return errors.Errorf("creating destination %s: %w", w.dstRoot, err)
		}
	}
	return w.visitChildren(ctx, w.srcRoot, ".", ".")
}

// dir handles a subdirectory, srcRel and dstRel are slash separated
func (w *walker) dir(ctx context.Context, srcAbs, srcRel, dstRel string) error {
	logger := zerolog.Ctx(ctx).With().Str("dir", dstRel).Logger()

	if !w.policy.Included(dstRel) {
		logger.Debug().Msg("excluded")
		return nil
	}

	resolved, err := filepath.EvalSymlinks(srcAbs)
	if err != nil {
		return errors.Errorf("resolving directory %s: %w", srcRel, err)
	}
	if w.active[resolved] {
		logger.Debug().Str("src", srcRel).Str("target", resolved).Msg("link points to a parent directory, skipping")
		return nil
	}
	w.active[resolved] = true
	defer delete(w.active, resolved)

	dstAbs := filepath.Join(w.dstRoot, filepath.FromSlash(dstRel))

	outcome, err := w.resolver.ResolveDir(ctx, dstRel, dstAbs)
	if err != nil {
		return err
	}

	if outcome == conflict.OutcomeCreate && !w.pretend {
		if err := os.MkdirAll(dstAbs, 0o755); err != nil {
			return errors.Errorf("creating directory %s: %w", dstAbs, err)
		}
	}

	return w.visitChildren(ctx, srcAbs, srcRel, dstRel)
}

func (w *walker) visitChildren(ctx context.Context, srcAbs, srcRel, dstRel string) error {
	entries, err := os.ReadDir(srcAbs)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", srcAbs, err)
	}

	var dirs []os.DirEntry
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("copy interrupted: %w", err)
		}

		isDir, err := isDirectory(srcAbs, entry)
		if err != nil {
			return err
		}
		if isDir {
			dirs = append(dirs, entry)
			continue
		}

		if err := w.file(ctx, filepath.Join(srcAbs, entry.Name()), path.Join(srcRel, entry.Name()), dstRel, entry.Name()); err != nil {
			return err
		}
	}

	for _, entry := range dirs {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("copy interrupted: %w", err)
		}

		name, err := w.renderer.String(entry.Name())
		if err != nil {
			return errors.Errorf("rendering directory name %s: %w", path.Join(srcRel, entry.Name()), err)
		}
		if name == "" {
			zerolog.Ctx(ctx).Debug().Str("dir", path.Join(srcRel, entry.Name())).Msg("name rendered empty, skipping")
			continue
		}

		childRel, err := joinRel(dstRel, name)
		if err != nil {
			return err
		}

		if err := w.dir(ctx, filepath.Join(srcAbs, entry.Name()), path.Join(srcRel, entry.Name()), childRel); err != nil {
			return err
		}
	}

	return nil
}

// file handles one file, srcRel and dstParent are slash separated
func (w *walker) file(ctx context.Context, srcAbs, srcRel, dstParent, name string) error {
	logger := zerolog.Ctx(ctx).With().Str("src", srcRel).Logger()

	name, err := w.renderer.String(StripTemplateSuffix(name))
	if err != nil {
		return errors.Errorf("rendering file name %s: %w", srcRel, err)
	}
	if name == "" {
		logger.Debug().Msg("name rendered empty, skipping")
		return nil
	}

	dstRel, err := joinRel(dstParent, name)
	if err != nil {
		return err
	}
	if !w.policy.Included(dstRel) {
		logger.Debug().Str("dst", dstRel).Msg("excluded")
		return nil
	}

	dstAbs := filepath.Join(w.dstRoot, filepath.FromSlash(dstRel))

	if w.templates.Match(srcRel) {
		content, err := w.renderer.File(srcAbs)
		if err != nil {
			return err
		}

		outcome, err := w.resolver.ResolveRendered(ctx, dstRel, dstAbs, []byte(content))
		if err != nil {
			return err
		}
		logger.Debug().Str("dst", dstRel).Stringer("outcome", outcome).Msg("rendered file")

		if !outcome.Writes() || w.pretend {
			return nil
		}
		return writeRendered(srcAbs, dstAbs, content)
	}

	outcome, err := w.resolver.ResolveCopy(ctx, dstRel, dstAbs, srcAbs)
	if err != nil {
		return err
	}
	logger.Debug().Str("dst", dstRel).Stringer("outcome", outcome).Msg("copied file")

	if !outcome.Writes() || w.pretend {
		return nil
	}
	return copyRaw(srcAbs, dstAbs)
}

// joinRel joins a rendered name to its destination parent, the result must stay below the destination root
func joinRel(parent, name string) (string, error) {
	rel := path.Join(parent, filepath.ToSlash(name))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.Errorf("%q: %w", path.Join(parent, name), ErrPathEscapes)
	}
	return rel, nil
}

// StripTemplateSuffix removes a trailing TemplateSuffix in any letter case
func StripTemplateSuffix(name string) string {
	if len(name) > len(TemplateSuffix) && strings.EqualFold(name[len(name)-len(TemplateSuffix):], TemplateSuffix) {
		return name[:len(name)-len(TemplateSuffix)]
	}
	return name
}

func isDirectory(parent string, entry os.DirEntry) (bool, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	if err != nil {
		return false, errors.Errorf("following link %s: %w", entry.Name(), err)
	}
	return info.IsDir(), nil
}
