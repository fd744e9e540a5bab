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
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tmplrc/pkg/config"
	"github.com/walteh/tmplrc/pkg/conflict"
	"github.com/walteh/tmplrc/pkg/status"
)

type mockConfirmer struct {
	mock.Mock
}

func (m *mockConfirmer) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	args := m.Called(ctx, question, defaultYes)
	return args.Bool(0), args.Error(1)
}

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(ctx context.Context, dir string) (*config.Config, error) {
	args := m.Called(ctx, dir)
	cfg, _ := args.Get(0).(*config.Config)
	return cfg, args.Error(1)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// writeTree creates files from a path -> content map, a trailing slash creates an empty directory
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// listTree returns every path below root, slash separated, directories with a trailing slash
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func readFile(t *testing.T, path ...string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(path...))
	require.NoError(t, err)
	return string(b)
}

// projectTemplate mirrors a small project skeleton
func projectTemplate(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"file.txt.tmpl":          "Hello [[ .name ]]",
		"README.md":              "# [[ .name ]] is not rendered here",
		"config.py":              "DEBUG = False\n",
		"aaaa.txt":               "aaaa",
		"doc/mañana.txt":         "mañana",
		"doc/images/logo.gif":    "GIF89a",
		"[[ .myvar ]]/hello.txt": "hello",
		"[[ .myvar ]].txt":       "named",
		".svn/entries":           "svn",
		"~backup.txt":            "old",
		"pkg/__pycache__/x.pyc":  "bytecode",
		"pkg/mod.pyc":            "bytecode",
		"tmplrc.yaml":            "exclude: ['*.never']\n",
	})
	return src
}

func baseData() map[string]any {
	return map[string]any{"name": "World", "myvar": "awesome"}
}

func TestCopyLocal_Project(t *testing.T) {
	ctx := testContext(t)
	src := projectTemplate(t)
	dst := filepath.Join(t.TempDir(), "out")

	rec := status.NewRecorder()
	err := CopyLocal(ctx, src, dst, baseData(), Options{Reporter: rec, Force: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"aaaa.txt",
		"awesome.txt",
		"awesome/",
		"awesome/hello.txt",
		"config.py",
		"doc/",
		"doc/images/",
		"doc/images/logo.gif",
		"doc/mañana.txt",
		"file.txt",
		"pkg/",
	}, listTree(t, dst))

	assert.Equal(t, "Hello World", readFile(t, dst, "file.txt"))
	assert.Equal(t, "# [[ .name ]] is not rendered here", readFile(t, dst, "README.md"))
	assert.Equal(t, "hello", readFile(t, dst, "awesome", "hello.txt"))
	assert.Equal(t, "named", readFile(t, dst, "awesome.txt"))
	assert.Empty(t, rec.Errors())
}

func TestCopyLocal_TraversalOrder(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"b.txt":     "b",
		"a.txt":     "a",
		"z/1.txt":   "1",
		"m/2.txt":   "2",
		"m/n/3.txt": "3",
	})

	rec := status.NewRecorder()
	require.NoError(t, CopyLocal(ctx, src, t.TempDir(), nil, Options{Reporter: rec}))

	var paths []string
	for _, ev := range rec.Events() {
		assert.Equal(t, status.ActionCreate, ev.Action)
		paths = append(paths, ev.Path)
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "m/", "m/2.txt", "m/n/", "m/n/3.txt", "z/", "z/1.txt"}, paths)
}

func TestCopyLocal_TemplateSuffix(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"file.txt.tmpl":    "Hello [[ .name ]]",
		"block.txt.tmpl":   "[% if .shout %]HEY[% else %]hey[% end %]",
		"UPPER.md.TMPL":    "raw [[ .name ]]",
		"plain.txt":        "Hello [[ .name ]]",
		".tmpl":            "bare",
		"folder_name.tmpl": "[[ .folder_name ]]",
	})
	dst := filepath.Join(t.TempDir(), "my-project")

	require.NoError(t, CopyLocal(ctx, src, dst, map[string]any{"name": "World", "shout": true}, Options{}))

	assert.Equal(t, "Hello World", readFile(t, dst, "file.txt"))
	assert.Equal(t, "HEY", readFile(t, dst, "block.txt"))
	assert.Equal(t, "raw [[ .name ]]", readFile(t, dst, "UPPER.md"), "suffix is stripped in any case, render patterns are case sensitive")
	assert.Equal(t, "Hello [[ .name ]]", readFile(t, dst, "plain.txt"), "files outside the render set are copied verbatim")
	assert.Equal(t, "bare", readFile(t, dst, ".tmpl"))
	assert.Equal(t, "my-project", readFile(t, dst, "folder_name"))
	assert.NoFileExists(t, filepath.Join(dst, "file.txt.tmpl"))
}

func TestCopyLocal_DefaultExcludeAndInclude(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		wantSvn bool
	}{
		{"default_excludes_svn", nil, false},
		{"include_name", []string{".svn"}, true},
		{"include_pattern", []string{".*"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			src := projectTemplate(t)
			dst := t.TempDir()

			require.NoError(t, CopyLocal(ctx, src, dst, baseData(), Options{Include: tt.include}))

			if tt.wantSvn {
				assert.Equal(t, "svn", readFile(t, dst, ".svn", "entries"))
			} else {
				assert.NoDirExists(t, filepath.Join(dst, ".svn"))
			}
			assert.NoFileExists(t, filepath.Join(dst, "~backup.txt"))
			assert.NoFileExists(t, filepath.Join(dst, "pkg", "mod.pyc"))
			assert.NoDirExists(t, filepath.Join(dst, "pkg", "__pycache__"))
			assert.NoFileExists(t, filepath.Join(dst, "tmplrc.yaml"), "template config is never copied")
		})
	}
}

func TestCopyLocal_ExcludeUnicode(t *testing.T) {
	ctx := testContext(t)
	src := projectTemplate(t)
	dst := t.TempDir()

	require.NoError(t, CopyLocal(ctx, src, dst, baseData(), Options{Exclude: []string{"mañana.txt"}}))

	assert.NoFileExists(t, filepath.Join(dst, "doc", "mañana.txt"))
	assert.FileExists(t, filepath.Join(dst, "doc", "images", "logo.gif"))
	assert.DirExists(t, filepath.Join(dst, ".svn"), "caller exclude replaces the default list")
}

func TestCopyLocal_ConfigSelection(t *testing.T) {
	tests := []struct {
		name     string
		exclude  []string
		wantAaaa bool
	}{
		{"config_exclude_applies", nil, false},
		{"caller_empty_list_overrides_config", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			src := projectTemplate(t)
			dst := t.TempDir()

			loader := &mockLoader{}
			loader.On("Load", mock.Anything, mock.Anything).Return(&config.Config{Exclude: []string{"*.txt"}}, nil).Once()

			require.NoError(t, CopyLocal(ctx, src, dst, baseData(), Options{Exclude: tt.exclude, ConfigLoader: loader}))

			if tt.wantAaaa {
				assert.FileExists(t, filepath.Join(dst, "aaaa.txt"))
			} else {
				assert.NoFileExists(t, filepath.Join(dst, "aaaa.txt"))
			}
			assert.FileExists(t, filepath.Join(dst, "config.py"))
			loader.AssertExpectations(t)
		})
	}
}

func TestCopyLocal_InvalidConfig(t *testing.T) {
	for _, quiet := range []bool{false, true} {
		t.Run(map[bool]string{false: "reported", true: "quiet"}[quiet], func(t *testing.T) {
			ctx := testContext(t)
			src := t.TempDir()
			writeTree(t, src, map[string]string{
				"tmplrc.yaml": "exclude: [unterminated\n",
				"a.txt":       "a",
			})
			dst := t.TempDir()

			rec := status.NewRecorder()
			require.NoError(t, CopyLocal(ctx, src, dst, nil, Options{Reporter: rec, Quiet: quiet}))

			assert.FileExists(t, filepath.Join(dst, "a.txt"))
			if quiet {
				assert.Empty(t, rec.Errors())
				assert.Empty(t, rec.Events())
			} else {
				assert.Len(t, rec.Errors(), 1)
			}
		})
	}
}

func TestCopyLocal_Conflicts(t *testing.T) {
	tests := []struct {
		name        string
		opts        func(c *mockConfirmer) Options
		answer      *bool
		wantContent string
		wantActions []status.Action
	}{
		{
			name:        "force",
			opts:        func(c *mockConfirmer) Options { return Options{Force: true, Confirmer: c} },
			wantContent: "DEBUG = False\n",
			wantActions: []status.Action{status.ActionConflict, status.ActionForce},
		},
		{
			name:        "skip",
			opts:        func(c *mockConfirmer) Options { return Options{Skip: true, Confirmer: c} },
			wantContent: "custom",
			wantActions: []status.Action{status.ActionConflict, status.ActionSkip},
		},
		{
			name:        "prompt_yes",
			opts:        func(c *mockConfirmer) Options { return Options{Confirmer: c} },
			answer:      boolPtr(true),
			wantContent: "DEBUG = False\n",
			wantActions: []status.Action{status.ActionConflict, status.ActionForce},
		},
		{
			name:        "prompt_no",
			opts:        func(c *mockConfirmer) Options { return Options{Confirmer: c} },
			answer:      boolPtr(false),
			wantContent: "custom",
			wantActions: []status.Action{status.ActionConflict, status.ActionSkip},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			src := t.TempDir()
			writeTree(t, src, map[string]string{"config.py": "DEBUG = False\n"})
			dst := t.TempDir()
			writeTree(t, dst, map[string]string{"config.py": "custom"})

			confirmer := &mockConfirmer{}
			if tt.answer != nil {
				confirmer.On("Confirm", mock.Anything, mock.MatchedBy(func(q string) bool {
					return strings.HasSuffix(q, "config.py?")
				}), true).Return(*tt.answer, nil).Once()
			}

			rec := status.NewRecorder()
			opts := tt.opts(confirmer)
			opts.Reporter = rec

			require.NoError(t, CopyLocal(ctx, src, dst, nil, opts))

			assert.Equal(t, tt.wantContent, readFile(t, dst, "config.py"))
			assert.Equal(t, tt.wantActions, rec.ActionsFor("config.py"))
			confirmer.AssertExpectations(t)
		})
	}
}

func TestCopyLocal_PromptAbort(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "new"})
	dst := t.TempDir()
	writeTree(t, dst, map[string]string{"a.txt": "old"})

	confirmer := &mockConfirmer{}
	confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(false, conflict.ErrAborted)

	err := CopyLocal(ctx, src, dst, nil, Options{Confirmer: confirmer})
	require.Error(t, err)
	assert.True(t, errors.Is(err, conflict.ErrAborted))
	assert.Equal(t, "old", readFile(t, dst, "a.txt"))
}

func TestCopyLocal_SkipIfExists(t *testing.T) {
	for _, force := range []bool{false, true} {
		t.Run(map[bool]string{false: "without_force", true: "with_force"}[force], func(t *testing.T) {
			ctx := testContext(t)
			src := t.TempDir()
			writeTree(t, src, map[string]string{"secrets.env": "TOKEN=template", "other.env": "x"})
			dst := t.TempDir()
			writeTree(t, dst, map[string]string{"secrets.env": "TOKEN=mine"})

			rec := status.NewRecorder()
			opts := Options{
				SkipIfExists: []string{"secrets.*"},
				Force:        force,
				Skip:         !force,
				Reporter:     rec,
			}
			require.NoError(t, CopyLocal(ctx, src, dst, nil, opts))

			assert.Equal(t, "TOKEN=mine", readFile(t, dst, "secrets.env"))
			assert.Equal(t, []status.Action{status.ActionSkip}, rec.ActionsFor("secrets.env"))
			assert.Equal(t, []status.Action{status.ActionCreate}, rec.ActionsFor("other.env"))
		})
	}
}

func TestCopyLocal_IdenticalIsReflexive(t *testing.T) {
	ctx := testContext(t)
	src := projectTemplate(t)
	dst := t.TempDir()

	require.NoError(t, CopyLocal(ctx, src, dst, baseData(), Options{}))

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, name := range []string{"file.txt", "config.py"} {
		require.NoError(t, os.Chtimes(filepath.Join(dst, name), old, old))
	}

	for run := 0; run < 2; run++ {
		confirmer := &mockConfirmer{}
		rec := status.NewRecorder()
		require.NoError(t, CopyLocal(ctx, src, dst, baseData(), Options{Reporter: rec, Confirmer: confirmer}))

		for _, ev := range rec.Events() {
			assert.Equal(t, status.ActionIdentical, ev.Action, "run %d: %s", run, ev.Path)
		}
		assert.NotEmpty(t, rec.Events())
		confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
	}

	for _, name := range []string{"file.txt", "config.py"} {
		info, err := os.Stat(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old), "%s was rewritten", name)
	}
}

func TestCopyLocal_Pretend(t *testing.T) {
	ctx := testContext(t)
	src := projectTemplate(t)

	// existing destination with one conflicting file
	pretendDst := t.TempDir()
	writeTree(t, pretendDst, map[string]string{"config.py": "custom"})
	realDst := t.TempDir()
	writeTree(t, realDst, map[string]string{"config.py": "custom"})

	before := listTree(t, pretendDst)

	pretendRec := status.NewRecorder()
	opts := Options{
		Pretend:  true,
		Force:    true,
		Tasks:    []string{"touch task-ran"},
		Reporter: pretendRec,
	}
	require.NoError(t, CopyLocal(ctx, src, pretendDst, baseData(), opts))

	assert.Equal(t, before, listTree(t, pretendDst))
	assert.Equal(t, "custom", readFile(t, pretendDst, "config.py"))

	realRec := status.NewRecorder()
	opts.Pretend = false
	opts.Tasks = []string{}
	opts.Reporter = realRec
	require.NoError(t, CopyLocal(ctx, src, realDst, baseData(), opts))

	assert.Equal(t, realRec.Events(), pretendRec.Events())
	assert.Contains(t, pretendRec.ActionsFor("config.py"), status.ActionForce)
}

func TestCopyLocal_PretendMissingDestination(t *testing.T) {
	ctx := testContext(t)
	src := projectTemplate(t)
	dst := filepath.Join(t.TempDir(), "not", "there")

	require.NoError(t, CopyLocal(ctx, src, dst, baseData(), Options{Pretend: true}))
	assert.NoDirExists(t, dst)
}

func TestCopyLocal_RenderedPatterns(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a", "b.txt": "b"})
	dst := t.TempDir()

	opts := Options{Exclude: []string{"[[ .drop ]]"}}
	require.NoError(t, CopyLocal(ctx, src, dst, map[string]any{"drop": "b.txt"}, opts))

	assert.FileExists(t, filepath.Join(dst, "a.txt"))
	assert.NoFileExists(t, filepath.Join(dst, "b.txt"))
}

func TestCopyLocal_EmptyRenderedName(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"[% if .docs %]docs[% end %]/index.md": "docs",
		"[% if .docs %]DOCS.md[% end %]":       "docs",
		"keep.md":                              "keep",
	})
	dst := t.TempDir()

	require.NoError(t, CopyLocal(ctx, src, dst, map[string]any{"docs": false}, Options{}))
	assert.Equal(t, []string{"keep.md"}, listTree(t, dst))
}

func TestCopyLocal_TemplateText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bare_name", content: "Hello [[ name ]]", want: "Hello World"},
		{name: "dotted_name", content: "Hello [[ .name ]]", want: "Hello World"},
		{name: "literal_percent_bracket", content: "# [[ .name ]]\nstatus: [done 100%]\n", want: "# World\nstatus: [done 100%]\n"},
		{name: "folder_name", content: "[[ folder_name ]]", want: "out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			src := t.TempDir()
			writeTree(t, src, map[string]string{"file.txt.tmpl": tt.content})
			dst := filepath.Join(t.TempDir(), "out")

			require.NoError(t, CopyLocal(ctx, src, dst, map[string]any{"name": "World"}, Options{}))
			assert.Equal(t, tt.want, readFile(t, dst, "file.txt"))
		})
	}
}

func TestCopyLocal_ConfigWithUnknownKey(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"tmplrc.yaml": "exclude: ['*.txt']\nfoo: bar\n",
		"a.txt":       "a",
		"b.md":        "b",
	})
	dst := t.TempDir()
	rec := status.NewRecorder()

	require.NoError(t, CopyLocal(ctx, src, dst, nil, Options{Reporter: rec}))
	assert.Equal(t, []string{"b.md"}, listTree(t, dst))
	assert.Empty(t, rec.Errors())
}

func TestCopyLocal_SymlinkedDirectories(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"shared/common.txt": "common",
		"sub/file.txt":      "file",
	})
	require.NoError(t, os.Symlink(".", filepath.Join(src, "loop")))
	require.NoError(t, os.Symlink("..", filepath.Join(src, "sub", "up")))
	require.NoError(t, os.Symlink(filepath.Join(src, "shared"), filepath.Join(src, "linked")))
	dst := t.TempDir()
	rec := status.NewRecorder()

	require.NoError(t, CopyLocal(ctx, src, dst, nil, Options{Reporter: rec}))
	assert.Equal(t, []string{
		"linked/",
		"linked/common.txt",
		"shared/",
		"shared/common.txt",
		"sub/",
		"sub/file.txt",
	}, listTree(t, dst))
	assert.Empty(t, rec.ActionsFor("loop/"))
}

func TestCopyLocal_RenderedNameEscapes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "file", files: map[string]string{"[[ .name ]].txt": "x"}},
		{name: "directory", files: map[string]string{"[[ .name ]]/a.txt": "x"}},
		{name: "nested", files: map[string]string{"sub/[[ .name ]].txt": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			src := t.TempDir()
			writeTree(t, src, tt.files)
			parent := t.TempDir()
			dst := filepath.Join(parent, "out")

			err := CopyLocal(ctx, src, dst, map[string]any{"name": "../../x"}, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPathEscapes))
			assert.NoFileExists(t, filepath.Join(parent, "x.txt"))
			assert.NoDirExists(t, filepath.Join(parent, "x"))
		})
	}

	t.Run("dot_dot_inside_root", func(t *testing.T) {
		ctx := testContext(t)
		src := t.TempDir()
		writeTree(t, src, map[string]string{"sub/[[ .name ]].txt": "x"})
		dst := t.TempDir()

		require.NoError(t, CopyLocal(ctx, src, dst, map[string]any{"name": "../top"}, Options{}))
		assert.Equal(t, []string{"sub/", "top.txt"}, listTree(t, dst))
	})
}

func TestJoinRel(t *testing.T) {
	tests := []struct {
		parent  string
		name    string
		want    string
		wantErr bool
	}{
		{parent: ".", name: "a.txt", want: "a.txt"},
		{parent: "sub", name: "a.txt", want: "sub/a.txt"},
		{parent: "sub", name: "../a.txt", want: "a.txt"},
		{parent: ".", name: "..", wantErr: true},
		{parent: "sub", name: "../../a.txt", wantErr: true},
		{parent: ".", name: "../a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"+"+tt.name, func(t *testing.T) {
			got, err := joinRel(tt.parent, tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrPathEscapes))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCopyLocal_PreservesTimes(t *testing.T) {
	ctx := testContext(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"run.sh": "#!/bin/sh\n"})
	old := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chmod(filepath.Join(src, "run.sh"), 0o755))
	require.NoError(t, os.Chtimes(filepath.Join(src, "run.sh"), old, old))
	dst := t.TempDir()

	require.NoError(t, CopyLocal(ctx, src, dst, nil, Options{}))

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopyLocal_Errors(t *testing.T) {
	ctx := testContext(t)
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file")
	writeTree(t, tmp, map[string]string{"file": "x"})

	t.Run("missing_template", func(t *testing.T) {
		dst := filepath.Join(tmp, "dst-missing")
		err := CopyLocal(ctx, filepath.Join(tmp, "foobar"), dst, nil, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTemplateNotFound))
		assert.NoDirExists(t, dst)
	})

	t.Run("template_is_file", func(t *testing.T) {
		dst := filepath.Join(tmp, "dst-file")
		err := CopyLocal(ctx, file, dst, nil, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTemplateNotDir))
		assert.NoDirExists(t, dst)
	})

	t.Run("undefined_variable", func(t *testing.T) {
		src := t.TempDir()
		writeTree(t, src, map[string]string{"a.txt.tmpl": "[[ .nope ]]"})
		err := CopyLocal(ctx, src, t.TempDir(), nil, Options{})
		require.Error(t, err)
	})

	t.Run("malformed_expression", func(t *testing.T) {
		src := t.TempDir()
		writeTree(t, src, map[string]string{"[[ if ]].txt": "x"})
		err := CopyLocal(ctx, src, t.TempDir(), nil, Options{})
		require.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		src := projectTemplate(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := CopyLocal(cctx, src, t.TempDir(), baseData(), Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func boolPtr(b bool) *bool {
	return &b
}
