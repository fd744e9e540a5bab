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
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/tmplrc/cmd/tmplrc/opts"
	"github.com/walteh/tmplrc/pkg/conflict"
	"github.com/walteh/tmplrc/pkg/operation"
	"github.com/walteh/tmplrc/pkg/remote"
	"github.com/walteh/tmplrc/pkg/render"
)

type copyFlags struct {
	exclude      []string
	include      []string
	skipIfExists []string
	render       []string
	tasks        []string
	data         []string
	dataFile     string
	delims       render.Delims
	pretend      bool
	force        bool
	skip         bool
	quiet        bool
}

// 📋 NewCopyCmd creates the copy command
func NewCopyCmd(rootOpts *opts.RootOpts) *cobra.Command {
	f := &copyFlags{}

	cmd := &cobra.Command{
		Use:   "copy SOURCE DESTINATION",
		Short: "Copy a template to a destination",
		Long: `Copy a template directory to DESTINATION, rendering names and the
content of files that match the render patterns (*.tmpl by default).

SOURCE is a local directory or a git locator:
  gh:owner/repo.git[@ref]      GitHub (ref "latest" picks the newest release)
  gl:owner/repo.git[@ref]      GitLab
  git+https://host/repo        any git url
  git@host:repo.git[@ref]      scp-like ssh`,
		Example: `  tmplrc copy ./skeleton ./my-app --data name=my-app
  tmplrc copy gh:owner/skeleton.git@latest ./my-app --data-file answers.yaml --skip`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if f.force && f.skip {
				return errors.New("--force and --skip are mutually exclusive")
			}

			data, err := loadData(f.dataFile, f.data)
			if err != nil {
				return err
			}

			copyOpts := operation.Options{
				Exclude:      changed(cmd, "exclude", f.exclude),
				Include:      changed(cmd, "include", f.include),
				SkipIfExists: changed(cmd, "skip-if-exists", f.skipIfExists),
				Render:       changed(cmd, "render", f.render),
				Tasks:        changed(cmd, "task", f.tasks),
				Delims:       f.delims,
				Pretend:      f.pretend,
				Force:        f.force,
				Skip:         f.skip,
				Quiet:        f.quiet,
				Reporter:     rootOpts.Console,
				Confirmer:    conflict.PromptConfirmer{},
				Cloner:       remote.NewGitCloner(),
				TaskStdout:   cmd.OutOrStdout(),
				TaskStderr:   cmd.ErrOrStderr(),
			}

			if err := operation.Copy(ctx, args[0], args[1], data, copyOpts); err != nil {
				return errors.Errorf("copying %s: %w", args[0], err)
			}

			if !f.quiet {
				rootOpts.Console.Summary(ctx)
				if f.pretend {
					rootOpts.Console.Successf("pretend run, nothing was written to %s", args[1])
				} else {
					rootOpts.Console.Successf("done: %s", args[1])
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&f.exclude, "exclude", "x", nil, "glob patterns to exclude, replaces the template and default lists")
	flags.StringSliceVarP(&f.include, "include", "i", nil, "glob patterns to include even when excluded")
	flags.StringSliceVar(&f.skipIfExists, "skip-if-exists", nil, "glob patterns of files never overwritten once they exist")
	flags.StringSliceVar(&f.render, "render", nil, "glob patterns of files whose content is rendered")
	flags.StringArrayVar(&f.tasks, "task", nil, "shell command run in the destination after copying, repeatable")
	flags.StringArrayVar(&f.data, "data", nil, "template data as key=value, repeatable")
	flags.StringVar(&f.dataFile, "data-file", "", "YAML file with template data")
	flags.StringVar(&f.delims.VariableStart, "variable-start", "", "expression start marker (default \"[[\")")
	flags.StringVar(&f.delims.VariableEnd, "variable-end", "", "expression end marker (default \"]]\")")
	flags.StringVar(&f.delims.BlockStart, "block-start", "", "statement start marker (default \"[%\")")
	flags.StringVar(&f.delims.BlockEnd, "block-end", "", "statement end marker (default \"%]\")")
	flags.BoolVarP(&f.pretend, "pretend", "n", false, "report what would happen without writing anything")
	flags.BoolVarP(&f.force, "force", "f", false, "overwrite conflicting files without asking")
	flags.BoolVarP(&f.skip, "skip", "s", false, "keep conflicting files without asking")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "print nothing but errors")

	return cmd
}

// changed returns value when the flag was given, nil otherwise so the template config applies
func changed(cmd *cobra.Command, name string, value []string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	if value == nil {
		return []string{}
	}
	return value
}

// loadData merges the data file with key=value pairs, pairs win
func loadData(file string, pairs []string) (map[string]any, error) {
	data := map[string]any{}

	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Errorf("reading data file: %w", err)
		}
		if err := yaml.Unmarshal(b, &data); err != nil {
			return nil, errors.Errorf("parsing data file %s: %w", file, err)
		}
		if data == nil {
			data = map[string]any{}
		}
	}

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid --data %q, expected key=value", pair)
		}
		data[key] = parseValue(raw)
	}

	return data, nil
}

// parseValue reads a scalar the way YAML does so `debug=true` is a bool, anything else stays a string
func parseValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case bool, int, float64:
		return v
	default:
		return raw
	}
}
