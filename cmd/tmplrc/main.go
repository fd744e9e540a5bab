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

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/walteh/tmplrc/cmd/tmplrc/commands"
	"github.com/walteh/tmplrc/cmd/tmplrc/opts"
	"github.com/walteh/tmplrc/pkg/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.New(os.Stderr).Errorf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{
		Console: log.New(os.Stdout),
	}

	rootCmd := &cobra.Command{
		Use:   "tmplrc",
		Short: "Instantiate project skeletons from template directories",
		Long: `tmplrc copies a template directory (local or a git repository) to a
destination, rendering names and *.tmpl files with your data and asking before
overwriting anything that changed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), rootOpts.Debug))
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewCopyCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}
