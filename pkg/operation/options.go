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
	"io"

	"github.com/walteh/tmplrc/pkg/config"
	"github.com/walteh/tmplrc/pkg/conflict"
	"github.com/walteh/tmplrc/pkg/remote"
	"github.com/walteh/tmplrc/pkg/render"
	"github.com/walteh/tmplrc/pkg/status"
)

// 🔧 Options controls one copy.
// Nil pattern lists and Tasks mean "not given": the template config or the
// built-in default is used instead. An empty non-nil list overrides both.
type Options struct {
	Exclude      []string
	Include      []string
	SkipIfExists []string
	Render       []string
	Tasks        []string

	// Delims overrides the template markers, empty fields keep their default
	Delims render.Delims

	Pretend bool // report everything, write nothing, run no tasks
	Force   bool // overwrite conflicts without asking
	Skip    bool // keep conflicting files without asking
	Quiet   bool // suppress events and config warnings

	Reporter     status.Reporter    // defaults to status.Discard
	Confirmer    conflict.Confirmer // defaults to conflict.PromptConfirmer
	ConfigLoader config.Loader      // defaults to config.FileLoader
	Cloner       remote.Cloner      // defaults to remote.NewGitCloner

	// TaskStdout and TaskStderr receive task output, nil discards it
	TaskStdout io.Writer
	TaskStderr io.Writer
}

func (o Options) reporter() status.Reporter {
	if o.Quiet || o.Reporter == nil {
		return status.Discard
	}
	return o.Reporter
}

func (o Options) confirmer() conflict.Confirmer {
	if o.Confirmer == nil {
		return conflict.PromptConfirmer{}
	}
	return o.Confirmer
}

func (o Options) cloner() remote.Cloner {
	if o.Cloner == nil {
		return remote.NewGitCloner()
	}
	return o.Cloner
}
