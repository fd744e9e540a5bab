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

package conflict

import (
	"context"

	"github.com/charmbracelet/huh"
	"gitlab.com/tozd/go/errors"
)

// ErrAborted is returned when the user aborts a prompt
var ErrAborted = errors.New("aborted by user")

// 💬 PromptConfirmer asks on the terminal
type PromptConfirmer struct{}

var _ Confirmer = PromptConfirmer{}

// Confirm shows a yes/no prompt, preselected to defaultYes
func (PromptConfirmer) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	confirmed := defaultYes

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, errors.WithStack(ErrAborted)
		}
		return false, errors.Errorf("running prompt: %w", err)
	}

	return confirmed, nil
}

// 🤖 StaticConfirmer always gives the same answer
type StaticConfirmer bool

// Confirm returns the static answer
func (s StaticConfirmer) Confirm(context.Context, string, bool) (bool, error) {
	return bool(s), nil
}
