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

package status

import (
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_String(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionCreate, "create"},
		{ActionIdentical, "identical"},
		{ActionSkip, "skip"},
		{ActionConflict, "conflict"},
		{ActionForce, "force"},
		{ActionUnknown, "unknown"},
		{Action(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.String())
		})
	}
}

func TestFormatEvent(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "create_is_right_aligned",
			ev:   Event{Action: ActionCreate, Path: "README.md"},
			want: "    create  README.md",
		},
		{
			name: "identical_fills_width",
			ev:   Event{Action: ActionIdentical, Path: "src/", IsDir: true},
			want: " identical  src/",
		},
		{
			name: "conflict",
			ev:   Event{Action: ActionConflict, Path: "a/b.txt"},
			want: "  conflict  a/b.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEvent(tt.ev))
		})
	}
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	r.Report(ctx, Event{Action: ActionConflict, Path: "a.txt"})
	r.Report(ctx, Event{Action: ActionForce, Path: "a.txt"})
	r.Report(ctx, Event{Action: ActionCreate, Path: "b.txt"})
	r.ReportError(ctx, "bad config", errors.New("boom"))

	assert.Equal(t, []Action{ActionConflict, ActionForce}, r.ActionsFor("a.txt"))
	assert.Equal(t, []Action{ActionCreate}, r.ActionsFor("b.txt"))
	assert.Empty(t, r.ActionsFor("c.txt"))

	require.Len(t, r.Errors(), 1)
	assert.Equal(t, "bad config", r.Errors()[0].Title)

	counts := Summary(r.Events())
	assert.Equal(t, 1, counts[ActionCreate])
	assert.Equal(t, 1, counts[ActionForce])
	assert.Equal(t, 0, counts[ActionSkip])
}
