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
	"sync"
)

// 📊 Action is what happened to one destination entry
type Action int

const (
	ActionUnknown   Action = iota
	ActionCreate           // entry did not exist and was (or would be) written
	ActionIdentical        // entry exists with the same content
	ActionSkip             // entry exists and was left untouched
	ActionConflict         // entry exists with different content
	ActionForce            // entry was (or would be) overwritten
)

// String returns the word printed for the action
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionIdentical:
		return "identical"
	case ActionSkip:
		return "skip"
	case ActionConflict:
		return "conflict"
	case ActionForce:
		return "force"
	default:
		return "unknown"
	}
}

// 📄 Event is one report about one entry
type Event struct {
	Action Action
	Path   string // display path, relative to the destination, `/` terminated for directories
	IsDir  bool
}

// 📈 Reporter receives events from the copy engine
type Reporter interface {
	// Report is called once per event, in traversal order
	Report(ctx context.Context, ev Event)
	// ReportError is called for problems the engine recovers from
	ReportError(ctx context.Context, title string, err error)
}

// 🔇 Discard drops every event
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(context.Context, Event)              {}
func (discard) ReportError(context.Context, string, error) {}

// 📼 Recorder keeps events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
	errors []RecordedError
}

// RecordedError is an error passed to Recorder.ReportError
type RecordedError struct {
	Title string
	Err   error
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) ReportError(_ context.Context, title string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, RecordedError{Title: title, Err: err})
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Errors returns a copy of the recorded errors
func (r *Recorder) Errors() []RecordedError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedError(nil), r.errors...)
}

// ActionsFor returns the actions reported for path, in order
func (r *Recorder) ActionsFor(path string) []Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Action
	for _, ev := range r.events {
		if ev.Path == path {
			out = append(out, ev.Action)
		}
	}
	return out
}

// 🧮 Summary counts events per action
func Summary(events []Event) map[Action]int {
	counts := make(map[Action]int)
	for _, ev := range events {
		counts[ev.Action]++
	}
	return counts
}
