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

package render

import (
	"bytes"
	"os"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/Masterminds/sprig/v3"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Delims holds the marker sequences used by templates.
//
// Expressions print a value, statements hold control flow (if, range, ...).
// Both default to bracket markers so generated projects can keep using `{{`.
type Delims struct {
	VariableStart string `json:"variable_start" yaml:"variable_start" hcl:"variable_start,optional"`
	VariableEnd   string `json:"variable_end" yaml:"variable_end" hcl:"variable_end,optional"`
	BlockStart    string `json:"block_start" yaml:"block_start" hcl:"block_start,optional"`
	BlockEnd      string `json:"block_end" yaml:"block_end" hcl:"block_end,optional"`
}

// DefaultDelims returns the default marker sequences
func DefaultDelims() Delims {
	return Delims{
		VariableStart: "[[",
		VariableEnd:   "]]",
		BlockStart:    "[%",
		BlockEnd:      "%]",
	}
}

// withDefaults fills every empty marker from DefaultDelims
func (d Delims) withDefaults() Delims {
	def := DefaultDelims()
	if d.VariableStart == "" {
		d.VariableStart = def.VariableStart
	}
	if d.VariableEnd == "" {
		d.VariableEnd = def.VariableEnd
	}
	if d.BlockStart == "" {
		d.BlockStart = def.BlockStart
	}
	if d.BlockEnd == "" {
		d.BlockEnd = def.BlockEnd
	}
	return d
}

// 🖨️ Renderer expands templates against a fixed data mapping
type Renderer struct {
	data   map[string]any
	delims Delims
	funcs  template.FuncMap
}

// 🏭 New creates a renderer. The data map is copied and never mutated afterwards.
func New(data map[string]any, delims Delims) *Renderer {
	cp := make(map[string]any, len(data))
	for k, v := range data {
		cp[k] = v
	}

	funcs := sprig.TxtFuncMap()
	funcs["now"] = func() time.Time { return time.Now().UTC() }

	// bare names: `[[ name ]]` works as well as `[[ .name ]]`
	for k, v := range cp {
		if _, taken := funcs[k]; taken || reserved[k] || !isIdentifier(k) {
			continue
		}
		funcs[k] = func() any { return v }
	}

	return &Renderer{
		data:   cp,
		delims: delims.withDefaults(),
		funcs:  funcs,
	}
}

// Data returns a copy of the data mapping
func (r *Renderer) Data() map[string]any {
	cp := make(map[string]any, len(r.data))
	for k, v := range r.data {
		cp[k] = v
	}
	return cp
}

// 📝 String renders a template string. Strings without any marker are returned as is.
func (r *Renderer) String(text string) (string, error) {
	return r.execute("string", text)
}

// 📄 File renders the contents of the file at path
func (r *Renderer) File(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading template %s: %w", path, err)
	}

	out, err := r.execute(path, string(content))
	if err != nil {
		return "", errors.Errorf("rendering %s: %w", path, err)
	}
	return out, nil
}

// 🔧 Strings renders every entry of a list, keeping order
func (r *Renderer) Strings(texts []string) ([]string, error) {
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		rendered, err := r.String(text)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

func (r *Renderer) execute(name, text string) (string, error) {
	if !r.hasMarkers(text) {
		return text, nil
	}

	d := r.delims
	if d.BlockStart != d.VariableStart || d.BlockEnd != d.VariableEnd {
		// text/template has a single delimiter pair
		text = rewriteBlocks(text, d)
	}

	tmpl, err := template.New(name).
		Delims(d.VariableStart, d.VariableEnd).
		Option("missingkey=error").
		Funcs(r.funcs).
		Parse(text)
	if err != nil {
		return "", errors.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return "", errors.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) hasMarkers(text string) bool {
	return strings.Contains(text, r.delims.VariableStart) || strings.Contains(text, r.delims.BlockStart)
}

// rewriteBlocks turns every statement tag into an expression tag.
// Only a BlockEnd closing an open BlockStart is a marker, other occurrences are text.
func rewriteBlocks(text string, d Delims) string {
	var b strings.Builder
	b.Grow(len(text))

	for {
		start := strings.Index(text, d.BlockStart)
		if start < 0 {
			break
		}
		inner := start + len(d.BlockStart)
		end := strings.Index(text[inner:], d.BlockEnd)
		if end < 0 {
			break
		}
		end += inner

		b.WriteString(text[:start])
		b.WriteString(d.VariableStart)
		b.WriteString(text[inner:end])
		b.WriteString(d.VariableEnd)
		text = text[end+len(d.BlockEnd):]
	}

	b.WriteString(text)
	return b.String()
}

// reserved are the keywords and builtin functions of text/template
var reserved = map[string]bool{
	"if": true, "else": true, "end": true, "range": true, "with": true,
	"define": true, "template": true, "block": true, "break": true, "continue": true,
	"nil": true, "true": true, "false": true,
	"and": true, "or": true, "not": true, "len": true, "index": true, "slice": true,
	"print": true, "printf": true, "println": true, "html": true, "js": true,
	"urlquery": true, "call": true, "eq": true, "ne": true, "lt": true,
	"le": true, "gt": true, "ge": true,
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
