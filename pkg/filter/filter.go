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

package filter

import (
	"github.com/walteh/tmplrc/pkg/match"
)

// 📋 Settings holds the four pattern lists that drive a copy.
//
// A nil list means "not set" and falls through to the next source in
// Resolve. An empty, non-nil list is a real value.
type Settings struct {
	Render       []string
	Exclude      []string
	Include      []string
	SkipIfExists []string
}

// 🏠 Defaults returns the built-in settings
func Defaults() Settings {
	return Settings{
		Render: []string{"*.tmpl"},
		Exclude: []string{
			"~*",
			"*.py[co]",
			"__pycache__",
			"__pycache__/*",
			".git",
			".git/*",
			".DS_Store",
			".svn",
			".hg",
		},
		Include:      []string{},
		SkipIfExists: []string{},
	}
}

// 🔀 Resolve picks, per category, the caller value if set, else the template
// config value if set, else the built-in default. Lists are never merged.
func Resolve(caller, fromConfig Settings) Settings {
	def := Defaults()
	return Settings{
		Render:       pick(caller.Render, fromConfig.Render, def.Render),
		Exclude:      pick(caller.Exclude, fromConfig.Exclude, def.Exclude),
		Include:      pick(caller.Include, fromConfig.Include, def.Include),
		SkipIfExists: pick(caller.SkipIfExists, fromConfig.SkipIfExists, def.SkipIfExists),
	}
}

func pick(lists ...[]string) []string {
	for _, l := range lists {
		if l != nil {
			return append([]string{}, l...)
		}
	}
	return []string{}
}

// 🚦 Policy decides whether a relative path takes part in the copy
type Policy struct {
	exclude *match.Matcher
	include *match.Matcher
}

// 🏭 New builds a policy from exclude and include patterns
func New(exclude, include []string) *Policy {
	return &Policy{
		exclude: match.Compile(exclude),
		include: match.Compile(include),
	}
}

// ✅ Included reports whether rel is copied. Include always wins over exclude.
func (p *Policy) Included(rel string) bool {
	return p.include.Match(rel) || !p.exclude.Match(rel)
}
