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

package match

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// 🎯 Matcher reports whether a relative path matches any of its patterns
type Matcher struct {
	patterns []string
	logger   zerolog.Logger
}

// 🏭 Compile builds a Matcher from an ordered list of glob patterns.
//
// Patterns use doublestar syntax: `*` stops at `/`, `?` matches one rune and
// `[seq]` is a character class. A pattern without a `/` is also tried against
// the last element of the path, so `.svn` matches `a/b/.svn`.
func Compile(patterns []string) *Matcher {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimPrefix(p, "./")
		if p == "" {
			continue
		}
		cleaned = append(cleaned, p)
	}
	return &Matcher{patterns: cleaned, logger: zerolog.Nop()}
}

// 🔊 WithLogger returns a copy of the matcher that logs invalid patterns
func (m *Matcher) WithLogger(logger zerolog.Logger) *Matcher {
	return &Matcher{patterns: m.patterns, logger: logger}
}

// Patterns returns the compiled patterns in order
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// 🔍 Match reports whether rel matches at least one pattern
func (m *Matcher) Match(rel string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}

	rel = Normalize(rel)
	base := path.Base(rel)

	for _, pattern := range m.patterns {
		if m.matchOne(pattern, rel) {
			return true
		}
		if !strings.Contains(pattern, "/") && base != rel && m.matchOne(pattern, base) {
			return true
		}
	}
	return false
}

func (m *Matcher) matchOne(pattern, name string) bool {
	matched, err := doublestar.Match(pattern, name)
	if err != nil {
		m.logger.Debug().Str("pattern", pattern).Str("path", name).Err(err).Msg("error matching pattern")
		return false
	}
	return matched
}

// 🧹 Normalize converts an OS path into the slash separated form patterns are matched against
func Normalize(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = path.Clean("/" + rel)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "."
	}
	return rel
}
