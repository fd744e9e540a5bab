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

package remote

import (
	"regexp"
	"strings"
)

var scpLike = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9._-]+:.+`)

var shortcuts = map[string]string{
	"gh:": "https://github.com/",
	"gl:": "https://gitlab.com/",
}

// 🔍 ParseLocator reports whether s points at a git repository and, if so,
// returns the clone url and the optional ref given after `.git@`.
//
//	gh:owner/repo.git@v1.0         -> https://github.com/owner/repo.git  v1.0
//	git+https://host/project       -> https://host/project
//	git@host:project               -> git@host:project
//	./local/dir                    -> not a repository
func ParseLocator(s string) (url string, ref string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false
	}

	forced := false
	if rest, found := strings.CutPrefix(s, "git+"); found && strings.Contains(rest, "://") {
		s = rest
		forced = true
	}

	for prefix, base := range shortcuts {
		if rest, found := strings.CutPrefix(s, prefix); found {
			s = base + strings.TrimLeft(rest, "/")
			forced = true
			break
		}
	}

	url, ref = splitRef(s)

	switch {
	case forced:
	case scpLike.MatchString(url):
	case strings.HasPrefix(url, "git://"), strings.HasPrefix(url, "ssh://"):
	case (strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")) && strings.HasSuffix(url, ".git"):
	default:
		return "", "", false
	}

	return url, ref, true
}

func splitRef(s string) (string, string) {
	idx := strings.LastIndex(s, ".git@")
	if idx < 0 {
		return s, ""
	}
	return s[:idx+len(".git")], s[idx+len(".git@"):]
}

// githubRepo extracts owner and name from a github.com clone url
func githubRepo(url string) (owner, name string, ok bool) {
	var rest string
	switch {
	case strings.HasPrefix(url, "https://github.com/"):
		rest = strings.TrimPrefix(url, "https://github.com/")
	case strings.HasPrefix(url, "git@github.com:"):
		rest = strings.TrimPrefix(url, "git@github.com:")
	case strings.HasPrefix(url, "ssh://git@github.com/"):
		rest = strings.TrimPrefix(url, "ssh://git@github.com/")
	default:
		return "", "", false
	}

	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
