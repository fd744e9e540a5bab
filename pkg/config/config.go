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

package config

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/walteh/tmplrc/pkg/filter"
)

// 🔌 Parser is the interface for template config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, filename is only used in messages
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// knownKeys are the top level keys a config file may set
var knownKeys = map[string]bool{
	"exclude":        true,
	"include":        true,
	"skip_if_exists": true,
	"render":         true,
	"tasks":          true,
}

// logUnknownKeys reports keys the config does not use, they are ignored
func logUnknownKeys(ctx context.Context, filename string, keys []string) {
	var unknown []string
	for _, k := range keys {
		if !knownKeys[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	zerolog.Ctx(ctx).Debug().Str("file", filename).Strs("keys", unknown).Msg("ignoring unknown config keys")
}

// 📚 Config is the optional config file found at the root of a template.
// A nil list means the key was absent; an empty list was given explicitly.
type Config struct {
	Exclude      []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Include      []string `json:"include,omitempty" yaml:"include,omitempty"`
	SkipIfExists []string `json:"skip_if_exists,omitempty" yaml:"skip_if_exists,omitempty"`
	Render       []string `json:"render,omitempty" yaml:"render,omitempty"`
	Tasks        []string `json:"tasks,omitempty" yaml:"tasks,omitempty"`

	location string
}

// Location is the file the config was read from, empty when none was found
func (cfg *Config) Location() string {
	if cfg == nil {
		return ""
	}
	return cfg.location
}

// 🎚️ Settings converts the filter related keys for filter.Resolve
func (cfg *Config) Settings() filter.Settings {
	if cfg == nil {
		return filter.Settings{}
	}
	return filter.Settings{
		Render:       cfg.Render,
		Exclude:      cfg.Exclude,
		Include:      cfg.Include,
		SkipIfExists: cfg.SkipIfExists,
	}
}
