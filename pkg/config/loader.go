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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tmplrc/pkg/status"
)

// 📁 FileNames are the config file names looked up at a template root, in order
var FileNames = []string{
	"tmplrc.yaml",
	"tmplrc.yml",
	"tmplrc.hcl",
	"tmplrc.json",
}

// 📥 Loader reads the template config found in dir.
// It returns (nil, nil) when dir has no config file.
type Loader interface {
	Load(ctx context.Context, dir string) (*Config, error)
}

// 📂 FileLoader looks for one of FileNames in the template root
type FileLoader struct{}

var _ Loader = FileLoader{}

// 🎯 Load loads the first config file found in dir
func (FileLoader) Load(ctx context.Context, dir string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	for _, name := range FileNames {
		path := filepath.Join(dir, name)

		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Errorf("reading config file %s: %w", path, err)
		}

		logger.Debug().Str("path", path).Msg("loading template config")

		p := GetParser(name)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", name)
		}

		cfg, err := p.Parse(ctx, path, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
		cfg.location = path

		return cfg, nil
	}

	logger.Debug().Str("dir", dir).Msg("no template config found")
	return nil, nil
}

// 🛟 LoadDefaults loads the template config and never fails.
// A config that cannot be read is reported (unless quiet) and treated as empty.
func LoadDefaults(ctx context.Context, loader Loader, dir string, reporter status.Reporter, quiet bool) *Config {
	if loader == nil {
		loader = FileLoader{}
	}

	cfg, err := loader.Load(ctx, dir)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("dir", dir).Msg("ignoring invalid template config")
		if !quiet && reporter != nil {
			reporter.ReportError(ctx, "INVALID CONFIG", err)
		}
		return &Config{}
	}

	if cfg == nil {
		return &Config{}
	}

	return cfg
}
