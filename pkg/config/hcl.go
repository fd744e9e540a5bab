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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the config from HCL.
//
// Expressions can use `env.NAME` and a few list/string functions:
//
//	exclude = concat(["*.bak"], [lower("README.md")])
func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var body hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &body)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if body.Remain != nil {
		attrs, _ := body.Remain.JustAttributes()
		keys := make([]string, 0, len(attrs))
		for name := range attrs {
			keys = append(keys, name)
		}
		logUnknownKeys(ctx, filename, keys)
	}

	return &Config{
		Exclude:      body.Exclude,
		Include:      body.Include,
		SkipIfExists: body.SkipIfExists,
		Render:       body.Render,
		Tasks:        body.Tasks,
	}, nil
}

// hclConfig mirrors Config and collects everything else in Remain
type hclConfig struct {
	Exclude      []string `hcl:"exclude,optional"`
	Include      []string `hcl:"include,optional"`
	SkipIfExists []string `hcl:"skip_if_exists,optional"`
	Render       []string `hcl:"render,optional"`
	Tasks        []string `hcl:"tasks,optional"`
	Remain       hcl.Body `hcl:",remain"`
}

func evalContext() *hcl.EvalContext {
	env := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}

	envVal := cty.EmptyObjectVal
	if len(env) > 0 {
		envVal = cty.ObjectVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envVal,
		},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"format": stdlib.FormatFunc,
		},
	}
}
