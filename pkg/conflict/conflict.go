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
	"bytes"
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tmplrc/pkg/match"
	"github.com/walteh/tmplrc/pkg/status"
)

// 🎯 Outcome is what the engine must do with one destination entry
type Outcome int

const (
	OutcomeUnknown   Outcome = iota
	OutcomeCreate            // write, nothing is there yet
	OutcomeIdentical         // leave alone, content already matches
	OutcomeSkip              // leave alone
	OutcomeOverwrite         // write over what is there
)

// String returns a human readable outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCreate:
		return "create"
	case OutcomeIdentical:
		return "identical"
	case OutcomeSkip:
		return "skip"
	case OutcomeOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// Writes reports whether the outcome requires writing the entry
func (o Outcome) Writes() bool {
	return o == OutcomeCreate || o == OutcomeOverwrite
}

// 🙋 Confirmer answers yes/no questions
type Confirmer interface {
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
}

// ⚖️ Resolver decides the outcome for entries that may already exist at the destination.
// Every decision is reported, including the conflict that precedes an overwrite or skip.
type Resolver struct {
	SkipIfExists *match.Matcher
	Force        bool
	Skip         bool
	Confirmer    Confirmer
	Reporter     status.Reporter
}

func (r *Resolver) report(ctx context.Context, action status.Action, display string, isDir bool) {
	if r.Reporter == nil {
		return
	}
	r.Reporter.Report(ctx, status.Event{Action: action, Path: display, IsDir: isDir})
}

// 📁 ResolveDir resolves a directory: existing ones are identical, missing ones are created
func (r *Resolver) ResolveDir(ctx context.Context, rel, dst string) (Outcome, error) {
	display := rel + "/"

	info, err := os.Stat(dst)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.report(ctx, status.ActionCreate, display, true)
			return OutcomeCreate, nil
		}
		return OutcomeUnknown, errors.Errorf("checking %s: %w", dst, err)
	}

	if !info.IsDir() {
		return OutcomeUnknown, errors.Errorf("destination %s exists and is not a directory", dst)
	}

	r.report(ctx, status.ActionIdentical, display, true)
	return OutcomeIdentical, nil
}

// 📄 ResolveCopy resolves a file copied verbatim from src
func (r *Resolver) ResolveCopy(ctx context.Context, rel, dst, src string) (Outcome, error) {
	return r.resolveFile(ctx, rel, dst, func() (bool, error) {
		return sameFiles(src, dst)
	})
}

// 📝 ResolveRendered resolves a file whose content was rendered
func (r *Resolver) ResolveRendered(ctx context.Context, rel, dst string, content []byte) (Outcome, error) {
	return r.resolveFile(ctx, rel, dst, func() (bool, error) {
		existing, err := os.ReadFile(dst)
		if err != nil {
			return false, errors.Errorf("reading %s: %w", dst, err)
		}
		return bytes.Equal(existing, content), nil
	})
}

func (r *Resolver) resolveFile(ctx context.Context, rel, dst string, identical func() (bool, error)) (Outcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", rel).Logger()

	info, err := os.Stat(dst)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.report(ctx, status.ActionCreate, rel, false)
			return OutcomeCreate, nil
		}
		return OutcomeUnknown, errors.Errorf("checking %s: %w", dst, err)
	}

	if info.Mode().IsRegular() {
		same, err := identical()
		if err != nil {
			return OutcomeUnknown, err
		}
		if same {
			r.report(ctx, status.ActionIdentical, rel, false)
			return OutcomeIdentical, nil
		}
	}

	if r.SkipIfExists.Match(rel) {
		logger.Debug().Msg("skipping existing file")
		r.report(ctx, status.ActionSkip, rel, false)
		return OutcomeSkip, nil
	}

	r.report(ctx, status.ActionConflict, rel, false)

	overwrite, err := r.decide(ctx, dst)
	if err != nil {
		return OutcomeUnknown, err
	}

	if overwrite {
		r.report(ctx, status.ActionForce, rel, false)
		return OutcomeOverwrite, nil
	}

	r.report(ctx, status.ActionSkip, rel, false)
	return OutcomeSkip, nil
}

func (r *Resolver) decide(ctx context.Context, dst string) (bool, error) {
	switch {
	case r.Force:
		return true, nil
	case r.Skip:
		return false, nil
	case r.Confirmer == nil:
		return true, nil
	}

	ok, err := r.Confirmer.Confirm(ctx, "Overwrite "+dst+"?", true)
	if err != nil {
		return false, errors.Errorf("confirming overwrite of %s: %w", dst, err)
	}
	zerolog.Ctx(ctx).Debug().Str("dst", dst).Bool("overwrite", ok).Msg("conflict answered")
	return ok, nil
}

const compareChunk = 32 * 1024

func sameFiles(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, errors.Errorf("checking %s: %w", a, err)
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, errors.Errorf("checking %s: %w", b, err)
	}
	if ai.Size() != bi.Size() {
		return false, nil
	}

	af, err := os.Open(a)
	if err != nil {
		return false, errors.Errorf("opening %s: %w", a, err)
	}
	defer af.Close()

	bf, err := os.Open(b)
	if err != nil {
		return false, errors.Errorf("opening %s: %w", b, err)
	}
	defer bf.Close()

	abuf := make([]byte, compareChunk)
	bbuf := make([]byte, compareChunk)
	for {
		an, aerr := io.ReadFull(af, abuf)
		bn, berr := io.ReadFull(bf, bbuf)
		if !bytes.Equal(abuf[:an], bbuf[:bn]) {
			return false, nil
		}
		aDone := aerr == io.EOF || aerr == io.ErrUnexpectedEOF
		bDone := berr == io.EOF || berr == io.ErrUnexpectedEOF
		if aDone || bDone {
			return aDone && bDone, nil
		}
		if aerr != nil {
			return false, errors.Errorf("reading %s: %w", a, aerr)
		}
		if berr != nil {
			return false, errors.Errorf("reading %s: %w", b, berr)
		}
	}
}
