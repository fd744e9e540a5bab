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
	"context"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// LatestRef asks the release resolver for the newest release tag
const LatestRef = "latest"

// 📦 Cloner fetches a repository into a fresh temporary directory.
// The caller owns the directory and must remove it.
type Cloner interface {
	Clone(ctx context.Context, url, ref string) (string, error)
}

// 🏷️ ReleaseResolver finds the latest release tag of a hosted repository
type ReleaseResolver interface {
	LatestTag(ctx context.Context, owner, repo string) (string, error)
}

// 🐙 GitCloner clones with go-git
type GitCloner struct {
	// Releases resolves the `latest` ref for github urls, nil disables it
	Releases ReleaseResolver
	// Progress receives clone progress output when set
	Progress io.Writer
}

var _ Cloner = (*GitCloner)(nil)

// NewGitCloner creates a cloner that resolves `latest` through the GitHub API
func NewGitCloner() *GitCloner {
	return &GitCloner{
		Releases: NewGitHubReleases(os.Getenv("GITHUB_TOKEN")),
	}
}

// 📥 Clone clones url and checks out ref (branch, tag, commit or `latest`)
func (c *GitCloner) Clone(ctx context.Context, url, ref string) (string, error) {
	logger := zerolog.Ctx(ctx).With().Str("url", url).Str("ref", ref).Logger()

	ref, err := c.resolveRef(ctx, url, ref)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "tmplrc-*")
	if err != nil {
		return "", errors.Errorf("creating clone directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("cloning template repository")

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Tags:     git.AllTags,
		Progress: c.Progress,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", errors.Errorf("cloning %s: %w", url, err)
	}

	if ref != "" {
		if err := checkout(repo, ref); err != nil {
			_ = os.RemoveAll(dir)
			return "", errors.Errorf("checking out %s: %w", ref, err)
		}
	}

	return dir, nil
}

func (c *GitCloner) resolveRef(ctx context.Context, url, ref string) (string, error) {
	if ref != LatestRef || c.Releases == nil {
		return ref, nil
	}

	owner, name, ok := githubRepo(url)
	if !ok {
		return ref, nil
	}

	tag, err := c.Releases.LatestTag(ctx, owner, name)
	if err != nil {
		return "", errors.Errorf("resolving latest release of %s/%s: %w", owner, name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("tag", tag).Msg("resolved latest release")
	return tag, nil
}

func checkout(repo *git.Repository, ref string) error {
	var hash *plumbing.Hash
	var err error
	for _, rev := range []string{ref, "origin/" + ref} {
		hash, err = repo.ResolveRevision(plumbing.Revision(rev))
		if err == nil {
			break
		}
	}
	if err != nil {
		return errors.Errorf("resolving revision: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return errors.Errorf("opening worktree: %w", err)
	}

	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return errors.Errorf("checkout: %w", err)
	}
	return nil
}
