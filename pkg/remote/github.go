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
	"net/http"

	"github.com/google/go-github/v60/github"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

// 🐙 GitHubReleases looks up releases through the GitHub API
type GitHubReleases struct {
	client *github.Client
}

var _ ReleaseResolver = (*GitHubReleases)(nil)

// NewGitHubReleases creates a resolver, an empty token means anonymous access
func NewGitHubReleases(token string) *GitHubReleases {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}
	return &GitHubReleases{client: github.NewClient(hc)}
}

// NewGitHubReleasesWithClient wraps an existing client
func NewGitHubReleasesWithClient(client *github.Client) *GitHubReleases {
	return &GitHubReleases{client: client}
}

// 🏷️ LatestTag returns the tag of the latest published release
func (g *GitHubReleases) LatestTag(ctx context.Context, owner, repo string) (string, error) {
	release, _, err := g.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", errors.Errorf("getting latest release: %w", err)
	}

	tag := release.GetTagName()
	if tag == "" {
		return "", errors.Errorf("latest release of %s/%s has no tag", owner, repo)
	}
	return tag, nil
}
