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

package operation

import (
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"gitlab.com/tozd/go/errors"
)

// copyRaw copies src to dst byte for byte, keeping mode and timestamps
func copyRaw(src, dst string) error {
	err := cp.Copy(src, dst, cp.Options{
		PreserveTimes: true,
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Deep
		},
	})
	if err != nil {
		return errors.Errorf("copying %s: %w", src, err)
	}
	return nil
}

// writeRendered writes content to dst with the mode of src
func writeRendered(src, dst, content string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("checking %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Errorf("creating directory for %s: %w", dst, err)
	}

	if err := os.WriteFile(dst, []byte(content), info.Mode().Perm()); err != nil {
		return errors.Errorf("writing %s: %w", dst, err)
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting mode of %s: %w", dst, err)
	}

	return nil
}
