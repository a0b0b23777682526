// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package homedir

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
)

// Get returns the current user's home directory, preferring $HOME.
func Get() (string, error) {
	h := os.Getenv("HOME")
	if h != "" {
		return h, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "unable to determine home directory")
	}
	return usr.HomeDir, nil
}

// Join returns name inside the home directory.
func Join(name string) (string, error) {
	h, err := Get()
	if err != nil {
		return "", err
	}
	return filepath.Join(h, name), nil
}
