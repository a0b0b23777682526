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

package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/matta/worksync/internal/homedir"
	"github.com/pkg/errors"
)

// DefaultFile is the config file looked for in the home directory.
const DefaultFile = ".worksync.yaml"

// Load reads the configuration.  Priority: ENV > YAML > defaults.
//
// The YAML file is path when given, else $CONFIG_PATH, else
// ~/.worksync.yaml.  A file named explicitly must exist; the default one
// is optional.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		p, err := homedir.Join(DefaultFile)
		if err == nil {
			path = p
		}
	}

	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	} else if explicit {
		return nil, errors.Wrapf(statErr, "config: file %s", path)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: read env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config: validate")
	}
	return &cfg, nil
}
