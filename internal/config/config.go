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

// Package config loads the program settings from a YAML file and the
// environment.
package config

import (
	"time"
)

// Config is the root configuration.
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// GatewayConfig holds the workspace service client settings.
type GatewayConfig struct {
	BaseURL      string        `yaml:"base_url"      env:"WORKSYNC_GATEWAY_URL"     env-default:"http://localhost:8000"`
	APIKey       string        `yaml:"api_key"       env:"WORKSYNC_API_KEY"`
	Token        string        `yaml:"token"         env:"WORKSYNC_TOKEN"`
	Timeout      time.Duration `yaml:"timeout"       env:"WORKSYNC_TIMEOUT"         env-default:"15s"`
	RateLimit    float64       `yaml:"rate_limit"    env:"WORKSYNC_RATE_LIMIT"      env-default:"20"`
	RateBurst    int           `yaml:"rate_burst"    env:"WORKSYNC_RATE_BURST"      env-default:"40"`
	MessageLimit int           `yaml:"message_limit" env:"WORKSYNC_MESSAGE_LIMIT"   env-default:"50"`
	Trace        bool          `yaml:"trace"         env:"WORKSYNC_TRACE"           env-default:"false"`
}

// SessionConfig holds the tenant session settings.
type SessionConfig struct {
	Tenant             string `yaml:"tenant"              env:"WORKSYNC_TENANT"`
	DefaultChannel     string `yaml:"default_channel"     env:"WORKSYNC_DEFAULT_CHANNEL"     env-default:"general"`
	PrivateChannel     string `yaml:"private_channel"     env:"WORKSYNC_PRIVATE_CHANNEL"     env-default:"private"`
	SerializeMutations bool   `yaml:"serialize_mutations" env:"WORKSYNC_SERIALIZE_MUTATIONS" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
