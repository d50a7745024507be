/*
 *
 * Copyright 2025 gRPC authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Verification selects which of internal/verify's algorithms, if any,
// a benchmark job runs alongside its transfer.
type Verification string

const (
	VerificationNone     Verification = "none"
	VerificationChecksum Verification = "checksum"
	VerificationSHA256   Verification = "sha256"
)

// Bench holds everything a txring-bench run needs, decoded from the
// layered configuration sources. Field names mirror the CLI flags and
// environment variables that can set them (see Load).
type Bench struct {
	Mode string `mapstructure:"mode"` // "intra", "producer", "consumer"

	Capacity    uint64        `mapstructure:"capacity"`
	Duration    time.Duration `mapstructure:"duration"`
	MinChunk    uint64        `mapstructure:"min_chunk"`
	MaxChunk    uint64        `mapstructure:"max_chunk"`
	RateLimit   int           `mapstructure:"rate_limit"` // limiter rate and burst, 0 = no limiter; txring-bench waits on it once, not per piece
	Verify      Verification  `mapstructure:"verify"`
	SegmentName string        `mapstructure:"segment_name"`
	AffinityCPU int           `mapstructure:"affinity_cpu"` // -1 = no pinning

	LogLevel string `mapstructure:"log_level"`
}

const envPrefix = "TXRING"

func defaults() map[string]any {
	return map[string]any{
		"mode":         "intra",
		"capacity":     1 << 20,
		"duration":     "5s",
		"min_chunk":    1,
		"max_chunk":    4096,
		"rate_limit":   0,
		"verify":       string(VerificationNone),
		"segment_name": "txring-bench",
		"affinity_cpu": -1,
		"log_level":    "info",
	}
}

// Load builds a Bench configuration from, in increasing precedence:
// built-in defaults, an optional YAML file at configPath, an optional
// .env file in the working directory, and environment variables
// prefixed with TXRING_ (e.g. TXRING_CAPACITY=65536).
//
// A missing configPath or .env file is not an error - both are
// optional layers - but a present-and-malformed one is.
func Load(configPath string) (*Bench, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	for key, val := range defaults() {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", configPath, err)
			}
		}
	}

	var cfg Bench
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *Bench) validate() error {
	if c.MinChunk == 0 {
		return fmt.Errorf("config: min_chunk must be at least 1")
	}
	if c.MaxChunk < c.MinChunk {
		return fmt.Errorf("config: max_chunk (%d) must be >= min_chunk (%d)", c.MaxChunk, c.MinChunk)
	}
	switch c.Verify {
	case VerificationNone, VerificationChecksum, VerificationSHA256:
	default:
		return fmt.Errorf("config: unknown verify mode %q", c.Verify)
	}
	switch c.Mode {
	case "intra", "producer", "consumer":
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	return nil
}
