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

// Package config loads the settings that drive the benchmark
// command-line tools: ring capacity, run duration, chunk-size range,
// verification mode, and the shared-memory segment name for
// inter-process runs. Values are layered defaults -> YAML file -> .env
// file -> environment variables, with each later layer overriding the
// previous one.
package config
