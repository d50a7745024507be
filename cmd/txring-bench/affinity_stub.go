//go:build !linux

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

package main

import "errors"

// pinToCPU pins nothing outside Linux and always returns an error:
// there is no portable thread affinity API. The caller logs that error,
// and the benchmark runs correctly, just without pinning, on platforms
// where this isn't implemented.
func pinToCPU(cpu int) error {
	return errors.New("txring-bench: CPU pinning is not supported on this platform")
}
