//go:build !linux && !darwin

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

package shmregion

// Create is unsupported outside Linux and Darwin: this package backs
// its regions with a POSIX shared-memory object under /dev/shm (or a
// file-backed mmap fallback), neither of which Windows provides in the
// same shape. Use ring.NewRing for intra-process use on other
// platforms.
func Create(name string, capacity uint64) (*Mapping, error) {
	return nil, ErrUnsupportedPlatform
}

// Open is unsupported outside Linux and Darwin. See Create.
func Open(name string) (*Mapping, error) {
	return nil, ErrUnsupportedPlatform
}

// Unlink is unsupported outside Linux and Darwin. See Create.
func Unlink(name string) error {
	return ErrUnsupportedPlatform
}
