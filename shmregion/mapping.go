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

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnsupportedPlatform is returned by Create/Open on platforms this
// package has no POSIX shared-memory backend for.
var ErrUnsupportedPlatform = errors.New("shmregion: unsupported platform")

// Mapping is a shared-memory region sized for exactly one ring.Ring:
// ring.HeaderSize bytes of index pair followed by a power-of-two data
// area. Region is safe to pass directly to ring.NewSharedRing.
type Mapping struct {
	Region []byte
	Name   string

	closer func() error
}

// NewName mints a collision-free segment name for callers that don't
// need a human-chosen one - e.g. a benchmark spawning an ephemeral
// producer/consumer pair in the same test run.
func NewName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// Close unmaps the region and releases the backing resource. It does
// not remove the underlying shared-memory object - the peer that
// attached via Open may still be using it; removal is a separate,
// explicit operation (see Unlink).
func (m *Mapping) Close() error {
	if m.closer == nil {
		return nil
	}
	closer := m.closer
	m.closer = nil
	return closer()
}
