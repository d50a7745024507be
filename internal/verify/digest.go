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

package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Digest accumulates a SHA-256 hash over a stream of byte slices. It
// wraps crypto/sha256 rather than a hand-rolled compression function:
// the reference implementation's bespoke sha256.h exists only because
// C++ has no hash in its standard library, a constraint Go does not
// share.
type Digest struct {
	h hash.Hash
}

// NewDigest returns a Digest ready to accept Update calls.
func NewDigest() *Digest {
	return &Digest{h: sha256.New()}
}

// Update folds buf into the running digest. It never fails: the
// standard library's hash.Hash.Write contract guarantees a nil error
// and a full write for every call.
func (d *Digest) Update(buf []byte) {
	_, _ = d.h.Write(buf)
}

// Write implements io.Writer so a Digest can sit at the end of an
// io.MultiWriter chain alongside a Checksum.
func (d *Digest) Write(buf []byte) (int, error) {
	return d.h.Write(buf)
}

// Sum returns the 32-byte SHA-256 digest of everything written so far.
// Unlike hash.Hash.Sum, it does not accept or return a prefix - callers
// that want one can use d.Sum() directly since Digest never aliases
// shared state.
func (d *Digest) Sum() [32]byte {
	var out [32]byte
	copy(out[:], d.h.Sum(nil))
	return out
}

// String renders the digest as lowercase hex, matching
// qcstudio::sha256::to_string's format.
func (d *Digest) String() string {
	sum := d.Sum()
	return hex.EncodeToString(sum[:])
}
