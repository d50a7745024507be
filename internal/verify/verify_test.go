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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksumMatchesManualSum(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0xFF, 0x10}
	var want uint32
	for _, b := range data {
		want += uint32(b)
	}

	var c Checksum
	c.Update(data[:2])
	c.Update(data[2:])

	require.Equal(t, want, c.Sum())
}

func TestChecksumWrapsLikeUint32(t *testing.T) {
	var c Checksum
	full := make([]byte, 1<<20)
	for i := range full {
		full[i] = 0xFF
	}
	c.Update(full)

	var want uint32
	for range full {
		want += 0xFF
	}
	require.Equal(t, want, c.Sum())
}

func TestDigestMatchesStdlibSHA256(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	d := NewDigest()
	d.Update(data[:10])
	d.Update(data[10:])

	want := sha256.Sum256(data)
	got := d.Sum()
	require.Equal(t, want, got)
}

func TestDigestWriteImplementsIOWriter(t *testing.T) {
	d := NewDigest()
	n, err := d.Write([]byte("payload"))
	require.NoError(t, err)
	require.Equal(t, 7, n)
}
