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

package ring

import (
	"bytes"
	"testing"
)

func TestNewRingCapacityRounding(t *testing.T) {
	testCases := []struct {
		requested uint64
		wantUsable uint64
		wantValid  bool
	}{
		{0, 0, false},
		{1, 0, false},
		{63, 0, false},
		{64, 63, true},
		{65, 127, true},
		{100, 127, true},
		{128, 127, true},
		{1000, 1023, true},
		{1024, 1023, true},
	}

	for _, tc := range testCases {
		r := NewRing(tc.requested)
		if r.IsValid() != tc.wantValid {
			t.Errorf("NewRing(%d).IsValid() = %v, want %v", tc.requested, r.IsValid(), tc.wantValid)
			continue
		}
		if !tc.wantValid {
			continue
		}
		if got := r.UsableCapacity(); got != tc.wantUsable {
			t.Errorf("NewRing(%d).UsableCapacity() = %d, want %d", tc.requested, got, tc.wantUsable)
		}
	}
}

func TestInvalidRingTransactionsAlwaysFail(t *testing.T) {
	r := NewRing(1) // below one cache line -> invalid
	if r.IsValid() {
		t.Fatal("expected invalid ring")
	}

	wtx := r.OpenWrite()
	if wtx.Ok() {
		t.Fatal("write transaction on invalid ring should already be invalidated")
	}
	if wtx.Write([]byte("x")) {
		t.Fatal("write on invalid ring should fail")
	}
	if wtx.Commit() {
		t.Fatal("commit on invalidated transaction should not publish")
	}

	rtx := r.OpenRead()
	if rtx.Ok() {
		t.Fatal("read transaction on invalid ring should already be invalidated")
	}
	buf := make([]byte, 1)
	if rtx.Read(buf) {
		t.Fatal("read on invalid ring should fail")
	}
}

func TestIntraProcessRoundTrip(t *testing.T) {
	r := NewRing(128)
	if !r.IsValid() {
		t.Fatal("expected valid ring")
	}

	input := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	wtx := r.OpenWrite()
	if !wtx.Write(input) {
		t.Fatal("write should succeed")
	}
	if !wtx.Commit() {
		t.Fatal("commit should publish")
	}

	rtx := r.OpenRead()
	out := make([]byte, len(input))
	if !rtx.Read(out) {
		t.Fatal("read should succeed")
	}
	if !bytes.Equal(out, input) {
		t.Fatalf("got %v, want %v", out, input)
	}
	rtx.Commit()

	if r.Occupancy() != 0 {
		t.Fatalf("occupancy after full drain = %d, want 0", r.Occupancy())
	}
}

func TestWrapAround(t *testing.T) {
	r := NewRing(64) // usable 63
	if r.UsableCapacity() != 63 {
		t.Fatalf("usable capacity = %d, want 63", r.UsableCapacity())
	}

	a := bytes.Repeat([]byte{0xAA}, 50)
	wtx := r.OpenWrite()
	if !wtx.Write(a) {
		t.Fatal("first 50-byte write should succeed")
	}
	wtx.Commit()

	rtx := r.OpenRead()
	buf := make([]byte, 50)
	if !rtx.Read(buf) {
		t.Fatal("first 50-byte read should succeed")
	}
	rtx.Commit()

	b := bytes.Repeat([]byte{0xBB}, 50)
	wtx2 := r.OpenWrite()
	if !wtx2.Write(b) {
		t.Fatal("second 50-byte write (straddling wrap) should succeed")
	}
	wtx2.Commit()

	rtx2 := r.OpenRead()
	buf2 := make([]byte, 50)
	if !rtx2.Read(buf2) {
		t.Fatal("second 50-byte read (straddling wrap) should succeed")
	}
	rtx2.Commit()

	if !bytes.Equal(buf2, b) {
		t.Fatalf("wrap-around data corrupted: got %v, want %v", buf2, b)
	}
}

func TestBackpressureAndRetry(t *testing.T) {
	r := NewRing(64) // usable 63

	wtx := r.OpenWrite()
	if !wtx.Write(bytes.Repeat([]byte{1}, 63)) {
		t.Fatal("filling the ring should succeed")
	}
	wtx.Commit()

	// second transaction: one more byte should fail, no tail motion
	before := r.Occupancy()
	wtx2 := r.OpenWrite()
	if wtx2.Write([]byte{2}) {
		t.Fatal("write into a full ring should fail")
	}
	if wtx2.Ok() {
		t.Fatal("failed write should invalidate the transaction")
	}
	wtx2.Commit()
	if r.Occupancy() != before {
		t.Fatalf("occupancy changed after a discarded transaction: %d != %d", r.Occupancy(), before)
	}

	// drain 10 bytes, then retry succeeds
	rtx := r.OpenRead()
	drained := make([]byte, 10)
	if !rtx.Read(drained) {
		t.Fatal("drain should succeed")
	}
	rtx.Commit()

	wtx3 := r.OpenWrite()
	if !wtx3.Write([]byte{2}) {
		t.Fatal("retry after drain should succeed")
	}
	wtx3.Commit()
}

func TestVariadicAtomicity(t *testing.T) {
	r := NewRing(64) // usable 63

	// move head and tail off zero first: write and drain 60 bytes
	wtx := r.OpenWrite()
	if !wtx.Write(bytes.Repeat([]byte{0}, 60)) {
		t.Fatal("setup write should succeed")
	}
	wtx.Commit()
	rtx := r.OpenRead()
	drained := make([]byte, 60)
	rtx.Read(drained)
	rtx.Commit()
	// ring is empty again; refill 52 bytes to leave 11 bytes free, so
	// that exactly 3 bytes remain after the 8-byte first piece
	wtx2 := r.OpenWrite()
	wtx2.Write(bytes.Repeat([]byte{0}, 52))
	wtx2.Commit()

	before := r.Occupancy()

	tx := r.OpenWrite()
	tagOK := WriteValue(tx, uint64(42))
	if !tagOK {
		t.Fatal("first piece (8-byte value) should have room")
	}
	dataOK := tx.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	if dataOK {
		t.Fatal("second piece should fail: only 3 bytes left after the first piece")
	}
	if tx.Ok() {
		t.Fatal("transaction should be invalidated after the failing piece")
	}
	tx.Commit()

	if r.Occupancy() != before {
		t.Fatal("a transaction that fails partway must not publish any of its pieces")
	}
}

func TestInvalidationPublishesNothing(t *testing.T) {
	r := NewRing(128)

	wtx := r.OpenWrite()
	if !wtx.Write(bytes.Repeat([]byte{7}, 8)) {
		t.Fatal("write should succeed")
	}
	wtx.Invalidate()
	if wtx.Commit() {
		t.Fatal("commit after explicit invalidate must not publish")
	}

	if r.Occupancy() != 0 {
		t.Fatal("invalidated transaction must not move the tail")
	}
}

func TestZeroLengthPiecesAreNoOps(t *testing.T) {
	r := NewRing(64)

	wtx := r.OpenWrite()
	if !wtx.Write(nil) {
		t.Fatal("zero-length write should succeed")
	}
	if !wtx.Write([]byte{}) {
		t.Fatal("zero-length write should succeed")
	}
	wtx.Commit()
	if r.Occupancy() != 0 {
		t.Fatal("zero-length writes must not move the tail")
	}

	rtx := r.OpenRead()
	if !rtx.Read(nil) {
		t.Fatal("zero-length read should succeed")
	}
	rtx.Commit()
}

func TestOversizedPieceAlwaysFails(t *testing.T) {
	r := NewRing(64) // usable 63

	wtx := r.OpenWrite()
	if wtx.Write(make([]byte, 64)) {
		t.Fatal("a piece larger than usable capacity must always fail")
	}
	if wtx.Ok() {
		t.Fatal("oversized piece must invalidate the transaction")
	}
}

func TestWriteCharsDropsTrailingUnit(t *testing.T) {
	r := NewRing(64)

	wtx := r.OpenWrite()
	if !wtx.WriteChars([]byte("hi\x00")) {
		t.Fatal("WriteChars should succeed")
	}
	wtx.Commit()

	rtx := r.OpenRead()
	out := make([]byte, 2)
	if !rtx.Read(out) {
		t.Fatal("should be able to read back the 2 non-terminator bytes")
	}
	if string(out) != "hi" {
		t.Fatalf("got %q, want %q", out, "hi")
	}
	rtx.Commit()
	if r.Occupancy() != 0 {
		t.Fatal("trailing unit must not have been written")
	}
}

func TestWriteCharsEmptyOrSingleIsNoOp(t *testing.T) {
	r := NewRing(64)
	wtx := r.OpenWrite()
	if !wtx.WriteChars(nil) {
		t.Fatal("empty char array should succeed trivially")
	}
	if !wtx.WriteChars([]byte{'\x00'}) {
		t.Fatal("single-char array should succeed trivially")
	}
	wtx.Commit()
	if r.Occupancy() != 0 {
		t.Fatal("nothing should have been written")
	}
}

func TestReadTuple(t *testing.T) {
	r := NewRing(64)

	wtx := r.OpenWrite()
	WriteValue(wtx, uint32(7))
	wtx.Write([]byte{0xAA, 0xBB})
	wtx.Commit()

	rtx := r.OpenRead()
	a, b, ok := ReadTuple2[uint32, [2]byte](rtx)
	if !ok {
		t.Fatal("tuple read should succeed")
	}
	if a != 7 || b != [2]byte{0xAA, 0xBB} {
		t.Fatalf("got (%v, %v)", a, b)
	}
	rtx.Commit()
}

func TestReadTupleFailurePartialInvalidatesAll(t *testing.T) {
	r := NewRing(64)

	wtx := r.OpenWrite()
	WriteValue(wtx, uint32(7)) // only 4 bytes staged, nothing else
	wtx.Commit()

	rtx := r.OpenRead()
	a, b, ok := ReadTuple2[uint32, uint64](rtx)
	if ok {
		t.Fatal("tuple read should fail: second field has no data")
	}
	if a != 0 || b != 0 {
		t.Fatal("on failure every field of the tuple must be the zero value")
	}
	if rtx.Ok() {
		t.Fatal("read transaction should be invalidated after the failing field")
	}
}

func TestCommitIsIdempotent(t *testing.T) {
	r := NewRing(64)
	wtx := r.OpenWrite()
	wtx.Write([]byte{1})
	if !wtx.Commit() {
		t.Fatal("first commit should publish")
	}
	if wtx.Commit() {
		t.Fatal("second commit on an already-closed transaction must be a no-op")
	}
	if r.Occupancy() != 1 {
		t.Fatalf("occupancy = %d, want 1", r.Occupancy())
	}
}

func TestOccupancyInvariantRange(t *testing.T) {
	r := NewRing(64) // capacity 64, usable 63
	for i := 0; i < 200; i++ {
		size := uint64(i % 63)
		wtx := r.OpenWrite()
		if size > 0 {
			wtx.Write(make([]byte, size))
		}
		wtx.Commit()

		occ := r.Occupancy()
		if occ > 63 {
			t.Fatalf("occupancy %d exceeds usable capacity 63", occ)
		}

		rtx := r.OpenRead()
		if size > 0 {
			rtx.Read(make([]byte, size))
		}
		rtx.Commit()
	}
}
