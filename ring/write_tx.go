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

import "unsafe"

// WriteTx is a write transaction opened against a Ring. It snapshots
// the producer-local view of the world at open time - the ring's
// storage and capacity, its own tail, and an optimistic cached view of
// the consumer's head - so that the hot path touches no memory the
// consumer might also be touching, until a shortfall forces a resync.
//
// Call one or more Write/WriteAll pieces, then Commit exactly once
// (typically via defer). If any piece fails, the transaction becomes
// invalidated and every subsequent piece short-circuits to false; a
// later Commit on an invalidated transaction publishes nothing, so the
// consumer never observes a partially written sequence.
type WriteTx struct {
	ring        *Ring
	tail        uint64
	cachedHead  uint64
	invalidated bool
	closed      bool
}

// Ok reports whether the transaction is still open, i.e. no piece has
// failed and Invalidate has not been called.
func (tx *WriteTx) Ok() bool { return !tx.invalidated }

// Invalidate marks the transaction as discarded. Commit will then
// publish nothing, leaving every byte staged so far invisible to the
// consumer.
func (tx *WriteTx) Invalidate() { tx.invalidated = true }

// Write copies len(p) bytes into the ring as one piece. It returns
// false - and invalidates the transaction - if the ring cannot fit
// len(p) bytes, even after resyncing with the consumer's head. A zero-length
// write always succeeds and moves nothing.
func (tx *WriteTx) Write(p []byte) bool {
	if tx.invalidated {
		return false
	}
	n := uint64(len(p))
	if n == 0 {
		return true
	}

	capacity := tx.ring.capacity
	mask := capacity - 1

	available := (tx.cachedHead - tx.tail - 1 + capacity) & mask
	if n > available {
		tx.cachedHead = loadPeer(&tx.ring.idx.head)
		available = (tx.cachedHead - tx.tail - 1 + capacity) & mask
		if n > available {
			tx.invalidated = true
			return false
		}
	}

	pos := tx.tail & mask
	if pos+n > capacity {
		firstChunk := capacity - pos
		copy(tx.ring.storage[pos:], p[:firstChunk])
		copy(tx.ring.storage[:n-firstChunk], p[firstChunk:])
	} else {
		copy(tx.ring.storage[pos:pos+n], p)
	}

	tx.tail = (tx.tail + n) & mask
	return true
}

// WriteAll writes each piece in order within this transaction,
// short-circuiting on the first failure. It is the convenience
// equivalent of the reference's variadic write(first, rest...): a
// later piece is never staged once an earlier one has failed, and
// none of the pieces become visible to the consumer unless the whole
// sequence succeeds and the transaction is committed.
func (tx *WriteTx) WriteAll(pieces ...[]byte) bool {
	for _, p := range pieces {
		if !tx.Write(p) {
			return false
		}
	}
	return true
}

// Commit ends the transaction: if it has not been invalidated, its
// staged tail is published with a release store, making every byte
// written during the transaction visible to the consumer. If it has
// been invalidated - by a failed piece or an explicit Invalidate -
// Commit publishes nothing. It is safe, and a no-op, to call Commit
// more than once. Commit reports whether the transaction published.
func (tx *WriteTx) Commit() bool {
	if tx.closed {
		return false
	}
	tx.closed = true
	disarmLeakGuard(tx)
	if tx.invalidated {
		return false
	}
	storeOwn(&tx.ring.idx.tail, tx.tail)
	return true
}

// WriteValue writes the raw, bit-for-bit representation of v, a
// fixed-size value, as one piece. v must not contain pointers, slices,
// maps, channels, or interfaces: those are meaningless once copied
// byte-for-byte across a transaction boundary (and, for the
// inter-process ring, across an address space). This mirrors the
// reference's write<T>(item).
func WriteValue[T any](tx *WriteTx, v T) bool {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return true
	}
	return tx.Write(unsafe.Slice((*byte)(unsafe.Pointer(&v)), int(size)))
}

// WriteArray writes the raw representation of a fixed-size array,
// passed as a slice, as one piece - the reference's write<T,N>(array).
// For the general run of element types this copies all len(arr)
// elements; see WriteChars for the character-array overload that drops
// a trailing unit.
func WriteArray[T any](tx *WriteTx, arr []T) bool {
	if len(arr) == 0 {
		return true
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return tx.Write(unsafe.Slice((*byte)(unsafe.Pointer(&arr[0])), int(size)*len(arr)))
}

// WriteChars writes a character array while dropping exactly one
// trailing unit, mirroring the reference's handling of character
// arrays (which drop a trailing '\0'). An array of zero or one
// characters writes nothing and succeeds trivially.
func (tx *WriteTx) WriteChars(chars []byte) bool {
	if len(chars) <= 1 {
		return true
	}
	return tx.Write(chars[:len(chars)-1])
}

// WriteText writes the logical byte content of s, excluding any
// terminator - Go strings carry no terminator to begin with, so this
// is exactly []byte(s). It mirrors the reference's write<T>(string).
func (tx *WriteTx) WriteText(s string) bool {
	return tx.Write([]byte(s))
}
