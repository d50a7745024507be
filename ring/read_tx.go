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

// ReadTx is a read transaction opened against a Ring, symmetric to
// WriteTx. It snapshots the consumer-local head and an optimistic
// cached view of the producer's tail at open time. Reads are
// non-destructive until Commit: the consumer never rewinds its local
// head, and the producer never touches head, so an invalidated read
// transaction leaves every byte it staged out still in the ring for
// the next attempt.
type ReadTx struct {
	ring        *Ring
	head        uint64
	cachedTail  uint64
	invalidated bool
	closed      bool
}

// Ok reports whether the transaction is still open, i.e. no piece has
// failed and Invalidate has not been called.
func (tx *ReadTx) Ok() bool { return !tx.invalidated }

// Invalidate marks the transaction as discarded. Commit will then
// publish nothing; the bytes this transaction read remain available
// to read again in a future transaction.
func (tx *ReadTx) Invalidate() { tx.invalidated = true }

// Read copies len(p) bytes out of the ring as one piece, returning
// false - and invalidating the transaction - if that many bytes are
// not available even after resyncing with the producer's tail. A
// zero-length read always succeeds and moves nothing.
func (tx *ReadTx) Read(p []byte) bool {
	if tx.invalidated {
		return false
	}
	n := uint64(len(p))
	if n == 0 {
		return true
	}

	capacity := tx.ring.capacity
	mask := capacity - 1

	available := (tx.cachedTail - tx.head + capacity) & mask
	if n > available {
		tx.cachedTail = loadPeer(&tx.ring.idx.tail)
		available = (tx.cachedTail - tx.head + capacity) & mask
		if n > available {
			tx.invalidated = true
			return false
		}
	}

	pos := tx.head & mask
	if pos+n > capacity {
		firstChunk := capacity - pos
		copy(p[:firstChunk], tx.ring.storage[pos:])
		copy(p[firstChunk:], tx.ring.storage[:n-firstChunk])
	} else {
		copy(p, tx.ring.storage[pos:pos+n])
	}

	tx.head = (tx.head + n) & mask
	return true
}

// ReadAll reads each destination slice in order within this
// transaction, short-circuiting on the first failure - the read-side
// counterpart to WriteAll.
func (tx *ReadTx) ReadAll(dsts ...[]byte) bool {
	for _, d := range dsts {
		if !tx.Read(d) {
			return false
		}
	}
	return true
}

// Commit ends the transaction: if it has not been invalidated, its
// staged head is published with a release store, freeing the space
// for the producer to reuse. If it has been invalidated, Commit
// publishes nothing and the data read during the transaction remains
// available to a future read transaction. Safe, and a no-op, to call
// more than once. Commit reports whether the transaction published.
func (tx *ReadTx) Commit() bool {
	if tx.closed {
		return false
	}
	tx.closed = true
	disarmLeakGuard(tx)
	if tx.invalidated {
		return false
	}
	storeOwn(&tx.ring.idx.head, tx.head)
	return true
}

// ReadValue reads sizeof(T) bytes into *out, overwriting it
// bit-for-bit - the reference's read<T>(item). T must not contain
// pointers, slices, maps, channels, or interfaces.
func ReadValue[T any](tx *ReadTx, out *T) bool {
	size := unsafe.Sizeof(*out)
	if size == 0 {
		return true
	}
	return tx.Read(unsafe.Slice((*byte)(unsafe.Pointer(out)), int(size)))
}

// ReadArray reads len(out) elements' worth of raw bytes into out - the
// reference's write<T,N> counterpart on the read side.
func ReadArray[T any](tx *ReadTx, out []T) bool {
	if len(out) == 0 {
		return true
	}
	size := unsafe.Sizeof(out[0])
	return tx.Read(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), int(size)*len(out)))
}

// ReadTuple2 and ReadTuple3 default-construct a value of each of two or
// three types and read them in order, mirroring the reference's
// read<T1,...,Tk>() -> tuple<T1,...,Tk>. If any field fails to read,
// the transaction is invalidated (by the failing Read/ReadValue call)
// and ReadTuple2/ReadTuple3 return the zero value for every field,
// matching "the tuple is returned empty/default". Go has no variadic
// generics, so the reference's arbitrary-arity tuple read is expressed
// as one function per arity instead of a single variadic entry point;
// only arities two and three are provided.
func ReadTuple2[A, B any](tx *ReadTx) (A, B, bool) {
	var a A
	var b B
	if ReadValue(tx, &a) && ReadValue(tx, &b) {
		return a, b, true
	}
	var za A
	var zb B
	return za, zb, false
}

func ReadTuple3[A, B, C any](tx *ReadTx) (A, B, C, bool) {
	var a A
	var b B
	var c C
	if ReadValue(tx, &a) && ReadValue(tx, &b) && ReadValue(tx, &c) {
		return a, b, c, true
	}
	var za A
	var zb B
	var zc C
	return za, zb, zc, false
}
