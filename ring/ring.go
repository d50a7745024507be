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

// Ring is a single-producer/single-consumer byte ring buffer. A value
// returned by NewRing or NewSharedRing is always non-nil; construction
// never fails loudly - a malformed request instead yields a Ring whose
// IsValid reports false and whose transactions open already
// invalidated. Every method is safe to call on an invalid Ring.
type Ring struct {
	idx      *indexPair
	storage  []byte // the data area only, length == capacity
	capacity uint64 // power of two, or 0 if invalid
	valid    bool
}

// NewRing constructs an intra-process ring that owns its storage. The
// requested capacity is rounded up to the next power of two. Per the
// reference semantics, a request below one cache line is rejected
// outright (not rounded up to the minimum) and yields an invalid ring.
func NewRing(requestedCapacity uint64) *Ring {
	if requestedCapacity < CacheLineSize {
		return &Ring{}
	}
	capacity := roundUpPowerOfTwo(requestedCapacity)
	return &Ring{
		idx:      &indexPair{},
		storage:  alignedBytes(capacity),
		capacity: capacity,
		valid:    true,
	}
}

// NewSharedRing adopts a caller-supplied region for inter-process use.
// The region must be cache-line aligned and zero-initialized (the
// mapping facility that produced it is responsible for the zeroing;
// see package shmregion). NewSharedRing performs no allocation and
// frees nothing - the region's lifetime is entirely the caller's
// concern.
//
// Layout (see spec's shared-memory region table): the first
// indexPairSize bytes hold the head/tail counters; the remainder is
// the ring's data area and its length must be a power of two of at
// least CacheLineSize bytes.
func NewSharedRing(region []byte) *Ring {
	if uint64(len(region)) <= indexPairSize {
		return &Ring{}
	}
	if !isAligned(unsafe.Pointer(&region[0])) {
		return &Ring{}
	}
	storage := region[indexPairSize:]
	capacity := uint64(len(storage))
	if capacity < CacheLineSize || !isPowerOfTwo(capacity) {
		return &Ring{}
	}
	return &Ring{
		idx:      (*indexPair)(unsafe.Pointer(&region[0])),
		storage:  storage,
		capacity: capacity,
		valid:    true,
	}
}

// IsValid reports whether the ring was constructed successfully and
// may be used for transactions.
func (r *Ring) IsValid() bool { return r.valid }

// UsableCapacity returns the number of bytes the ring can hold at any
// one time. It is one less than the internal power-of-two capacity:
// one slot is permanently reserved to disambiguate empty from full.
func (r *Ring) UsableCapacity() uint64 {
	if !r.valid {
		return 0
	}
	return r.capacity - 1
}

// Occupancy returns a snapshot of the number of bytes currently
// readable. It is inherently racy with respect to concurrent producer
// or consumer activity; callers use it for diagnostics, not for
// deciding whether a write or read will succeed.
func (r *Ring) Occupancy() uint64 {
	if !r.valid {
		return 0
	}
	head := r.idx.head.Load()
	tail := r.idx.tail.Load()
	return (tail - head + r.capacity) & (r.capacity - 1)
}

// OpenWrite opens a write transaction against the ring. The returned
// transaction is already invalidated if the ring itself is invalid.
func (r *Ring) OpenWrite() *WriteTx {
	tx := &WriteTx{ring: r, invalidated: !r.valid}
	if r.valid {
		tx.tail = loadOwn(&r.idx.tail)
		tx.cachedHead = loadOwn(&r.idx.head)
	}
	armLeakGuard(tx, &tx.closed, &leakedWriteTxCount)
	return tx
}

// OpenRead opens a read transaction against the ring. The returned
// transaction is already invalidated if the ring itself is invalid.
func (r *Ring) OpenRead() *ReadTx {
	tx := &ReadTx{ring: r, invalidated: !r.valid}
	if r.valid {
		tx.head = loadOwn(&r.idx.head)
		tx.cachedTail = loadOwn(&r.idx.tail)
	}
	armLeakGuard(tx, &tx.closed, &leakedReadTxCount)
	return tx
}
