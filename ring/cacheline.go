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

import "sync/atomic"

// CacheLineSize is the hardware cache-line size this package builds
// against. It is a compile-time constant rather than a runtime-detected
// value: the inter-process wire layout in shmregion is bit-exact and
// both peers must agree on it regardless of which core or NUMA node
// they run on. 64 bytes covers the overwhelming majority of x86-64 and
// arm64 deployments; a build targeting hardware with 128-byte lines
// (some POWER and a handful of big.LITTLE arm64 cores) would need to
// change this constant and rebuild both peers.
const CacheLineSize = 64

// indexPair holds the head and tail counters, each pinned to its own
// cache line so that the producer's writes to tail never invalidate
// the cache line the consumer is polling for head, and vice versa.
//
// Field order and padding are part of the wire format: when a Ring is
// built over a shared-memory region (NewSharedRing), indexPair sits at
// byte offset 0 of that region exactly as laid out here -  head at
// offset 0, tail at offset CacheLineSize. Do not reorder fields.
type indexPair struct {
	head atomic.Uint64
	_    [CacheLineSize - 8]byte
	tail atomic.Uint64
	_    [CacheLineSize - 8]byte
}

// indexPairSize is the header size reserved at the front of a shared
// region, i.e. sizeof(indexPair) in the C++ reference. It is exactly
// two cache lines.
const indexPairSize = 2 * CacheLineSize

// HeaderSize is the number of bytes NewSharedRing reserves at the
// front of a region for the head/tail index pair, before the data
// area begins. A mapping facility (such as package shmregion) that
// wants to hand ring.NewSharedRing a region of a specific data
// capacity must allocate HeaderSize+capacity bytes in total.
const HeaderSize = indexPairSize

// Go's sync/atomic operations are sequentially consistent on all
// supported platforms, which is strictly stronger than the
// relaxed/acquire/release orderings the algorithm requires. The
// loadOwn/loadPeer/storeOwn names below document which ordering the
// algorithm actually needs at each call site; they do not change the
// instructions emitted.

// loadOwn reads an index this side owns. The C++ reference uses
// memory_order_relaxed here because no synchronization is needed: only
// this side ever writes its own index.
func loadOwn(v *atomic.Uint64) uint64 { return v.Load() }

// loadPeer reads the other side's index on the slow path, after a
// shortfall. The C++ reference uses memory_order_acquire so that every
// byte the peer stored before its release-store of this index becomes
// visible here.
func loadPeer(v *atomic.Uint64) uint64 { return v.Load() }

// storeOwn publishes this side's index on transaction commit. The C++
// reference uses memory_order_release so that all payload bytes staged
// before this store are visible to the peer once it acquire-loads the
// same index.
func storeOwn(v *atomic.Uint64, val uint64) { v.Store(val) }
