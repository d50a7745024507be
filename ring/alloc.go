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

// alignedBytes returns a byte slice of exactly n bytes whose first byte
// starts at an address aligned to CacheLineSize. It over-allocates by
// up to CacheLineSize-1 bytes and slices the backing array at the
// aligned offset; the slack bytes stay reachable through the returned
// slice's underlying array and are reclaimed together with it.
//
// This stands in for the C++ reference's aligned_alloc/_aligned_malloc:
// Go's allocator does not expose an aligned-allocation primitive, so
// over-allocate-and-slice is the idiomatic substitute.
func alignedBytes(n uint64) []byte {
	buf := make([]byte, n+CacheLineSize-1)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := (base + CacheLineSize - 1) &^ uintptr(CacheLineSize-1)
	offset := aligned - base
	return buf[offset : offset+uintptr(n) : offset+uintptr(n)]
}

func isAligned(p unsafe.Pointer) bool {
	return uintptr(p)&(CacheLineSize-1) == 0
}
