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

// roundUpPowerOfTwo rounds n up to the next power of two using the
// same bit-smear as the C++ reference (tx_queue_sp_t's constructor):
// decrement, OR in every halved shift, increment. It is exact for
// n that is already a power of two, including CacheLineSize itself.
func roundUpPowerOfTwo(n uint64) uint64 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}
