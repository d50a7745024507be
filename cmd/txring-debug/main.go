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

// Command txring-debug probes the effective capacity and write/read
// behavior of a ring.Ring at a range of requested sizes - a quick way
// to sanity-check the power-of-two rounding and one-slot reservation
// without writing a test.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/galtza/tx-queue/ring"
)

func main() {
	capacity := flag.Uint64("capacity", 65536, "requested ring capacity in bytes")
	flag.Parse()

	q := ring.NewRing(*capacity)

	fmt.Printf("=== Ring Capacity Analysis ===\n")
	fmt.Printf("Requested capacity:  %d bytes\n", *capacity)
	fmt.Printf("Ring valid:          %v\n", q.IsValid())
	fmt.Printf("Usable capacity:     %d bytes\n", q.UsableCapacity())

	if !q.IsValid() {
		fmt.Println("Ring is invalid for this capacity; nothing further to probe.")
		return
	}

	fmt.Printf("\n=== Single Write Tests ===\n")
	testSizes := []uint64{10, 20, 30, 40, 50, 100, 200, 500, 1000, 5000, 10000, 32768, 65000, 65536}
	for _, size := range testSizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i % 256)
		}

		wtx := q.OpenWrite()
		ok := wtx.Write(data)
		committed := wtx.Commit()
		if !ok || !committed {
			fmt.Printf("Size %d bytes: FAIL\n", size)
			continue
		}
		fmt.Printf("Size %d bytes: OK\n", size)

		rtx := q.OpenRead()
		readData := make([]byte, size)
		rtx.Read(readData)
		rtx.Commit()
	}

	fmt.Printf("\n=== Backpressure Test ===\n")
	const chunkSize = 1000
	var totalWritten uint64
	for i := 0; i < 100; i++ {
		data := make([]byte, chunkSize)
		for j := range data {
			data[j] = byte((i + j) % 256)
		}

		wtx := q.OpenWrite()
		ok := wtx.Write(data)
		committed := wtx.Commit()
		if !ok || !committed {
			fmt.Printf("Backpressure hit after %d bytes written (%d chunks)\n", totalWritten, i)
			os.Exit(0)
		}
		totalWritten += chunkSize
		fmt.Printf("Written %d bytes (%d chunks)\n", totalWritten, i+1)
	}
}
