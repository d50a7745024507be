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
	"runtime"
	"sync/atomic"
)

// In languages with deterministic destructors a write or read
// transaction commits or discards itself the moment it goes out of
// scope; Go has no such hook, so WriteTx and ReadTx instead require an
// explicit Commit call (conventionally via defer). Forgetting that
// call is a programmer error: the transaction's staged bytes are
// simply never published, which on the write side silently withholds
// data the caller thought it sent.
//
// armLeakGuard attaches a finalizer that increments a package-level
// counter if the transaction is garbage-collected before Commit ever
// ran. It does not publish anything on the caller's behalf - that
// would run on the GC's schedule, not the producer's or consumer's -
// it only makes the leak observable, standing in for the "runtime
// guard or linter" the reference design calls for.
//
// Commit disarms the guard, so any finalizer that runs belongs to a
// transaction that never committed. The finalizer does not read
// closed: a closure holding a pointer into tx would keep tx reachable,
// and tx would never be collected.
func armLeakGuard(tx any, closed *bool, counter *atomic.Int64) {
	runtime.SetFinalizer(tx, func(any) {
		counter.Add(1)
	})
}

func disarmLeakGuard(tx any) {
	runtime.SetFinalizer(tx, nil)
}

var (
	// leakedWriteTxCount counts write transactions that were
	// garbage-collected without a Commit call ever having run.
	leakedWriteTxCount atomic.Int64
	// leakedReadTxCount counts read transactions that were
	// garbage-collected without a Commit call ever having run.
	leakedReadTxCount atomic.Int64
)

// LeakedWriteTransactions reports how many write transactions have
// been garbage-collected without ever being committed or invalidated
// and closed. A non-zero value indicates a bug at a call site, not in
// this package.
func LeakedWriteTransactions() int64 { return leakedWriteTxCount.Load() }

// LeakedReadTransactions reports how many read transactions have been
// garbage-collected without ever being committed or invalidated and
// closed. A non-zero value indicates a bug at a call site, not in this
// package.
func LeakedReadTransactions() int64 { return leakedReadTxCount.Load() }
