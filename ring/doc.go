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

// Package ring implements a single-producer/single-consumer, wait-free,
// transactional byte ring buffer.
//
// A Ring is characterized by a power-of-two capacity and a byte storage
// area. Exactly one producer goroutine (or process) may call OpenWrite
// and exactly one consumer goroutine (or process) may call OpenRead;
// behavior under additional producers or consumers is undefined.
//
// Writes and reads are composed of one or more pieces inside a
// transaction (*WriteTx, *ReadTx). A transaction either commits as a
// whole - publishing exactly one step of its owner's index - or is
// discarded as a whole, in which case the peer never observes any of
// the bytes staged during it. There is no partial publication.
//
// Two ring constructors are provided: NewRing allocates and owns its
// own storage for intra-process use; NewSharedRing adopts a
// caller-supplied, zero-initialized, cache-line-aligned memory region
// (for instance one returned by package shmregion) for inter-process
// use, and owns none of it.
//
// The package never blocks, sleeps, or spins: every operation returns
// immediately, and a transaction that cannot make progress reports
// failure through its boolean state rather than waiting. It never
// logs or panics; all outcomes are observable through return values.
package ring
