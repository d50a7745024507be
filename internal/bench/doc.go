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

// Package bench drives a ring.Ring to move a payload between two
// goroutines or two processes, the way the benchmark harness around
// the reference implementation does: a transmit job, a receive job,
// and a pair of interactive jobs meant to be driven from a terminal.
// Every job treats a failed transaction as backpressure and retries -
// none of them ever call into anything that blocks, sleeps, or yields
// on the ring's behalf.
package bench
