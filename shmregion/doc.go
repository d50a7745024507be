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

// Package shmregion is the mapping facility package ring's inter-process
// ring deliberately does not implement itself: it creates or attaches
// to a POSIX shared-memory object and hands back a cache-line-aligned,
// zero-initialized byte region of exactly the size ring.NewSharedRing
// expects - ring.HeaderSize header bytes followed by a power-of-two data
// area.
//
// Two processes use it by agreeing on a name out of band: one calls
// Create, the other Open, and each passes the resulting Mapping's
// Region to ring.NewSharedRing. The mapping's lifetime - and therefore
// the lifetime of the memory ring.NewSharedRing borrows - is entirely
// this package's and its caller's concern; ring owns none of it.
package shmregion
