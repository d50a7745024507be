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

package bench

import (
	"context"
	"math/rand"
	"time"

	"github.com/galtza/tx-queue/internal/config"
	"github.com/galtza/tx-queue/internal/verify"
	"github.com/galtza/tx-queue/ring"
)

// Result reports the outcome of a completed job, mirroring
// utest_job's get_total_data/get_total_duration_ns/get_transaction_attempts
// trio plus an optional verification digest.
type Result struct {
	TotalBytes          uint64
	TotalDuration       time.Duration
	TransactionAttempts uint64
	Hash                string
}

type hasher struct {
	mode     config.Verification
	checksum verify.Checksum
	digest   *verify.Digest
}

func newHasher(mode config.Verification) *hasher {
	h := &hasher{mode: mode}
	if mode == config.VerificationSHA256 {
		h.digest = verify.NewDigest()
	}
	return h
}

func (h *hasher) update(p []byte) {
	switch h.mode {
	case config.VerificationChecksum:
		h.checksum.Update(p)
	case config.VerificationSHA256:
		h.digest.Update(p)
	}
}

func (h *hasher) String() string {
	switch h.mode {
	case config.VerificationChecksum:
		return h.checksum.String()
	case config.VerificationSHA256:
		return h.digest.String()
	default:
		return ""
	}
}

// TransmitJob sends src over the ring in randomly sized chunks between
// minChunk and maxChunk, then sends a trailing zero-length size to
// mark end of stream - the Go counterpart of
// utest_job_transmit_buffer::run. A failed write is backpressure, not
// an error: the job retries from the same offset, drawing a fresh
// chunk size each time, until the consumer makes room, or until ctx
// is done.
type TransmitJob struct {
	Queue    *ring.Ring
	Src      []byte
	MinChunk uint64
	MaxChunk uint64
	Verify   config.Verification
}

// Run blocks until every byte of Src has been transmitted and the
// trailing zero-length marker has been committed, or until ctx is
// canceled. It does not wait for the receiver to read the marker.
func (j *TransmitJob) Run(ctx context.Context) (Result, error) {
	if j.MinChunk == 0 {
		j.MinChunk = 1
	}
	if j.MaxChunk < j.MinChunk {
		j.MaxChunk = j.MinChunk
	}

	h := newHasher(j.Verify)
	var res Result

	start := time.Now()
	var sent uint64
	for sent < uint64(len(j.Src)) {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		remaining := uint64(len(j.Src)) - sent
		chunk := j.MinChunk
		if span := j.MaxChunk - j.MinChunk; span > 0 {
			chunk += uint64(rand.Int63n(int64(span) + 1))
		}
		if chunk > remaining {
			chunk = remaining
		}

		wtx := j.Queue.OpenWrite()
		piece := j.Src[sent : sent+chunk]
		ok := ring.WriteValue(wtx, chunk) && wtx.Write(piece)
		if !wtx.Commit() || !ok {
			res.TransactionAttempts++
			continue
		}

		h.update(piece)
		sent += chunk
	}
	res.TotalDuration = time.Since(start)
	res.TotalBytes = sent

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		wtx := j.Queue.OpenWrite()
		ok := ring.WriteValue(wtx, uint64(0))
		if wtx.Commit() && ok {
			break
		}
		res.TransactionAttempts++
	}

	res.Hash = h.String()
	return res, nil
}

// ReceiveJob receives a buffer sent by a TransmitJob: it loops reading
// a chunk-size prefix followed by that many bytes, stopping when it
// reads a zero-length marker - utest_job_receive_buffer::run's Go
// counterpart.
type ReceiveJob struct {
	Queue    *ring.Ring
	MaxChunk uint64
	Verify   config.Verification
}

// Run blocks until it observes the trailing zero-length marker a
// TransmitJob sends at the end of its stream, or until ctx is
// canceled.
func (j *ReceiveJob) Run(ctx context.Context) (Result, error) {
	h := newHasher(j.Verify)
	buf := make([]byte, j.MaxChunk)

	var res Result
	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rtx := j.Queue.OpenRead()
		var chunk uint64
		ok := ring.ReadValue(rtx, &chunk)
		if ok && chunk > 0 {
			if uint64(len(buf)) < chunk {
				buf = make([]byte, chunk)
			}
			ok = rtx.Read(buf[:chunk])
		}
		if !rtx.Commit() || !ok {
			res.TransactionAttempts++
			continue
		}

		if chunk == 0 {
			break
		}

		h.update(buf[:chunk])
		res.TotalBytes += chunk
	}
	res.TotalDuration = time.Since(start)
	res.Hash = h.String()
	return res, nil
}
