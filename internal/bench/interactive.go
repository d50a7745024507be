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

	"github.com/galtza/tx-queue/ring"
	"github.com/rs/zerolog"
)

// Sample is the payload the interactive jobs exchange: a random
// 16-bit number and the producer's send timestamp, in nanoseconds
// since the Unix epoch. It mirrors the reference's
// tx.write(number, timestamp) / tx.read<uint16_t, int64_t>() pair.
type Sample struct {
	Number    uint16
	Timestamp int64
}

// InteractiveTransmitter sends one Sample every time a value arrives
// on Trigger, the Go counterpart of utest_job_interactive_transmitter
// - which instead waited on a keypress. Run retries a send that fails
// with backpressure until it succeeds or ctx is canceled, then waits
// for the next trigger.
type InteractiveTransmitter struct {
	Queue   *ring.Ring
	Trigger <-chan struct{}
	Log     zerolog.Logger
}

// Run blocks, sending one Sample per Trigger signal, until ctx is
// canceled.
func (j *InteractiveTransmitter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-j.Trigger:
		}

		sample := Sample{
			Number:    uint16(rand.Intn(1 << 16)),
			Timestamp: time.Now().UnixNano(),
		}

		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			wtx := j.Queue.OpenWrite()
			ok := ring.WriteValue(wtx, sample.Number) && ring.WriteValue(wtx, sample.Timestamp)
			if wtx.Commit() && ok {
				break
			}
		}

		j.Log.Info().
			Uint16("number", sample.Number).
			Int64("timestamp_ns", sample.Timestamp).
			Msg("sent sample")
	}
}

// InteractiveReceiver polls the ring for Samples and reports each one
// on Received, the Go counterpart of utest_job_interactive_receiver.
// Unlike the reference, which spins in a tight polling loop printing
// to stdout, Run yields to ctx cancellation between attempts so a
// caller can stop it without killing the process.
type InteractiveReceiver struct {
	Queue    *ring.Ring
	Received chan<- Sample
	Log      zerolog.Logger
}

// Run blocks, forwarding every Sample it reads to Received, until ctx
// is canceled.
func (j *InteractiveReceiver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rtx := j.Queue.OpenRead()
		number, timestamp, ok := ring.ReadTuple2[uint16, int64](rtx)
		if !rtx.Commit() || !ok {
			continue
		}

		sample := Sample{Number: number, Timestamp: timestamp}
		now := time.Now().UnixNano()
		j.Log.Info().
			Uint16("number", sample.Number).
			Int64("timestamp_ns", sample.Timestamp).
			Int64("latency_ns", now-sample.Timestamp).
			Msg("received sample")

		select {
		case j.Received <- sample:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
