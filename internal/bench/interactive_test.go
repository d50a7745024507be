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
	"testing"
	"time"

	"github.com/galtza/tx-queue/ring"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInteractiveTransmitterAndReceiver(t *testing.T) {
	q := ring.NewRing(1 << 12)
	require.True(t, q.IsValid())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	trigger := make(chan struct{}, 1)
	received := make(chan Sample, 4)
	log := zerolog.Nop()

	tx := &InteractiveTransmitter{Queue: q, Trigger: trigger, Log: log}
	rx := &InteractiveReceiver{Queue: q, Received: received, Log: log}

	go tx.Run(ctx)
	go rx.Run(ctx)

	trigger <- struct{}{}

	select {
	case sample := <-received:
		require.NotZero(t, sample.Timestamp)
	case <-ctx.Done():
		t.Fatal("timed out waiting for interactive sample")
	}
}
