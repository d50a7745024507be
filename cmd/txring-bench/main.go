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

// Command txring-bench runs a producer/consumer pair over a
// ring.Ring, either as two goroutines sharing one intra-process ring
// or as two separate processes rendezvousing over a named shmregion
// segment, and reports throughput once the transfer completes.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/galtza/tx-queue/internal/bench"
	"github.com/galtza/tx-queue/internal/config"
	"github.com/galtza/tx-queue/ring"
	"github.com/galtza/tx-queue/shmregion"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	mode := flag.String("mode", "", "intra, producer, or consumer (overrides config)")
	segmentName := flag.String("segment", "", "shmregion segment name for producer/consumer mode (overrides config)")
	affinityCPU := flag.Int("affinity", -2, "CPU to pin this process to; -1 disables, -2 keeps the config value")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *segmentName != "" {
		cfg.SegmentName = *segmentName
	}
	if *affinityCPU != -2 {
		cfg.AffinityCPU = *affinityCPU
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if cfg.AffinityCPU >= 0 {
		runtime.LockOSThread()
		if err := pinToCPU(cfg.AffinityCPU); err != nil {
			log.Warn().Err(err).Int("cpu", cfg.AffinityCPU).Msg("failed to pin to CPU")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	switch cfg.Mode {
	case "intra":
		runIntra(ctx, log, cfg)
	case "producer":
		runInterProcess(ctx, log, cfg, true)
	case "consumer":
		runInterProcess(ctx, log, cfg, false)
	default:
		log.Fatal().Str("mode", cfg.Mode).Msg("unknown mode")
	}
}

func runIntra(ctx context.Context, log zerolog.Logger, cfg *config.Bench) {
	q := ring.NewRing(cfg.Capacity)
	if !q.IsValid() {
		log.Fatal().Uint64("capacity", cfg.Capacity).Msg("requested capacity yields an invalid ring")
		return
	}
	log.Info().Uint64("usable_capacity", q.UsableCapacity()).Msg("ring ready")

	src := make([]byte, 16<<20)
	rand.New(rand.NewSource(time.Now().UnixNano())).Read(src)

	limiter := rateLimiter(cfg.RateLimit)

	txDone := make(chan bench.Result, 1)
	rxDone := make(chan bench.Result, 1)

	go func() {
		tx := &bench.TransmitJob{Queue: q, Src: src, MinChunk: cfg.MinChunk, MaxChunk: cfg.MaxChunk, Verify: cfg.Verify}
		res, err := runRateLimited(ctx, limiter, tx.Run)
		if err != nil {
			log.Warn().Err(err).Msg("transmit job ended early")
		}
		txDone <- res
	}()
	go func() {
		rx := &bench.ReceiveJob{Queue: q, MaxChunk: cfg.MaxChunk, Verify: cfg.Verify}
		res, err := rx.Run(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("receive job ended early")
		}
		rxDone <- res
	}()

	tx := <-txDone
	rx := <-rxDone
	report(log, "producer", tx)
	report(log, "consumer", rx)

	if cfg.Verify != config.VerificationNone && tx.Hash != rx.Hash {
		log.Error().Str("producer_hash", tx.Hash).Str("consumer_hash", rx.Hash).Msg("hash mismatch")
	}
}

func runInterProcess(ctx context.Context, log zerolog.Logger, cfg *config.Bench, isProducer bool) {
	var mapping *shmregion.Mapping
	var err error
	if isProducer {
		mapping, err = shmregion.Create(cfg.SegmentName, cfg.Capacity)
	} else {
		mapping, err = shmregion.Open(cfg.SegmentName)
	}
	if err != nil {
		log.Fatal().Err(err).Str("segment", cfg.SegmentName).Msg("failed to attach shared-memory segment")
		return
	}
	defer mapping.Close()

	q := ring.NewSharedRing(mapping.Region)
	if !q.IsValid() {
		log.Fatal().Msg("shared region did not yield a valid ring")
		return
	}

	if isProducer {
		src := make([]byte, 16<<20)
		rand.New(rand.NewSource(time.Now().UnixNano())).Read(src)
		limiter := rateLimiter(cfg.RateLimit)
		tx := &bench.TransmitJob{Queue: q, Src: src, MinChunk: cfg.MinChunk, MaxChunk: cfg.MaxChunk, Verify: cfg.Verify}
		res, err := runRateLimited(ctx, limiter, tx.Run)
		if err != nil {
			log.Warn().Err(err).Msg("transmit job ended early")
		}
		report(log, "producer", res)
		return
	}

	rx := &bench.ReceiveJob{Queue: q, MaxChunk: cfg.MaxChunk, Verify: cfg.Verify}
	res, err := rx.Run(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("receive job ended early")
	}
	report(log, "consumer", res)
}

func rateLimiter(piecesPerSecond int) *rate.Limiter {
	if piecesPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(piecesPerSecond), piecesPerSecond)
}

// runRateLimited waits once on limiter (when it is non-nil) and then
// runs the job to completion. rateLimiter creates the limiter with a
// full burst, so that single Wait returns at once; the job's
// individual pieces are not throttled.
func runRateLimited(ctx context.Context, limiter *rate.Limiter, run func(context.Context) (bench.Result, error)) (bench.Result, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return bench.Result{}, err
		}
	}
	return run(ctx)
}

func report(log zerolog.Logger, role string, res bench.Result) {
	seconds := res.TotalDuration.Seconds()
	var mbps float64
	if seconds > 0 {
		mbps = float64(res.TotalBytes) / (1 << 20) / seconds
	}
	event := log.Info().
		Str("role", role).
		Uint64("bytes", res.TotalBytes).
		Dur("duration", res.TotalDuration).
		Uint64("retries", res.TransactionAttempts).
		Float64("throughput_mib_s", mbps)
	if res.Hash != "" {
		event = event.Str("hash", res.Hash)
	}
	event.Msg(fmt.Sprintf("%s finished", role))
}
