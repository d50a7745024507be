//go:build linux || darwin

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

package shmregion

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/galtza/tx-queue/ring"
	"golang.org/x/sys/unix"
)

// Create creates a new, zero-initialized POSIX shared-memory region
// sized for a ring.Ring with the given data capacity (rounded up to
// the next power of two; a capacity below one cache line is raised to
// one cache line, where ring.NewRing would instead reject it) and maps
// it into this process. The name must be agreed
// with the peer that will call Open.
func Create(name string, capacity uint64) (*Mapping, error) {
	path := segmentPath(name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shmregion: create %s: %w", path, err)
	}

	totalSize := ring.HeaderSize + roundUpPowerOfTwo(max64(capacity, ring.CacheLineSize))
	if err := file.Truncate(int64(totalSize)); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("shmregion: truncate %s: %w", path, err)
	}

	region, err := mmap(file, totalSize)
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}

	return &Mapping{
		Region: region,
		Name:   name,
		closer: func() error {
			err := unix.Munmap(region)
			if cerr := file.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}, nil
}

// Open attaches to a region previously created by Create, using the
// same name. The caller determines the expected data capacity out of
// band (the two peers agree on ring size before either maps it); Open
// maps exactly the file's current size.
func Open(name string) (*Mapping, error) {
	path := segmentPath(name)

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("shmregion: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shmregion: stat %s: %w", path, err)
	}

	region, err := mmap(file, uint64(info.Size()))
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Mapping{
		Region: region,
		Name:   name,
		closer: func() error {
			err := unix.Munmap(region)
			if cerr := file.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}, nil
}

// Unlink removes the backing shared-memory object by name. Call it
// once, from whichever peer is responsible for teardown, after both
// sides have closed their mapping.
func Unlink(name string) error {
	return os.Remove(segmentPath(name))
}

func mmap(file *os.File, size uint64) ([]byte, error) {
	region, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shmregion: mmap: %w", err)
	}
	return region, nil
}

func segmentPath(name string) string {
	if info, err := os.Stat("/dev/shm"); err == nil && info.IsDir() {
		return filepath.Join("/dev/shm", "txqueue_"+name)
	}
	return filepath.Join(os.TempDir(), "txqueue_"+name)
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// roundUpPowerOfTwo mirrors ring's own rounding so that Create always
// hands NewSharedRing a data area it will accept.
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
