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
	"testing"

	"github.com/galtza/tx-queue/ring"
	"github.com/stretchr/testify/require"
)

func TestCreateOpenInterProcessHandshake(t *testing.T) {
	name := NewName("txqueue-handshake-test")

	server, err := Create(name, 16384)
	require.NoError(t, err)
	defer server.Close()
	defer Unlink(name)

	client, err := Open(name)
	require.NoError(t, err)
	defer client.Close()

	producer := ring.NewSharedRing(server.Region)
	consumer := ring.NewSharedRing(client.Region)
	require.True(t, producer.IsValid())
	require.True(t, consumer.IsValid())

	var timestamp uint64 = 1234567890123

	wtx := producer.OpenWrite()
	require.True(t, ring.WriteValue(wtx, timestamp))
	wtx.Commit()

	rtx := consumer.OpenRead()
	var got uint64
	require.True(t, ring.ReadValue(rtx, &got))
	rtx.Commit()

	require.Equal(t, timestamp, got)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	name := NewName("txqueue-dup-test")

	m, err := Create(name, 4096)
	require.NoError(t, err)
	defer m.Close()
	defer Unlink(name)

	_, err = Create(name, 4096)
	require.Error(t, err, "creating a segment with a name already in use must fail")
}

func TestOpenMissingNameFails(t *testing.T) {
	_, err := Open(NewName("txqueue-never-created"))
	require.Error(t, err)
}
