// elCall: a high-throughput toolkit for nanopore read processing.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elcall/blob/master/LICENSE.txt>.

package bgzf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	var line = "read\t4\t*\t0\t0\t*\t*\t0\t0\tACGTACGTTTGACCA\t+++++++++++++++\n"
	input := strings.Repeat(line, 20000)

	var out bytes.Buffer
	w := NewWriter(&out)
	for i := 0; i < len(input); i += 1000 {
		end := i + 1000
		if end > len(input) {
			end = len(input)
		}
		n, err := w.Write([]byte(input[i:end]))
		require.NoError(t, err)
		assert.Equal(t, end-i, n)
	}
	require.NoError(t, w.Close())
	assert.Equal(t, int64(out.Len()), w.CompressedBytes())

	compressed := out.Bytes()
	assert.True(t, bytes.HasSuffix(compressed, eofBlock))

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	result, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, input, string(result))
}

func TestBlockSizeField(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	_, err := w.Write(bytes.Repeat([]byte("ACGT"), 50000))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data := out.Bytes()
	blocks := 0
	for len(data) > 0 {
		require.True(t, len(data) >= headerSize)
		assert.Equal(t, blockHeader[:16], data[:16])
		bsize := int(binary.LittleEndian.Uint16(data[16:18])) + 1
		require.True(t, bsize <= len(data))
		data = data[bsize:]
		blocks++
	}
	// 200000 bytes need four blocks, plus the EOF marker.
	assert.Equal(t, 5, blocks)
}

func TestEmptyWriter(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	require.NoError(t, w.Close())
	assert.Equal(t, eofBlock, out.Bytes())
	require.NoError(t, w.Close())
	_, err := w.Write([]byte("x"))
	assert.Error(t, err)
}

func TestInvalidLevel(t *testing.T) {
	_, err := NewWriterLevel(io.Discard, 42)
	assert.Error(t, err)
}

func TestIsGzip(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	require.NoError(t, w.Close())

	ok, err := IsGzip(bufio.NewReader(bytes.NewReader(out.Bytes())))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsGzip(bufio.NewReader(strings.NewReader("@HD\tVN:1.6\n")))
	require.NoError(t, err)
	assert.False(t, ok)
}
