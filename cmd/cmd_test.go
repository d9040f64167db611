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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/elcall/barcode"
	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/sam"
)

func TestLoadReadList(t *testing.T) {
	ids, err := loadReadList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("r1\n\n  r2 extra\nr3\t9\n"), 0o644))
	ids, err = loadReadList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids)

	_, err = loadReadList(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestOutputModeFor(t *testing.T) {
	for _, tc := range []struct {
		typeName, filename string
		mode               sam.OutputMode
	}{
		{"", "out.sam", sam.SAM},
		{"", "out.SAM.GZ", sam.SAMGZ},
		{"", "out.fastq", sam.FASTQ},
		{"", "out.fq.gz", sam.FASTQGZ},
		{"", "-", sam.SAM},
		{"fastq", "out.sam", sam.FASTQ},
	} {
		mode, err := outputModeFor(tc.typeName, tc.filename)
		require.NoError(t, err, tc.filename)
		assert.Equal(t, tc.mode, mode, tc.filename)
	}
	_, err := outputModeFor("bam", "out.bam")
	assert.Error(t, err)
}

func TestListKits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listKits(&buf, barcode.Default()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(barcode.KitNames())+1)
	assert.True(t, strings.HasPrefix(lines[0], "KIT"))
	assert.Contains(t, buf.String(), "SQK-RBK004")
}

func TestClassifierOptions(t *testing.T) {
	var none classifierOptions
	assert.False(t, none.enabled())

	opts := classifierOptions{kitNames: "SQK-RBK004, ,SQK-RPB004"}
	assert.True(t, opts.enabled())
	node, err := opts.newClassifierNode(1, 4)
	require.NoError(t, err)
	node.Terminate(pipeline.DefaultFlushOptions)

	unknown := classifierOptions{kitNames: "NOT-A-KIT"}
	_, err = unknown.newClassifierNode(1, 4)
	assert.Error(t, err)
}

func TestProgramRecord(t *testing.T) {
	pg := programRecord("demux")
	assert.Equal(t, "demux", pg["ID"])
	assert.Equal(t, "elcall", pg["PN"])
	assert.NotEmpty(t, pg["VN"])
}

func TestHelpMessagesEndWithOneNewline(t *testing.T) {
	for _, help := range []string{HelpMessage, DemuxHelp, ConvertHelp, KitsHelp} {
		assert.True(t, strings.HasSuffix(help, "\n"), help)
		assert.False(t, strings.HasSuffix(help, "\n\n"), help)
	}
}
