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

package barcode

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArrangement = `
[arrangement]
name = "TEST-KIT"
mask1_front = "ACGTACGTAAGG"
mask1_rear = "TTCCGGAATTCC"
barcode1_pattern = "BC%02i"
first_index = 1
last_index = 1
`

func TestInfixDistance(t *testing.T) {
	assert.Equal(t, 0, infixDistance([]byte("ACG"), []byte("TTACGTT")))
	assert.Equal(t, 1, infixDistance([]byte("ACG"), []byte("TTAGTT")))
	assert.Equal(t, 1, infixDistance([]byte("ACGT"), []byte("GGACTTGG")))
	assert.Equal(t, 4, infixDistance([]byte("ACGT"), nil))
	assert.Equal(t, 0, infixDistance(nil, []byte("ACGT")))
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "ACGTN", string(ReverseComplement([]byte("NACGT"))))
	assert.Equal(t, "NNa", string(ReverseComplement([]byte("tXY"))))
}

func TestBuiltinKits(t *testing.T) {
	names := KitNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "SQK-RBK004")
	assert.Contains(t, names, "EXP-NBD196")
	for _, name := range names {
		kit, ok := Default().Kit(name)
		require.True(t, ok)
		assert.NotEmpty(t, kit.Barcodes, name)
		for _, bc := range kit.Barcodes {
			seq, ok := Default().Sequence(bc)
			assert.True(t, ok, "%v of %v", bc, name)
			assert.NotEmpty(t, seq)
		}
	}
}

func TestClassifyFront(t *testing.T) {
	c, err := NewClassifier(Default(), []string{"SQK-RBK004"}, DefaultScoring())
	require.NoError(t, err)
	assert.Equal(t, 12, c.NumAdapters())

	bc05, _ := Default().Sequence("BC05")
	read := strings.Repeat("A", 100) + bc05 + strings.Repeat("A", 100)
	result := c.Barcode(read)
	assert.Equal(t, ScoreResult{Score: 0, Name: "BC05", Kit: "SQK-RBK004"}, result)
	assert.True(t, result.IsClassified())

	// two substitutions are still within the bare barcode limit
	mutated := []byte(bc05)
	mutated[3], mutated[17] = 'A', 'A'
	result = c.Barcode(strings.Repeat("A", 100) + string(mutated))
	assert.Equal(t, "BC05", result.Name)
	assert.Equal(t, 2, result.Score)
}

func TestClassifyRear(t *testing.T) {
	c, err := NewClassifier(Default(), []string{"SQK-RBK004"}, DefaultScoring())
	require.NoError(t, err)
	bc07, _ := Default().Sequence("BC07")
	read := strings.Repeat("A", 100) + string(ReverseComplement([]byte(bc07))) + strings.Repeat("A", 30)
	assert.Equal(t, "BC07", c.Barcode(read).Name)
}

func TestClassifyUnclassified(t *testing.T) {
	c, err := NewClassifier(Default(), []string{"SQK-RBK004"}, DefaultScoring())
	require.NoError(t, err)
	assert.Equal(t, UnclassifiedResult, c.Barcode(strings.Repeat("A", 300)))
	assert.Equal(t, UnclassifiedResult, c.Barcode(""))
	assert.False(t, c.Barcode("").IsClassified())

	// two barcodes with the same score are ambiguous
	bc01, _ := Default().Sequence("BC01")
	bc02, _ := Default().Sequence("BC02")
	assert.Equal(t, UnclassifiedResult, c.Barcode(strings.Repeat("A", 50)+bc01+strings.Repeat("A", 20)+bc02))
}

func TestClassifyWithFlanks(t *testing.T) {
	a, err := ParseArrangement([]byte(testArrangement))
	require.NoError(t, err)
	registry, err := Default().With(a)
	require.NoError(t, err)

	// BC01 is in both kits, so only the flanks can tell them apart
	c, err := NewClassifier(registry, []string{"SQK-RBK004", "TEST-KIT"}, a.Scoring)
	require.NoError(t, err)
	bc01, _ := registry.Sequence("BC01")
	read := strings.Repeat("A", 40) + a.Mask1Front + bc01 + a.Mask1Rear + strings.Repeat("A", 40)
	assert.Equal(t, ScoreResult{Score: 0, Name: "BC01", Kit: "TEST-KIT"}, c.Barcode(read))
}

func TestClassifyManyAdapters(t *testing.T) {
	c, err := NewClassifier(Default(), []string{"SQK-RBK110-96"}, DefaultScoring())
	require.NoError(t, err)
	require.Greater(t, c.NumAdapters(), parallelThreshold)
	for _, name := range []string{"BC01", "BC48", "BC77", "BC96"} {
		seq, _ := Default().Sequence(name)
		result := c.Barcode(strings.Repeat("A", 60) + seq + strings.Repeat("A", 60))
		assert.Equal(t, ScoreResult{Score: 0, Name: name, Kit: "SQK-RBK110-96"}, result)
	}
}

func TestUnknownKit(t *testing.T) {
	_, err := NewClassifier(Default(), []string{"SQK-RBK004", "NO-SUCH-KIT"}, DefaultScoring())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO-SUCH-KIT")
}

func TestAllKitsByDefault(t *testing.T) {
	c, err := NewClassifier(Default(), nil, DefaultScoring())
	require.NoError(t, err)
	total := 0
	for _, name := range KitNames() {
		kit, _ := Default().Kit(name)
		total += len(kit.Barcodes)
	}
	assert.Equal(t, total, c.NumAdapters())
}

func TestParseArrangement(t *testing.T) {
	a, err := ParseArrangement([]byte(testArrangement + `
[sequences]
BC01 = "aagaaagttgtcggtgtctttgtg"

[scoring]
max_flank_dist = 12
`))
	require.NoError(t, err)
	assert.Equal(t, "TEST-KIT", a.Name)
	assert.Equal(t, []string{"BC01"}, a.BarcodeNames())
	assert.Equal(t, "AAGAAAGTTGTCGGTGTCTTTGTG", a.Sequences["BC01"])
	assert.Equal(t, Scoring{MaxBarcodeDist: DefaultMaxBarcodeDist, MaxFlankDist: 12}, a.Scoring)

	kit, _, err := a.KitInfo()
	require.NoError(t, err)
	assert.False(t, kit.DoubleEnds)
	assert.Equal(t, "ACGTACGTAAGG", kit.TopFrontFlank)
}

func TestParseArrangementErrors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":     "[arrangement\n",
		"no name":    "[arrangement]\nbarcode1_pattern = \"BC%02i\"\n",
		"no pattern": "[arrangement]\nname = \"X\"\n",
		"range":      "[arrangement]\nname = \"X\"\nbarcode1_pattern = \"BC%02i\"\nfirst_index = 5\nlast_index = 2\n",
		"mask2":      "[arrangement]\nname = \"X\"\nbarcode1_pattern = \"BC%02i\"\nmask2_front = \"AC\"\n",
		"sequence":   testArrangement + "[sequences]\nBC01 = \"ACGU\"\n",
	} {
		_, err := ParseArrangement([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestExpandPattern(t *testing.T) {
	assert.Equal(t, "BC03", expandPattern("BC%02i", 3))
	assert.Equal(t, "barcode12", expandPattern("barcode%i", 12))
	assert.Equal(t, "NB7", expandPattern("NB%d", 7))
}

func TestRegistryWith(t *testing.T) {
	a, err := ParseArrangement([]byte(`
[arrangement]
name = "CUSTOM"
mask1_front = "AC"
mask1_rear = "GT"
mask2_front = "TT"
mask2_rear = "GG"
barcode1_pattern = "CB%i"
first_index = 1
last_index = 2

[sequences]
CB1 = "ACACACACACAC"
CB2 = "GTGTGTGTGTGT"
`))
	require.NoError(t, err)
	registry, err := Default().With(a)
	require.NoError(t, err)

	kit, ok := registry.Kit("CUSTOM")
	require.True(t, ok)
	assert.True(t, kit.DoubleEnds)
	assert.Equal(t, []string{"CB1", "CB2"}, kit.Barcodes)
	_, ok = Default().Kit("CUSTOM")
	assert.False(t, ok, "the default registry is never modified")
	_, ok = Default().Sequence("CB1")
	assert.False(t, ok)
	assert.Len(t, registry.KitNames(), len(KitNames())+1)

	a.LastIndex = 3
	_, err = Default().With(a)
	assert.Error(t, err, "CB3 has no sequence")

	a.LastIndex = 2
	a.Sequences["BC01"] = "ACGT"
	_, err = Default().With(a)
	assert.Error(t, err, "BC01 conflicts with the built-in sequence")
}

func TestLoadArrangement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kit.toml")
	require.NoError(t, os.WriteFile(path, []byte(testArrangement), 0o644))
	a, err := LoadArrangement(path)
	require.NoError(t, err)
	assert.Equal(t, "TEST-KIT", a.Name)

	_, err = LoadArrangement(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
