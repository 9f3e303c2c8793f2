package stats

import (
	"errors"
	"testing"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMultipleAlignment(t *testing.T) {
	msa := &alignment.MultipleAlignment{Rows: []string{
		"ACG-TACGT",
		"ACG--ACGT",
		"-CG-TACG-",
		"ACGTTACGT",
	}}

	stats, err := FromMultipleAlignment(msa)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 9, stats.Width)
	assert.Equal(t, 30, stats.TotalResidues)
	assert.Equal(t, 6, stats.MinLength)
	assert.Equal(t, 9, stats.MaxLength)
	assert.InDelta(t, 7.5, stats.MeanLength, 0.0001)
	assert.Equal(t, 7, stats.MedianLength)
	assert.InDelta(t, 6.0/36.0, stats.GapFraction, 0.0001)
	assert.Equal(t, 5, stats.ConservedColumns)
	assert.Equal(t, 0, stats.GapOnlyColumns)
	assert.Contains(t, stats.String(), "conserved columns: 5")
}

func TestFromMultipleAlignmentIdentity(t *testing.T) {
	tests := []struct {
		name          string
		rows          []string
		wantIdentity  float64
		wantConserved int
		wantGapOnly   int
	}{
		{"three rows", []string{"AC-", "A-G", "AAG"}, 4.0 / 9.0, 1, 0},
		{"gap-only column", []string{"A-", "C-"}, 0, 0, 1},
		{"single row", []string{"ACGT"}, 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := FromMultipleAlignment(&alignment.MultipleAlignment{Rows: tt.rows})
			require.NoError(t, err)
			assert.InDelta(t, tt.wantIdentity, stats.MeanIdentity, 0.0001)
			assert.Equal(t, tt.wantConserved, stats.ConservedColumns)
			assert.Equal(t, tt.wantGapOnly, stats.GapOnlyColumns)
		})
	}
}

func TestFromMultipleAlignmentErrors(t *testing.T) {
	_, err := FromMultipleAlignment(nil)
	assert.True(t, errors.Is(err, alignment.ErrEmptyInput))

	_, err = FromMultipleAlignment(&alignment.MultipleAlignment{Rows: []string{"AC", "A"}})
	assert.True(t, errors.Is(err, alignment.ErrRaggedRows))
}

func TestPairIdentityOverAlignedColumns(t *testing.T) {
	id, ok := pairIdentity("AC-T", "A-GT")
	require.True(t, ok)
	assert.InDelta(t, 0.5, id, 0.0001)

	_, ok = pairIdentity("--", "--")
	assert.False(t, ok)
}

func TestLengthHistogram(t *testing.T) {
	msa := &alignment.MultipleAlignment{Rows: []string{
		"ACG-TACGT",
		"ACG--ACGT",
		"-CG-TACG-",
		"ACGTTACGT",
	}}

	hist, err := NewLengthHistogram(msa, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, hist.Bins)
	assert.Equal(t, 6, hist.MinValue)
	assert.Equal(t, 9, hist.MaxValue)
	assert.Equal(t, 2, hist.BinWidth)

	_, err = NewLengthHistogram(msa, 0)
	assert.Error(t, err)
}
