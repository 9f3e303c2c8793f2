package seqalign

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAlignGlobal(t *testing.T) {
	alignment, err := AlignGlobal("GATTACA", "GCATGCT", DefaultDNA())
	require.NoError(t, err)
	assert.Equal(t, 0, alignment.Score)
	assert.Equal(t, "G-ATTACA", alignment.AlignedSeq1)
	assert.Equal(t, "GCA-TGCT", alignment.AlignedSeq2)

	score, err := Score("GATTACA", "GCATGCT", DefaultDNA(), Global)
	require.NoError(t, err)
	assert.Equal(t, alignment.Score, score)
}

func TestAlignLocal(t *testing.T) {
	alignment, err := AlignLocal("PAWHEAE", "HEAGAWGHEE", BLOSUM62())
	require.NoError(t, err)
	assert.Equal(t, 31, alignment.Score)
	assert.Equal(t, "AW-HEAE", alignment.AlignedSeq1)
	assert.Equal(t, "AWGHE-E", alignment.AlignedSeq2)

	score, err := Score("PAWHEAE", "HEAGAWGHEE", BLOSUM62(), Local)
	require.NoError(t, err)
	assert.Equal(t, 31, score)
}

func TestAlignProgressiveAndConsensus(t *testing.T) {
	msa, err := AlignProgressive([]string{"AC", "AG", "AT"}, BLOSUM62())
	require.NoError(t, err)
	assert.Equal(t, []string{"A-C", "AG-", "A-T"}, msa.Rows)

	consensus, err := Consensus([]string{"AC-", "A-G", "AAG"})
	require.NoError(t, err)
	assert.Equal(t, "AAG", consensus)

	_, err = Consensus(nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestScoringConfigBuild(t *testing.T) {
	tests := []struct {
		name      string
		config    ScoringConfig
		a, b      string
		wantScore int
		wantErr   bool
	}{
		{name: "default dna", config: ScoringConfig{}, a: "GATTACA", b: "GCATGCT", wantScore: 0},
		{name: "blosum62", config: ScoringConfig{Model: "BLOSUM62"}, a: "AC", b: "AG", wantScore: 2},
		{name: "gap override", config: ScoringConfig{Gap: intPtr(-2)}, a: "AC", b: "A", wantScore: -1},
		{name: "custom match", config: ScoringConfig{Model: "dna", Match: 2, Mismatch: -3}, a: "ACGT", b: "ACGT", wantScore: 8},
		{name: "parametric", config: ScoringConfig{Model: "parametric", Alphabet: "xy"}, a: "XYX", b: "XYY", wantScore: 1},
		{name: "rna", config: ScoringConfig{Model: "rna"}, a: "AUGC", b: "AUGC", wantScore: 4},
		{name: "parametric needs alphabet", config: ScoringConfig{Model: "parametric"}, wantErr: true},
		{name: "unknown model", config: ScoringConfig{Model: "pam250"}, wantErr: true},
		{name: "positive gap", config: ScoringConfig{Gap: intPtr(1)}, wantErr: true},
		{name: "blosum62 positive gap", config: ScoringConfig{Model: "blosum62", Gap: intPtr(3)}, wantErr: true},
		{name: "blosum62 zero gap", config: ScoringConfig{Model: "protein", Gap: intPtr(0)}, a: "AC", b: "A", wantScore: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.Build()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			alignment, err := AlignGlobal(tt.a, tt.b, model)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, alignment.Score)
		})
	}
}

func TestParseFASTA(t *testing.T) {
	input := `>s1 first seq
acgt
AC

; comment
>s2
MKWV
>empty
>s3
AUGC
`
	sequences, err := ParseFASTA(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sequences, 3)

	assert.Equal(t, "s1", sequences[0].ID)
	assert.Equal(t, "first seq", sequences[0].Description)
	assert.Equal(t, "ACGTAC", sequences[0].Residues)
	assert.Equal(t, DNA, sequences[0].Kind)

	assert.Equal(t, "s2", sequences[1].ID)
	assert.Equal(t, Protein, sequences[1].Kind)

	assert.Equal(t, "s3", sequences[2].ID)
	assert.Equal(t, RNA, sequences[2].Kind)
}

func TestParseFASTAInvalid(t *testing.T) {
	_, err := ParseFASTA(strings.NewReader(">ok\nACGT\n>bad\nAC1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestWriteAlignmentFASTA(t *testing.T) {
	msa := &MultipleAlignment{Rows: []string{"AC-", "A-G"}}

	var buf bytes.Buffer
	require.NoError(t, WriteAlignmentFASTA(&buf, []string{"a"}, msa))
	assert.Equal(t, ">a\nAC-\n>seq2\nA-G\n", buf.String())

	assert.Error(t, WriteAlignmentFASTA(&buf, nil, nil))
}

func TestWriteFASTARoundTrip(t *testing.T) {
	seq, err := NewSequence("acgtac")
	require.NoError(t, err)
	seq.ID = "x"

	var buf bytes.Buffer
	require.NoError(t, WriteFASTA(&buf, []*Sequence{seq}))

	parsed, err := ParseFASTA(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.True(t, seq.Equal(parsed[0]))
}

func TestVersionInfo(t *testing.T) {
	assert.Equal(t, "1.0.0", Version())
	assert.Contains(t, Info(), "SeqAlign v1.0.0")
}

func TestParseAlignedFASTA(t *testing.T) {
	input := ">a\nac-\n>b\nA-G\n>c\nAA\nG\n"
	ids, rows, err := ParseAlignedFASTA(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, []string{"AC-", "A-G", "AAG"}, rows)

	consensus, err := Consensus(rows)
	require.NoError(t, err)
	assert.Equal(t, "AAG", consensus)
}

func TestNewBLOSUM62(t *testing.T) {
	_, err := NewBLOSUM62(WithGapCost(1))
	assert.Error(t, err)

	model, err := NewBLOSUM62(WithGapCost(-3))
	require.NoError(t, err)
	assert.Equal(t, -3, model.GapCost())
}

func TestLengthHistogram(t *testing.T) {
	msa, err := AlignProgressive([]string{"ACGT", "ACG", "AC", "ACGTACGT"}, DefaultDNA())
	require.NoError(t, err)

	hist, err := LengthHistogram(msa, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, hist.MinValue)
	assert.Equal(t, 8, hist.MaxValue)
	assert.Equal(t, 4, sum(hist.Bins))
	assert.Contains(t, hist.String(), "Length Histogram:")

	_, err = LengthHistogram(msa, 0)
	assert.Error(t, err)
}

func TestCells(t *testing.T) {
	assert.Equal(t, 20, Cells(3, 4))
	assert.Equal(t, 45, ProgressiveCells([]int{4, 4, 4}))
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
