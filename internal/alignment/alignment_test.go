package alignment

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ungap(s string) string {
	return strings.ReplaceAll(s, string(Gap), "")
}

func TestScoringModels(t *testing.T) {
	t.Run("DefaultDNA", func(t *testing.T) {
		m := DefaultDNA()
		assert.Equal(t, 1, m.MatchScore)
		assert.Equal(t, -1, m.MismatchScore)
		assert.Equal(t, -1, m.GapCost())
		assert.Equal(t, "ACGT", m.Alphabet())
	})

	t.Run("Parametric score", func(t *testing.T) {
		m, err := NewParametricModel(2, -3, "ACGU", WithGapCost(-5))
		require.NoError(t, err)

		s, err := m.Score('A', 'A')
		require.NoError(t, err)
		assert.Equal(t, 2, s)

		s, err = m.Score('A', 'U')
		require.NoError(t, err)
		assert.Equal(t, -3, s)
		assert.Equal(t, -5, m.GapCost())
	})

	t.Run("Parametric invalid symbol", func(t *testing.T) {
		m := DefaultDNA()
		_, err := m.Score('A', 'U')
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSymbol))

		_, err = m.Score('-', 'A')
		assert.True(t, errors.Is(err, ErrInvalidSymbol))
	})

	t.Run("Invalid parametric models", func(t *testing.T) {
		_, err := NewParametricModel(1, -1, "")
		require.Error(t, err)

		_, err = NewParametricModel(1, -1, "AC-T")
		require.Error(t, err)

		_, err = NewParametricModel(1, -1, "ACGA")
		require.Error(t, err)

		_, err = NewParametricModel(1, -1, "ACGT", WithGapCost(2))
		require.Error(t, err)
	})

	t.Run("BLOSUM62 values", func(t *testing.T) {
		m := BLOSUM62()
		tests := []struct {
			a, b byte
			want int
		}{
			{'A', 'A', 4},
			{'A', 'G', 0},
			{'W', 'Y', 2},
			{'W', 'W', 11},
			{'C', 'C', 9},
			{'X', 'P', -2},
		}
		for _, tt := range tests {
			got, err := m.Score(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "%c/%c", tt.a, tt.b)
		}
		assert.Equal(t, DefaultGapCost, m.GapCost())
		assert.Equal(t, -4, BLOSUM62(WithGapCost(-4)).GapCost())
	})

	t.Run("BLOSUM62 is symmetric", func(t *testing.T) {
		m := BLOSUM62()
		alphabet := m.Alphabet()
		for i := 0; i < len(alphabet); i++ {
			for j := 0; j < len(alphabet); j++ {
				ab, err := m.Score(alphabet[i], alphabet[j])
				require.NoError(t, err)
				ba, err := m.Score(alphabet[j], alphabet[i])
				require.NoError(t, err)
				assert.Equal(t, ab, ba, "%c/%c", alphabet[i], alphabet[j])
			}
		}
	})

	t.Run("BLOSUM62 rejects positive gap cost", func(t *testing.T) {
		m, err := NewBLOSUM62(WithGapCost(2))
		require.Error(t, err)
		assert.Nil(t, m)

		m, err = NewBLOSUM62(WithGapCost(0))
		require.NoError(t, err)
		assert.Equal(t, 0, m.GapCost())

		assert.Panics(t, func() { BLOSUM62(WithGapCost(1)) })
	})

	t.Run("BLOSUM62 invalid symbol", func(t *testing.T) {
		m := BLOSUM62()
		for _, c := range []byte{'J', 'O', 'U', '-', 'a'} {
			_, err := m.Score(c, 'A')
			assert.True(t, errors.Is(err, ErrInvalidSymbol), "%c", c)
		}
	})
}

func TestAlignGlobal(t *testing.T) {
	tests := []struct {
		name      string
		seq1      string
		seq2      string
		model     ScoringModel
		wantScore int
		want1     string
		want2     string
	}{
		{"both empty", "", "", nil, 0, "", ""},
		{"first empty", "", "ACG", nil, -3, "---", "ACG"},
		{"second empty", "ACGT", "", nil, -4, "ACGT", "----"},
		{"one substitution", "AC", "AG", nil, 0, "AC", "AG"},
		{"identical", "ACGT", "ACGT", nil, 4, "ACGT", "ACGT"},
		{"single deletion", "ACGTACGT", "ACGACGT", nil, 6, "ACGTACGT", "ACG-ACGT"},
		{"leading gap", "AAC", "AC", nil, 1, "AAC", "-AC"},
		{"gaps both sides", "GATTACA", "GCATGCT", nil, 0, "G-ATTACA", "GCA-TGCT"},
		{"blosum prefers gaps", "AC", "AG", BLOSUM62(), 2, "A-C", "AG-"},
		{"blosum single residue", "A", "A", BLOSUM62(), 4, "A", "A"},
		{"blosum classic", "HEAGAWGHEE", "PAWHEAE", BLOSUM62(), 27, "HEAGAWGHE-E", "--P-AW-HEAE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := AlignGlobal(tt.seq1, tt.seq2, tt.model)
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, a.Score)
			assert.Equal(t, tt.want1, a.AlignedSeq1)
			assert.Equal(t, tt.want2, a.AlignedSeq2)
			assert.Equal(t, Global, a.AlignmentType)
			assert.Equal(t, 0, a.Start1)
			assert.Equal(t, len(tt.seq1), a.End1)
			assert.Equal(t, len(tt.seq2), a.End2)
		})
	}
}

func TestAlignGlobalProperties(t *testing.T) {
	pairs := [][2]string{
		{"ACGT", "TGCA"},
		{"GATTACA", "GCATGCT"},
		{"AAAAAA", "AA"},
		{"ACGTTGCA", "ACGTACGTACGT"},
		{"T", "ACGGT"},
		{"", "GG"},
	}

	for _, p := range pairs {
		a, err := AlignGlobal(p[0], p[1], nil)
		require.NoError(t, err)
		b, err := AlignGlobal(p[1], p[0], nil)
		require.NoError(t, err)

		assert.Equal(t, a.Score, b.Score, "score symmetry for %v", p)
		assert.Equal(t, len(a.AlignedSeq1), len(a.AlignedSeq2))
		assert.Equal(t, p[0], ungap(a.AlignedSeq1))
		assert.Equal(t, p[1], ungap(a.AlignedSeq2))

		score, err := GlobalScore(p[0], p[1], nil)
		require.NoError(t, err)
		assert.Equal(t, a.Score, score, "score-only agrees for %v", p)
	}
}

func TestAlignGlobalInvalidSymbol(t *testing.T) {
	_, err := AlignGlobal("ACX", "AC", DefaultDNA())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSymbol))

	var symErr *InvalidSymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, byte('X'), symErr.Symbol)
	assert.Equal(t, 2, symErr.Position)
	assert.Equal(t, 0, symErr.Input)

	_, err = AlignGlobal("AC", "acg", nil)
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 1, symErr.Input)
	assert.Equal(t, 0, symErr.Position)

	_, err = GlobalScore("AC", "AN", nil)
	assert.True(t, errors.Is(err, ErrInvalidSymbol))
}

func TestAlignLocal(t *testing.T) {
	tests := []struct {
		name      string
		seq1      string
		seq2      string
		model     ScoringModel
		wantScore int
		want1     string
		want2     string
		start1    int
		end1      int
		start2    int
		end2      int
	}{
		{"no match", "AAAA", "TTTT", nil, 0, "", "", 0, 0, 0, 0},
		{"empty input", "", "ACGT", nil, 0, "", "", 0, 0, 0, 0},
		{"identical", "ACGT", "ACGT", nil, 4, "ACGT", "ACGT", 0, 4, 0, 4},
		{"embedded core", "TTACGTAA", "GGACGTCC", nil, 4, "ACGT", "ACGT", 2, 6, 2, 6},
		{"with gap", "GGTTGACTA", "TGTTACGG", nil, 4, "GTTGAC", "GTT-AC", 1, 7, 1, 6},
		{"blosum short", "AC", "AG", BLOSUM62(), 4, "A", "A", 0, 1, 0, 1},
		{"blosum classic", "PAWHEAE", "HEAGAWGHEE", BLOSUM62(), 31, "AW-HEAE", "AWGHE-E", 1, 7, 4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := AlignLocal(tt.seq1, tt.seq2, tt.model)
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, a.Score)
			assert.Equal(t, tt.want1, a.AlignedSeq1)
			assert.Equal(t, tt.want2, a.AlignedSeq2)
			assert.Equal(t, tt.start1, a.Start1)
			assert.Equal(t, tt.end1, a.End1)
			assert.Equal(t, tt.start2, a.Start2)
			assert.Equal(t, tt.end2, a.End2)
			assert.Equal(t, Local, a.AlignmentType)

			// Ungapped rows are exactly the traced substrings
			assert.Equal(t, tt.seq1[a.Start1:a.End1], ungap(a.AlignedSeq1))
			assert.Equal(t, tt.seq2[a.Start2:a.End2], ungap(a.AlignedSeq2))

			score, err := LocalScore(tt.seq1, tt.seq2, tt.model)
			require.NoError(t, err)
			assert.Equal(t, a.Score, score)
		})
	}
}

func TestAlignLocalNeverNegative(t *testing.T) {
	pairs := [][2]string{
		{"A", "C"},
		{"ACACAC", "GTGTGT"},
		{"GATTACA", "GCATGCT"},
		{"", ""},
	}
	for _, p := range pairs {
		a, err := AlignLocal(p[0], p[1], nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a.Score, 0)
		if a.Score == 0 {
			assert.Empty(t, a.AlignedSeq1)
			assert.Empty(t, a.AlignedSeq2)
		}
	}
}

func TestAlignLocalInvalidSymbol(t *testing.T) {
	_, err := AlignLocal("PAWHEAE", "HEAJ", BLOSUM62())
	require.Error(t, err)

	var symErr *InvalidSymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, byte('J'), symErr.Symbol)
	assert.Equal(t, 3, symErr.Position)
	assert.Equal(t, 1, symErr.Input)
}

func TestAlignmentIdentity(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     float64
	}{
		{"perfect match", "ATGC", "ATGC", 1.0},
		{"50% match", "ATGC", "ATTT", 0.5},
		{"no match", "AAAA", "TTTT", 0.0},
		{"with gaps", "AT-GC", "ATGGC", 0.8},
		{"empty", "", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := newSpanningAlignment(tt.aligned1, tt.aligned2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, a.Identity, 0.0001)
		})
	}
}

func TestNewAlignmentLengthMismatch(t *testing.T) {
	_, err := newSpanningAlignment("ACG", "AC")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestAlignmentCIGAR(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     string
	}{
		{"all match", "ATGC", "ATGC", "4M"},
		{"with mismatch", "ATGC", "ATGA", "3M1X"},
		{"with gap seq1", "AT-GC", "ATGGC", "2M1I2M"},
		{"with gap seq2", "ATGGC", "AT-GC", "2M1D2M"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := newSpanningAlignment(tt.aligned1, tt.aligned2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.ToCIGAR())
		})
	}
}

func TestGapOpenings(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     int
	}{
		{"no gaps", "ATGC", "ATGC", 0},
		{"one gap", "AT-GC", "ATGGC", 1},
		{"two gaps same seq", "AT--GC", "ATGGGC", 1},
		{"two gaps diff seq", "AT-GC-", "ATGG-C", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := newSpanningAlignment(tt.aligned1, tt.aligned2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.GapOpenings())
		})
	}
}

func TestAlignmentCounts(t *testing.T) {
	a, err := AlignGlobal("ACGTACGT", "ACGACGT", nil)
	require.NoError(t, err)

	assert.Equal(t, 7, a.MatchCount())
	assert.Equal(t, 0, a.MismatchCount())
	assert.Equal(t, 0, a.GapsSeq1())
	assert.Equal(t, 1, a.GapsSeq2())
	assert.Equal(t, 1, a.TotalGaps())
	assert.Equal(t, "3M1D4M", a.ToCIGAR())
	assert.Contains(t, a.Format(), "Score: 6")
	assert.Contains(t, a.String(), "global")
}

func benchmarkInputs() (string, string) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)
	return s1, s2
}

func BenchmarkAlignLocal(b *testing.B) {
	s1, s2 := benchmarkInputs()
	model := DefaultDNA()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = AlignLocal(s1, s2, model)
	}
}

func BenchmarkAlignGlobal(b *testing.B) {
	s1, s2 := benchmarkInputs()
	model := DefaultDNA()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = AlignGlobal(s1, s2, model)
	}
}

func BenchmarkLocalScore(b *testing.B) {
	s1, s2 := benchmarkInputs()
	model := DefaultDNA()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = LocalScore(s1, s2, model)
	}
}

// newSpanningAlignment builds a local alignment whose ranges cover the
// ungapped rows.
func newSpanningAlignment(aligned1, aligned2 string) (*Alignment, error) {
	end1 := len(aligned1) - strings.Count(aligned1, string(Gap))
	end2 := len(aligned2) - strings.Count(aligned2, string(Gap))
	return NewAlignmentWithPositions(aligned1, aligned2, 0, 0, end1, 0, end2, Local)
}
