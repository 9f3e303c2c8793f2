// Package stats provides summary statistics for multiple alignments.
package stats

import (
	"fmt"
	"sort"

	"github.com/aria-lang/seqalign-go/internal/alignment"
)

// AlignmentStats summarizes a multiple alignment.
//
// Lengths are of the ungapped rows. A conserved column holds the same
// residue in every row; a gap-only column holds nothing but gaps.
type AlignmentStats struct {
	Rows             int
	Width            int
	TotalResidues    int
	MinLength        int
	MaxLength        int
	MeanLength       float64
	MedianLength     int
	GapFraction      float64
	ConservedColumns int
	GapOnlyColumns   int
	// MeanIdentity is the mean pairwise identity over row pairs sharing at
	// least one non-gap column. Columns gapped in both rows are ignored.
	MeanIdentity float64
}

// FromMultipleAlignment calculates statistics for msa.
func FromMultipleAlignment(msa *alignment.MultipleAlignment) (*AlignmentStats, error) {
	if msa == nil || msa.Len() == 0 {
		return nil, alignment.ErrEmptyInput
	}

	rows := msa.Rows
	width := msa.Width()
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, row 1 has %d",
				alignment.ErrRaggedRows, i+1, len(row), width)
		}
	}

	count := len(rows)
	lengths := make([]int, count)
	totalResidues := 0
	for i := range rows {
		lengths[i] = len(msa.Ungapped(i))
		totalResidues += lengths[i]
	}

	sorted := make([]int, count)
	copy(sorted, lengths)
	sort.Ints(sorted)

	mid := count / 2
	var medianLen int
	if count%2 == 0 {
		medianLen = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		medianLen = sorted[mid]
	}

	s := &AlignmentStats{
		Rows:          count,
		Width:         width,
		TotalResidues: totalResidues,
		MinLength:     sorted[0],
		MaxLength:     sorted[count-1],
		MeanLength:    float64(totalResidues) / float64(count),
		MedianLength:  medianLen,
		MeanIdentity:  meanPairwiseIdentity(rows),
	}

	if cells := count * width; cells > 0 {
		s.GapFraction = float64(cells-totalResidues) / float64(cells)
	}

	for col := 0; col < width; col++ {
		first := rows[0][col]
		conserved, gapOnly := first != alignment.Gap, first == alignment.Gap
		for _, row := range rows[1:] {
			c := row[col]
			if c != first {
				conserved = false
			}
			if c != alignment.Gap {
				gapOnly = false
			}
		}
		if conserved {
			s.ConservedColumns++
		}
		if gapOnly {
			s.GapOnlyColumns++
		}
	}

	return s, nil
}

// pairIdentity returns the fraction of identical residues between two
// aligned rows, over the columns where at least one row has a residue.
// ok is false when no such column exists.
func pairIdentity(a, b string) (identity float64, ok bool) {
	matches, aligned := 0, 0
	for k := 0; k < len(a) && k < len(b); k++ {
		ca, cb := a[k], b[k]
		if ca == alignment.Gap && cb == alignment.Gap {
			continue
		}
		aligned++
		if ca == cb {
			matches++
		}
	}
	if aligned == 0 {
		return 0, false
	}
	return float64(matches) / float64(aligned), true
}

func meanPairwiseIdentity(rows []string) float64 {
	sum, pairs := 0.0, 0
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if id, ok := pairIdentity(rows[i], rows[j]); ok {
				sum += id
				pairs++
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

func (s *AlignmentStats) String() string {
	return fmt.Sprintf(`AlignmentStats {
  rows: %d
  width: %d
  residues: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  gap fraction: %.1f%%
  conserved columns: %d
  gap-only columns: %d
  mean identity: %.1f%%
}`, s.Rows, s.Width, s.TotalResidues, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.GapFraction*100,
		s.ConservedColumns, s.GapOnlyColumns, s.MeanIdentity*100)
}

// LengthHistogram buckets the ungapped row lengths of an alignment.
type LengthHistogram struct {
	Bins     []int
	MinValue int
	MaxValue int
	BinWidth int
}

// NewLengthHistogram creates a histogram of ungapped row lengths.
func NewLengthHistogram(msa *alignment.MultipleAlignment, numBins int) (*LengthHistogram, error) {
	if msa == nil || msa.Len() == 0 {
		return nil, alignment.ErrEmptyInput
	}
	if numBins <= 0 {
		return nil, fmt.Errorf("number of bins must be positive")
	}

	lengths := make([]int, msa.Len())
	for i := range lengths {
		lengths[i] = len(msa.Ungapped(i))
	}

	minLen, maxLen := lengths[0], lengths[0]
	for _, l := range lengths[1:] {
		if l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}

	binWidth := (maxLen - minLen + numBins) / numBins
	if binWidth == 0 {
		binWidth = 1
	}

	bins := make([]int, numBins)
	for _, l := range lengths {
		idx := (l - minLen) / binWidth
		if idx >= numBins {
			idx = numBins - 1
		}
		bins[idx]++
	}

	return &LengthHistogram{
		Bins:     bins,
		MinValue: minLen,
		MaxValue: maxLen,
		BinWidth: binWidth,
	}, nil
}

func (h *LengthHistogram) String() string {
	result := "Length Histogram:\n"
	for i, count := range h.Bins {
		start := h.MinValue + i*h.BinWidth
		end := start + h.BinWidth - 1
		result += fmt.Sprintf("  %d-%d: %d\n", start, end, count)
	}
	return result
}
