package alignment

import (
	"fmt"
	"strings"
)

// Alignment is the result of aligning two sequences.
//
// AlignedSeq1 and AlignedSeq2 always have equal length. Removing the gap
// symbols from AlignedSeq1 yields seq1[Start1:End1], and likewise for the
// second sequence. For global alignments the ranges cover the whole inputs.
type Alignment struct {
	AlignedSeq1   string
	AlignedSeq2   string
	Score         int
	Start1        int
	End1          int
	Start2        int
	End2          int
	AlignmentType AlignmentType
	Identity      float64
}

// NewAlignmentWithPositions creates an alignment with position information.
func NewAlignmentWithPositions(aligned1, aligned2 string, score int,
	start1, end1, start2, end2 int, alignType AlignmentType) (*Alignment, error) {
	if len(aligned1) != len(aligned2) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(aligned1), len(aligned2))
	}

	a := &Alignment{
		AlignedSeq1:   aligned1,
		AlignedSeq2:   aligned2,
		Score:         score,
		Start1:        start1,
		End1:          end1,
		Start2:        start2,
		End2:          end2,
		AlignmentType: alignType,
	}
	a.Identity = a.calculateIdentity()
	return a, nil
}

// calculateIdentity calculates the fraction of columns holding identical residues.
func (a *Alignment) calculateIdentity() float64 {
	if len(a.AlignedSeq1) == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(len(a.AlignedSeq1))
}

// Length returns the number of alignment columns.
func (a *Alignment) Length() int {
	return len(a.AlignedSeq1)
}

// MatchCount returns the number of matches.
func (a *Alignment) MatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] == a.AlignedSeq2[i] && a.AlignedSeq1[i] != Gap {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of mismatches.
func (a *Alignment) MismatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] != a.AlignedSeq2[i] &&
			a.AlignedSeq1[i] != Gap && a.AlignedSeq2[i] != Gap {
			count++
		}
	}
	return count
}

// GapsSeq1 returns the number of gaps in sequence 1.
func (a *Alignment) GapsSeq1() int {
	return strings.Count(a.AlignedSeq1, string(Gap))
}

// GapsSeq2 returns the number of gaps in sequence 2.
func (a *Alignment) GapsSeq2() int {
	return strings.Count(a.AlignedSeq2, string(Gap))
}

// TotalGaps returns the total number of gaps.
func (a *Alignment) TotalGaps() int {
	return a.GapsSeq1() + a.GapsSeq2()
}

// GapOpenings counts the number of gap runs in both rows.
func (a *Alignment) GapOpenings() int {
	openings := 0
	inGap1, inGap2 := false, false

	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] == Gap && !inGap1 {
			openings++
		}
		inGap1 = a.AlignedSeq1[i] == Gap

		if a.AlignedSeq2[i] == Gap && !inGap2 {
			openings++
		}
		inGap2 = a.AlignedSeq2[i] == Gap
	}

	return openings
}

// ToCIGAR generates a CIGAR string with sequence 1 as the reference:
// M match, X mismatch, I gap in sequence 1, D gap in sequence 2.
func (a *Alignment) ToCIGAR() string {
	var cigar strings.Builder
	var currentOp byte
	count := 0

	for i := 0; i < len(a.AlignedSeq1); i++ {
		var op byte
		switch {
		case a.AlignedSeq1[i] == Gap:
			op = 'I'
		case a.AlignedSeq2[i] == Gap:
			op = 'D'
		case a.AlignedSeq1[i] == a.AlignedSeq2[i]:
			op = 'M'
		default:
			op = 'X'
		}

		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, currentOp)
		}
		currentOp = op
		count = 1
	}

	if count > 0 {
		fmt.Fprintf(&cigar, "%d%c", count, currentOp)
	}

	return cigar.String()
}

// Format returns a human-readable rendering of the alignment.
func (a *Alignment) Format() string {
	var matchLine strings.Builder
	for i := 0; i < len(a.AlignedSeq1); i++ {
		switch {
		case a.AlignedSeq1[i] == Gap || a.AlignedSeq2[i] == Gap:
			matchLine.WriteByte(' ')
		case a.AlignedSeq1[i] == a.AlignedSeq2[i]:
			matchLine.WriteByte('|')
		default:
			matchLine.WriteByte('.')
		}
	}

	return fmt.Sprintf("Seq1: %s\n      %s\nSeq2: %s\nType: %s\nScore: %d\nIdentity: %.1f%%\nCIGAR: %s",
		a.AlignedSeq1, matchLine.String(), a.AlignedSeq2,
		a.AlignmentType, a.Score, a.Identity*100, a.ToCIGAR())
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { type: %s, score: %d, identity: %.1f%%, length: %d }",
		a.AlignmentType, a.Score, a.Identity*100, a.Length())
}
