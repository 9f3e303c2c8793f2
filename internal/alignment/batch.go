package alignment

import (
	"fmt"

	"github.com/exascience/pargo/parallel"
)

// IndexedAlignment pairs an alignment with the index of its target.
type IndexedAlignment struct {
	Index     int
	Alignment *Alignment
}

// AlignAgainstMultiple aligns query against every target.
//
// The alignments are independent and run in parallel; each one is the same
// single-threaded computation as a direct AlignGlobal or AlignLocal call.
// On failure the error of the lowest failing target index is returned.
func AlignAgainstMultiple(query string, targets []string, model ScoringModel,
	alignType AlignmentType) ([]IndexedAlignment, error) {
	if len(targets) == 0 {
		return nil, ErrEmptyInput
	}
	if model == nil {
		model = DefaultDNA()
	}

	align := AlignLocal
	if alignType == Global {
		align = AlignGlobal
	}

	results := make([]IndexedAlignment, len(targets))
	errs := make([]error, len(targets))
	parallel.Range(0, len(targets), 0, func(low, high int) {
		for i := low; i < high; i++ {
			a, err := align(query, targets[i], model)
			results[i] = IndexedAlignment{Index: i, Alignment: a}
			errs[i] = err
		}
	})

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i+1, err)
		}
	}
	return results, nil
}

// FindBestAlignment returns the highest-scoring alignment of query against
// targets. Ties go to the lowest index.
func FindBestAlignment(query string, targets []string, model ScoringModel,
	alignType AlignmentType) (*IndexedAlignment, error) {
	alignments, err := AlignAgainstMultiple(query, targets, model, alignType)
	if err != nil {
		return nil, err
	}

	best := alignments[0]
	for _, a := range alignments[1:] {
		if a.Alignment.Score > best.Alignment.Score {
			best = a
		}
	}

	return &best, nil
}

// PairwiseScores returns the symmetric matrix of global alignment scores
// between all pairs of seqs. The diagonal holds self-alignment scores.
func PairwiseScores(seqs []string, model ScoringModel) ([][]int, error) {
	if len(seqs) == 0 {
		return nil, ErrEmptyInput
	}
	if model == nil {
		model = DefaultDNA()
	}
	for i, s := range seqs {
		if err := checkSymbols(s, i, model); err != nil {
			return nil, err
		}
	}

	scores := make([][]int, len(seqs))
	for i := range scores {
		scores[i] = make([]int, len(seqs))
	}

	// Row i owns the cells (i, j) with j >= i, so no two workers share a cell.
	parallel.Range(0, len(seqs), 0, func(low, high int) {
		for i := low; i < high; i++ {
			for j := i; j < len(seqs); j++ {
				s, _ := GlobalScore(seqs[i], seqs[j], model)
				scores[i][j] = s
			}
		}
	})

	for i := range scores {
		for j := 0; j < i; j++ {
			scores[i][j] = scores[j][i]
		}
	}
	return scores, nil
}
