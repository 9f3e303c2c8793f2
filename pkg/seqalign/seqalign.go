// Package seqalign provides a high-level API for biological sequence alignment.
//
// This package exposes the alignment engine through a small API: pairwise
// global and local alignment, progressive multiple alignment, consensus, and
// the scoring models they use.
//
// Example usage:
//
//	model := seqalign.DefaultDNA()
//	alignment, err := seqalign.AlignGlobal("GATTACA", "GCATGCT", model)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(alignment.Format())
//
//	msa, err := seqalign.AlignProgressive([]string{"ACGT", "AGT", "ACT"}, model)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(strings.Join(msa.Rows, "\n"))
package seqalign

import (
	"fmt"
	"strings"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/aria-lang/seqalign-go/internal/stats"
)

// Re-export types for convenience
type (
	Alignment          = alignment.Alignment
	AlignmentType      = alignment.AlignmentType
	MultipleAlignment  = alignment.MultipleAlignment
	IndexedAlignment   = alignment.IndexedAlignment
	ScoringModel       = alignment.ScoringModel
	ParametricModel    = alignment.ParametricModel
	FixedModel         = alignment.FixedModel
	ModelOption        = alignment.ModelOption
	InvalidSymbolError = alignment.InvalidSymbolError
	AlignmentStats     = stats.AlignmentStats
	Sequence           = sequence.Sequence
	Kind               = sequence.Kind
)

// Constants
const (
	Local  = alignment.Local
	Global = alignment.Global

	DNA     = sequence.DNA
	RNA     = sequence.RNA
	Protein = sequence.Protein

	Gap            = alignment.Gap
	DefaultGapCost = alignment.DefaultGapCost
)

// Errors
var (
	ErrInvalidSymbol  = alignment.ErrInvalidSymbol
	ErrEmptyInput     = alignment.ErrEmptyInput
	ErrLengthMismatch = alignment.ErrLengthMismatch
	ErrRaggedRows     = alignment.ErrRaggedRows
)

// AlignGlobal performs Needleman-Wunsch global alignment.
func AlignGlobal(a, b string, model ScoringModel) (*Alignment, error) {
	return alignment.AlignGlobal(a, b, model)
}

// AlignLocal performs Smith-Waterman local alignment.
func AlignLocal(a, b string, model ScoringModel) (*Alignment, error) {
	return alignment.AlignLocal(a, b, model)
}

// Score returns only the alignment score of the given type.
func Score(a, b string, model ScoringModel, alignType AlignmentType) (int, error) {
	if alignType == Global {
		return alignment.GlobalScore(a, b, model)
	}
	return alignment.LocalScore(a, b, model)
}

// AlignProgressive folds sequences, in order, into a multiple alignment.
func AlignProgressive(seqs []string, model ScoringModel) (*MultipleAlignment, error) {
	return alignment.AlignProgressive(seqs, model)
}

// Consensus returns the per-column majority sequence of aligned rows.
func Consensus(rows []string) (string, error) {
	return alignment.Consensus(rows)
}

// AlignAgainstMultiple aligns query against every target in parallel.
func AlignAgainstMultiple(query string, targets []string, model ScoringModel,
	alignType AlignmentType) ([]IndexedAlignment, error) {
	return alignment.AlignAgainstMultiple(query, targets, model, alignType)
}

// FindBestAlignment returns the highest-scoring alignment of query against
// targets. Ties go to the lowest index.
func FindBestAlignment(query string, targets []string, model ScoringModel,
	alignType AlignmentType) (*IndexedAlignment, error) {
	return alignment.FindBestAlignment(query, targets, model, alignType)
}

// PairwiseScores returns the all-pairs global score matrix.
func PairwiseScores(seqs []string, model ScoringModel) ([][]int, error) {
	return alignment.PairwiseScores(seqs, model)
}

// Cells returns the number of DP cells aligning sequences of length n and m.
func Cells(n, m int) int {
	return alignment.Cells(n, m)
}

// ProgressiveCells returns the largest DP table any step of a progressive
// alignment over sequences of the given lengths can allocate.
func ProgressiveCells(lengths []int) int {
	return alignment.ProgressiveCells(lengths)
}

// AlignmentStatistics summarizes a multiple alignment.
func AlignmentStatistics(msa *MultipleAlignment) (*AlignmentStats, error) {
	return stats.FromMultipleAlignment(msa)
}

// BLOSUM62 returns the fixed amino-acid scoring model. It panics on an
// invalid option; use NewBLOSUM62 for options built from user input.
func BLOSUM62(opts ...ModelOption) *FixedModel {
	return alignment.BLOSUM62(opts...)
}

// NewBLOSUM62 returns the fixed amino-acid scoring model, rejecting a
// positive gap cost.
func NewBLOSUM62(opts ...ModelOption) (*FixedModel, error) {
	return alignment.NewBLOSUM62(opts...)
}

// NewParametricModel returns a match/mismatch model over alphabet.
func NewParametricModel(match, mismatch int, alphabet string, opts ...ModelOption) (*ParametricModel, error) {
	return alignment.NewParametricModel(match, mismatch, alphabet, opts...)
}

// DefaultDNA returns the default nucleotide scoring model.
func DefaultDNA() *ParametricModel {
	return alignment.DefaultDNA()
}

// WithGapCost sets the linear gap cost of a scoring model.
func WithGapCost(cost int) ModelOption {
	return alignment.WithGapCost(cost)
}

// NewSequence creates a validated sequence, detecting its kind.
func NewSequence(residues string) (*Sequence, error) {
	return sequence.New(residues)
}

// LengthHistogram buckets the ungapped row lengths of a multiple alignment.
func LengthHistogram(msa *MultipleAlignment, bins int) (*stats.LengthHistogram, error) {
	return stats.NewLengthHistogram(msa, bins)
}

// Version returns the SeqAlign version.
func Version() string {
	return "1.0.0"
}

// Info returns information about SeqAlign.
func Info() string {
	return fmt.Sprintf(`SeqAlign v%s - Biological Sequence Alignment

Features:
  - Needleman-Wunsch global alignment
  - Smith-Waterman local alignment
  - Progressive multiple alignment
  - Per-column consensus sequences
  - BLOSUM62 and match/mismatch scoring models
  - FASTA input and aligned FASTA output
`, Version())
}

// ScoringConfig describes a scoring model in a form suitable for flags and
// JSON request bodies.
type ScoringConfig struct {
	// Model is one of "dna" (default), "rna", "parametric" or "blosum62".
	Model    string `json:"model,omitempty"`
	Match    int    `json:"match,omitempty"`
	Mismatch int    `json:"mismatch,omitempty"`
	// Gap overrides the default gap cost when set.
	Gap      *int   `json:"gap,omitempty"`
	Alphabet string `json:"alphabet,omitempty"`
}

// Build constructs the scoring model described by the configuration.
func (c ScoringConfig) Build() (ScoringModel, error) {
	var opts []ModelOption
	if c.Gap != nil {
		if *c.Gap > 0 {
			return nil, fmt.Errorf("gap cost should be <= 0, got %d", *c.Gap)
		}
		opts = append(opts, WithGapCost(*c.Gap))
	}

	match, mismatch := c.Match, c.Mismatch
	if match == 0 && mismatch == 0 {
		match, mismatch = 1, -1
	}

	alphabet := strings.ToUpper(c.Alphabet)
	switch strings.ToLower(c.Model) {
	case "", "dna":
		if alphabet == "" {
			alphabet = sequence.DNAResidues
		}
	case "rna":
		if alphabet == "" {
			alphabet = sequence.RNAResidues
		}
	case "parametric":
		if alphabet == "" {
			return nil, fmt.Errorf("parametric model requires an alphabet")
		}
	case "blosum62", "protein":
		model, err := NewBLOSUM62(opts...)
		if err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unknown scoring model %q", c.Model)
	}

	model, err := NewParametricModel(match, mismatch, alphabet, opts...)
	if err != nil {
		return nil, err
	}
	return model, nil
}
