// Package alignment provides pairwise and progressive sequence alignment.
//
// It implements Needleman-Wunsch (global) and Smith-Waterman (local)
// alignment with a linear gap cost, progressive multiple alignment against
// an evolving consensus, and per-column consensus derivation. Scoring is
// pluggable through the ScoringModel interface.
package alignment

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Gap is the symbol that marks an insertion or deletion in aligned output.
const Gap byte = '-'

// DefaultGapCost is the per-symbol gap cost used when no option overrides it.
const DefaultGapCost = -1

// Direction is a traceback pointer in the alignment matrix.
type Direction uint8

const (
	// Stop marks a cell with no predecessor (origin, or a local restart)
	Stop Direction = iota
	// Diagonal consumes one symbol of each sequence
	Diagonal
	// Up consumes a symbol of the first sequence against a gap
	Up
	// Left consumes a symbol of the second sequence against a gap
	Left
)

// AlignmentType represents the type of alignment.
type AlignmentType int

const (
	// Local represents Smith-Waterman local alignment
	Local AlignmentType = iota
	// Global represents Needleman-Wunsch global alignment
	Global
)

func (t AlignmentType) String() string {
	switch t {
	case Local:
		return "local"
	case Global:
		return "global"
	default:
		return "unknown"
	}
}

// ScoringModel scores aligned symbol pairs and gaps.
//
// Score must be symmetric and must fail with an error matching
// ErrInvalidSymbol for symbols outside Alphabet. Implementations are
// read-only and may be shared between goroutines.
type ScoringModel interface {
	Score(a, b byte) (int, error)
	GapCost() int
	// Alphabet lists the accepted symbols in consensus priority order.
	Alphabet() string
}

type modelOptions struct {
	gapCost int
}

// ModelOption configures a scoring model at construction time.
type ModelOption func(*modelOptions)

// WithGapCost sets the linear per-symbol gap cost.
func WithGapCost(cost int) ModelOption {
	return func(o *modelOptions) {
		o.gapCost = cost
	}
}

func applyOptions(opts []ModelOption) modelOptions {
	o := modelOptions{gapCost: DefaultGapCost}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkedOptions(opts []ModelOption) (modelOptions, error) {
	o := applyOptions(opts)
	if o.gapCost > 0 {
		return o, fmt.Errorf("gap cost should be <= 0, got %d", o.gapCost)
	}
	return o, nil
}

// alphabet is an ordered symbol list with a membership set.
type alphabet struct {
	symbols string
	members *bitset.BitSet
}

func newAlphabet(symbols string) (alphabet, error) {
	if len(symbols) == 0 {
		return alphabet{}, fmt.Errorf("alphabet cannot be empty")
	}
	members := bitset.New(256)
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		if c == Gap {
			return alphabet{}, fmt.Errorf("alphabet cannot contain the gap symbol '%c'", Gap)
		}
		if members.Test(uint(c)) {
			return alphabet{}, fmt.Errorf("duplicate symbol '%c' in alphabet", c)
		}
		members.Set(uint(c))
	}
	return alphabet{symbols: symbols, members: members}, nil
}

func (a alphabet) contains(c byte) bool {
	return a.members.Test(uint(c))
}

// ParametricModel scores a fixed reward for identical symbols and a fixed
// penalty for different ones, over a caller-declared alphabet.
type ParametricModel struct {
	MatchScore    int
	MismatchScore int
	gapCost       int
	alphabet      alphabet
}

// NewParametricModel creates a match/mismatch scoring model over alphabet.
func NewParametricModel(match, mismatch int, symbols string, opts ...ModelOption) (*ParametricModel, error) {
	o, err := checkedOptions(opts)
	if err != nil {
		return nil, err
	}

	a, err := newAlphabet(symbols)
	if err != nil {
		return nil, err
	}

	return &ParametricModel{
		MatchScore:    match,
		MismatchScore: mismatch,
		gapCost:       o.gapCost,
		alphabet:      a,
	}, nil
}

// DefaultDNA creates the default nucleotide model: +1 match, -1 mismatch,
// -1 per gap symbol over ACGT.
func DefaultDNA() *ParametricModel {
	m, err := NewParametricModel(1, -1, "ACGT")
	if err != nil {
		panic(err)
	}
	return m
}

// Score returns the score for aligning two symbols.
func (m *ParametricModel) Score(a, b byte) (int, error) {
	if !m.alphabet.contains(a) {
		return 0, newInvalidSymbol(a)
	}
	if !m.alphabet.contains(b) {
		return 0, newInvalidSymbol(b)
	}
	if a == b {
		return m.MatchScore, nil
	}
	return m.MismatchScore, nil
}

// GapCost returns the linear gap cost.
func (m *ParametricModel) GapCost() int {
	return m.gapCost
}

// Alphabet returns the declared symbols in declaration order.
func (m *ParametricModel) Alphabet() string {
	return m.alphabet.symbols
}

// String returns a string representation of the scoring model.
func (m *ParametricModel) String() string {
	return fmt.Sprintf("ParametricModel { match: %d, mismatch: %d, gap: %d, alphabet: %s }",
		m.MatchScore, m.MismatchScore, m.gapCost, m.alphabet.symbols)
}

// FixedModel scores amino acids with the compiled-in BLOSUM62 table.
type FixedModel struct {
	gapCost int
}

// NewBLOSUM62 returns a scoring model backed by the BLOSUM62 substitution
// matrix over the 20 standard amino acids and the wildcards B, Z and X.
func NewBLOSUM62(opts ...ModelOption) (*FixedModel, error) {
	o, err := checkedOptions(opts)
	if err != nil {
		return nil, err
	}
	return &FixedModel{gapCost: o.gapCost}, nil
}

// BLOSUM62 is like NewBLOSUM62 but panics on an invalid option.
func BLOSUM62(opts ...ModelOption) *FixedModel {
	m, err := NewBLOSUM62(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Score returns the BLOSUM62 score for aligning two symbols.
func (m *FixedModel) Score(a, b byte) (int, error) {
	i, j := blosum62Index[a], blosum62Index[b]
	if i < 0 {
		return 0, newInvalidSymbol(a)
	}
	if j < 0 {
		return 0, newInvalidSymbol(b)
	}
	return blosum62Scores[i][j], nil
}

// GapCost returns the linear gap cost.
func (m *FixedModel) GapCost() int {
	return m.gapCost
}

// Alphabet returns the BLOSUM62 symbols in table order.
func (m *FixedModel) Alphabet() string {
	return blosum62Alphabet
}

func (m *FixedModel) String() string {
	return fmt.Sprintf("FixedModel { matrix: BLOSUM62, gap: %d }", m.gapCost)
}

// checkSymbols verifies that every symbol of seq is accepted by the model.
// input is the index of seq in the caller's argument list.
func checkSymbols(seq string, input int, model ScoringModel) error {
	for i := 0; i < len(seq); i++ {
		if _, err := model.Score(seq[i], seq[i]); err != nil {
			return &InvalidSymbolError{Symbol: seq[i], Position: i, Input: input}
		}
	}
	return nil
}
