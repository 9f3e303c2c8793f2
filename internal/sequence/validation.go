package sequence

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrEmptySequence is returned when a sequence has no residues after normalization.
var ErrEmptySequence = errors.New("sequence must have at least one residue")

// ErrNotDNA is returned by operations defined only on DNA.
var ErrNotDNA = errors.New("sequence is not DNA")

// InvalidResidueError is returned when a residue is not valid for a sequence kind.
type InvalidResidueError struct {
	Kind     Kind
	Position int
	Found    byte
}

func (e *InvalidResidueError) Error() string {
	return fmt.Sprintf("invalid %s residue '%c' at position %d", e.Kind, e.Found, e.Position)
}

// Residue alphabets per kind
const (
	DNAResidues     = "ACGT"
	RNAResidues     = "ACGU"
	ProteinResidues = "ACDEFGHIKLMNPQRSTVWY"
)

var residueSets = map[Kind]*bitset.BitSet{
	DNA:     residueSet(DNAResidues),
	RNA:     residueSet(RNAResidues),
	Protein: residueSet(ProteinResidues),
}

func residueSet(residues string) *bitset.BitSet {
	set := bitset.New(256)
	for i := 0; i < len(residues); i++ {
		set.Set(uint(residues[i]))
	}
	return set
}

// Validate checks that residues is non-empty and contains only residues of
// the given kind. residues must already be normalized.
func Validate(residues string, kind Kind) error {
	set, ok := residueSets[kind]
	if !ok {
		return fmt.Errorf("cannot validate sequence of kind %s", kind)
	}
	if len(residues) == 0 {
		return ErrEmptySequence
	}
	for i := 0; i < len(residues); i++ {
		if !set.Test(uint(residues[i])) {
			return &InvalidResidueError{Kind: kind, Position: i, Found: residues[i]}
		}
	}
	return nil
}

// Detect returns the most specific kind that accepts residues, trying DNA,
// then RNA, then protein. Unknown is returned when none accepts them.
func Detect(residues string) Kind {
	for _, kind := range []Kind{DNA, RNA, Protein} {
		if Validate(residues, kind) == nil {
			return kind
		}
	}
	return Unknown
}
